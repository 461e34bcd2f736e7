package dto

import model "task-manager.com/task-manager/internal/models"

type CreateTaskRequest struct {
	Name      string `json:"name" validate:"required,max=20"`
	Completed bool   `json:"completed"`
}

type UpdateTaskRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=20"`
	Completed *bool   `json:"completed"`
}

type TaskResponse struct {
	Task *model.Task `json:"task"`
}

type TaskListResponse struct {
	Count int          `json:"count"`
	Tasks []model.Task `json:"tasks"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
