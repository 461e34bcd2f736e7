package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
)

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, name string, completed bool) (*model.Task, error) {
	task, err := s.repo.CreateTask(ctx, name, completed)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError("get task", err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, mapRepositoryError("update task", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapRepositoryError("delete task", err)
	}
	return task, nil
}

func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrTaskNotFound
	case errors.Is(err, repository.ErrOptimisticLock):
		return apperrors.ErrOptimisticLock
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
