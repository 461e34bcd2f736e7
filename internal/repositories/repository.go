package repository

import (
	"context"
	"errors"

	model "task-manager.com/task-manager/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrOptimisticLock = errors.New("optimistic locking conflict")
)

// TaskRepository is the storage contract the task service depends on.
// Implementations return ErrNotFound and ErrOptimisticLock, never domain errors.
type TaskRepository interface {
	CreateTask(ctx context.Context, name string, completed bool) (*model.Task, error)
	FindByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) (*model.Task, error)
	Ping(ctx context.Context) error
}
