package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "task-manager.com/task-manager/internal/models"
)

type GormTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) CreateTask(ctx context.Context, name string, completed bool) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:        uuid.NewString(),
		Name:      name,
		Completed: completed,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) Update(ctx context.Context, task *model.Task) error {
	updatedAt := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"name":       task.Name,
			"completed":  task.Completed,
			"updated_at": updatedAt,
			"version":    gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, task.ID); err != nil {
			return err
		}
		return ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = updatedAt
	return nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) (*model.Task, error) {
	var deleted *model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Task{}, "id = ?", id).Error; err != nil {
			return err
		}

		deleted = &task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (r *GormTaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
