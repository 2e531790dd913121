package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
)

// priorityOrder sorts high before medium before low regardless of the
// alphabetical order of the stored values.
const priorityOrder = "CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	var entity task.Task
	result := r.db.WithContext(ctx).First(&entity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("task", id)
		}
		return nil, fmt.Errorf("task: %w", result.Error)
	}
	return &entity, nil
}

func (r *TaskRepository) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	var entities []task.Task
	query := r.db.WithContext(ctx).
		Order(priorityOrder).
		Order("created_at DESC")
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("tasks: %w", err)
	}
	return entities, nil
}

func (r *TaskRepository) Create(ctx context.Context, entity *task.Task) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, entity *task.Task) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&task.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("task", id)
	}
	return nil
}
