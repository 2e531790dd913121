package task

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages the task listing.
type ListFilter struct {
	Priority *Priority
	Skip     int
	Limit    int
}

//go:generate mockery --name=Repository --dir=. --output=mocks/ --filename=task_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
