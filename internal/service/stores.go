package service

import (
	"context"

	"github.com/task-manager/internal/model"
)

// UserStore is the credential store contract. Find methods return (nil, nil)
// when no row matches.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
}

// TaskStore is the task persistence contract.
type TaskStore interface {
	Create(ctx context.Context, title, description string, status model.TaskStatus, ownerID int64) (*model.Task, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id int64) error
}
