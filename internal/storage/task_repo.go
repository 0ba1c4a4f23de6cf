package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/task-manager/internal/model"
)

type TaskRepository struct {
	db *Database
}

func NewTaskRepository(db *Database) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, title, description string, status model.TaskStatus, ownerID int64) (*model.Task, error) {
	var task model.Task
	query := `
		INSERT INTO tasks (title, description, status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, status, user_id
	`
	err := r.db.QueryRowxContext(ctx, query, title, description, status, ownerID).StructScan(&task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// FindByID returns (nil, nil) when the task does not exist; the caller
// decides how absence is reported.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	query := `SELECT id, title, description, status, user_id FROM tasks WHERE id = $1`
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	query := `SELECT id, title, description, status, user_id FROM tasks ORDER BY id`
	err := r.db.SelectContext(ctx, &tasks, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByOwner is the list-side counterpart of the access policy: non-admin
// callers only ever see rows matching their own id.
func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	var tasks []model.Task
	query := `SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &tasks, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by owner: %w", err)
	}
	return tasks, nil
}

// Update persists the full row. Ownership never changes here: user_id is not
// part of the SET list.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	var updated model.Task
	query := `
		UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, title, description, status, user_id
	`
	err := r.db.QueryRowxContext(ctx, query, task.Title, task.Description, task.Status, time.Now(), task.ID).
		StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return model.ErrNotFound
	}

	return nil
}
