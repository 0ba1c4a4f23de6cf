package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/auth"
	"github.com/task-manager/internal/model"
)

// TaskService gates every task operation through the access policy.
// Existence is always checked before ownership, so a caller cannot tell a
// forbidden task apart from one that was deleted, but a genuinely missing id
// is always reported as not found.
type TaskService struct {
	tasks  TaskStore
	logger zerolog.Logger
}

func NewTaskService(tasks TaskStore, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// List returns the caller's visible tasks: everything for admins, owned rows
// for everyone else.
func (s *TaskService) List(ctx context.Context, caller *auth.Identity) ([]model.Task, error) {
	if caller.Role == model.RoleAdmin {
		return s.tasks.FindAll(ctx)
	}
	return s.tasks.FindByOwner(ctx, caller.UserID)
}

func (s *TaskService) Get(ctx context.Context, caller *auth.Identity, id int64) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, model.ErrNotFound
	}
	if !auth.CanAccess(caller.UserID, caller.Role, task.UserID) {
		return nil, model.ErrForbidden
	}
	return task, nil
}

// Create inserts a task owned by the caller. The owner is derived from the
// verified identity; any client-supplied owner field never reaches this
// point.
func (s *TaskService) Create(ctx context.Context, caller *auth.Identity, req *model.CreateTaskRequest) (*model.Task, error) {
	status, err := req.Validate()
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, req.Title, req.Description, status, caller.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", task.ID).Int64("user_id", caller.UserID).Msg("created task")
	return task, nil
}

// Update applies a partial update. The whole request is validated before any
// field is applied, so an invalid status leaves the task untouched.
func (s *TaskService) Update(ctx context.Context, caller *auth.Identity, id int64, req *model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, model.ErrNotFound
	}
	if !auth.CanAccess(caller.UserID, caller.Role, task.UserID) {
		return nil, model.ErrForbidden
	}

	status, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if status != nil {
		task.Status = *status
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", caller.UserID).Msg("updated task")
	return updated, nil
}

// Delete removes a task permanently. No soft delete exists.
func (s *TaskService) Delete(ctx context.Context, caller *auth.Identity, id int64) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return model.ErrNotFound
	}
	if !auth.CanAccess(caller.UserID, caller.Role, task.UserID) {
		return model.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", caller.UserID).Msg("deleted task")
	return nil
}
