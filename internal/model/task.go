package model

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// ParseTaskStatus matches s against the status enumeration, ignoring case,
// and returns the canonical form.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, status := range []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted} {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: invalid status %q, valid values: Pending, InProgress, Completed", ErrValidation, s)
}

type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	UserID      int64      `json:"userId" db:"user_id"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Validate checks the request bounds and resolves the status, defaulting to
// Pending when the field is omitted.
func (r *CreateTaskRequest) Validate() (TaskStatus, error) {
	if r.Title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(r.Title) > MaxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	}
	if len(r.Description) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description must be at most %d characters", ErrValidation, MaxDescriptionLength)
	}
	if r.Status == "" {
		return TaskStatusPending, nil
	}
	return ParseTaskStatus(r.Status)
}

// UpdateTaskRequest is a partial update: nil fields keep their stored values.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Validate checks all provided fields before any of them is applied, so an
// invalid status rejects the whole update.
func (r *UpdateTaskRequest) Validate() (*TaskStatus, error) {
	if r.Title != nil {
		if *r.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		if len(*r.Title) > MaxTitleLength {
			return nil, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
		}
	}
	if r.Description != nil && len(*r.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrValidation, MaxDescriptionLength)
	}
	if r.Status == nil {
		return nil, nil
	}
	status, err := ParseTaskStatus(*r.Status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
