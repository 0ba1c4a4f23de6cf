package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/middleware"
	"github.com/task-manager/internal/model"
	"github.com/task-manager/internal/service"
)

// Handler contains all API handlers
type Handler struct {
	authService *service.AuthService
	taskService *service.TaskService
	logger      zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(authService *service.AuthService, taskService *service.TaskService, logger zerolog.Logger) *Handler {
	return &Handler{
		authService: authService,
		taskService: taskService,
		logger:      logger,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the domain error taxonomy onto fixed status codes.
// Anything outside the taxonomy is an infrastructure failure: logged, and
// surfaced as an opaque 500.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Auth handlers

// Register godoc
// @Summary Register a new user
// @Description Create a new account with the User role and return a JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration details"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, model.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate a user and return a JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Profile godoc
// @Summary Get current user
// @Description Return the authenticated user's record
// @Tags Authentication
// @Produce json
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.Profile(r.Context(), caller)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user.Response())
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Task handlers

// taskID parses the path id. A non-numeric id cannot name any task, so it
// reads as not found rather than a validation error.
func taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// ListTasks godoc
// @Summary List tasks
// @Description Return the caller's tasks; admins receive every task
// @Tags Tasks
// @Produce json
// @Success 200 {array} model.Task
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.taskService.List(r.Context(), caller)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	respondJSON(w, http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task
// @Description Return a single task; callers may only access their own unless admin
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := taskID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	task, err := h.taskService.Get(r.Context(), caller, id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a task owned by the caller; ownership is never taken from the body
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body model.CreateTaskRequest true "Task fields"
// @Success 201 {object} model.Task
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), caller, &req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Partially update a task; absent fields keep their values
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body model.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := taskID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), caller, id, &req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Permanently delete a task
// @Tags Tasks
// @Param id path int true "Task ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := taskID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), caller, id); err != nil {
		h.respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// User handlers

// ListUsers godoc
// @Summary List users
// @Description Return all user accounts without password hashes. Admin only.
// @Tags Users
// @Produce json
// @Success 200 {array} model.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].Response())
	}

	respondJSON(w, http.StatusOK, responses)
}
