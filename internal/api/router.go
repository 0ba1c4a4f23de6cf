package api

import (
	"net/http"

	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/task-manager/internal/middleware"
)

// NewRouter creates a new HTTP router with all routes
func NewRouter(h *Handler, auth *middleware.AuthMiddleware, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Public routes
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("GET /health", h.Health)

	// Authenticated routes
	mux.Handle("GET /auth/profile", auth.Authenticate(http.HandlerFunc(h.Profile)))

	mux.Handle("GET /tasks", auth.Authenticate(http.HandlerFunc(h.ListTasks)))
	mux.Handle("POST /tasks", auth.Authenticate(http.HandlerFunc(h.CreateTask)))
	mux.Handle("GET /tasks/{id}", auth.Authenticate(http.HandlerFunc(h.GetTask)))
	mux.Handle("PUT /tasks/{id}", auth.Authenticate(http.HandlerFunc(h.UpdateTask)))
	mux.Handle("DELETE /tasks/{id}", auth.Authenticate(http.HandlerFunc(h.DeleteTask)))

	// Admin routes
	mux.Handle("GET /users", auth.Authenticate(auth.RequireAdmin(http.HandlerFunc(h.ListUsers))))

	// Apply global middleware
	return middleware.CORS(middleware.JSON(middleware.RequestLogger(logger)(mux)))
}
