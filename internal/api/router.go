package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/grindboard-api/internal/api/middleware"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Users  service.UserService
	Tasks  service.TaskService
	Tags   service.TagService
	Issuer auth.TokenIssuer
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(svc Services, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(logger))

	authHandler := NewAuthHandler(svc.Users, svc.Issuer, logger)
	taskHandler := NewTaskHandler(svc.Tasks, logger)
	tagHandler := NewTagHandler(svc.Tags, logger)
	authMiddleware := middleware.NewAuthMiddleware(svc.Issuer, svc.Users)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/me", authHandler.CurrentUser)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/{id}", taskHandler.GetTask)
				r.Put("/{id}", taskHandler.UpdateTask)
				r.Patch("/{id}", taskHandler.UpdateTask)
				r.Delete("/{id}", taskHandler.DeleteTask)
				r.Post("/{id}/complete", taskHandler.ToggleComplete)
				r.Post("/{id}/move", taskHandler.MoveTask)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tagHandler.ListTags)
				r.Post("/", tagHandler.CreateTag)
				r.Put("/{id}", tagHandler.RenameTag)
				r.Delete("/{id}", tagHandler.DeleteTag)
				r.Post("/tasks/{task_id}/tags", tagHandler.CreateAndAddTag)
				r.Post("/tasks/{task_id}/tags/{tag_id}", tagHandler.AddTagToTask)
				r.Delete("/tasks/{task_id}/tags/{tag_id}", tagHandler.RemoveTagFromTask)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.Any("error", err))
		}
	})

	return r
}
