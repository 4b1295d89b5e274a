package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-projects-nosql/internal/application/auth"
	"github.com/go-projects-nosql/internal/application/design"
	"github.com/go-projects-nosql/internal/application/notification"
	"github.com/go-projects-nosql/internal/application/project"
	"github.com/go-projects-nosql/internal/application/task"
	"github.com/go-projects-nosql/internal/application/user"
	"github.com/go-projects-nosql/internal/application/wireframe"
	"github.com/go-projects-nosql/internal/config"
	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-projects-nosql/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, on the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	// Generation hits an external model; one request every 2 seconds, burst of 5.
	generateRL := appmiddleware.NewRateLimiter(rate.Limit(0.5), 5)

	wireframeDeps := wireframe.ServiceDeps{
		Model:          deps.WireframeModel,
		GenerationRepo: deps.WireframeRepo,
		ProjectRepo:    deps.ProjectRepo,
		Objects:        deps.S3Store,
	}
	if deps.LLM != nil {
		wireframeDeps.LLM = deps.LLM
	}

	authSvc := auth.NewService(deps.UserRepo, deps.JWTProvider, deps.GoogleVerifier)
	userSvc := user.NewService(deps.UserRepo)
	projectSvc := project.NewService(project.ServiceDeps{
		ProjectRepo: deps.ProjectRepo,
		TaskRepo:    deps.TaskRepo,
		DesignRepo:  deps.DesignRepo,
		Objects:     deps.S3Store,
	})
	taskSvc := task.NewService(deps.TaskRepo, deps.ProjectRepo)
	designSvc := design.NewService(design.ServiceDeps{
		DesignRepo:  deps.DesignRepo,
		ProjectRepo: deps.ProjectRepo,
		Objects:     deps.S3Store,
	})
	wireframeSvc := wireframe.NewService(wireframeDeps)
	notifSvc := notification.NewService(notification.ServiceDeps{
		NotificationRepo: deps.NotificationRepo,
		TaskRepo:         deps.TaskRepo,
		ProjectRepo:      deps.ProjectRepo,
		Scheduler:        deps.Scheduler,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	taskH := handler.NewTaskHandler(taskSvc)
	designH := handler.NewDesignHandler(designSvc)
	wireframeH := handler.NewWireframeHandler(wireframeSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Health)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/google", authH.Google)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/auth/me", authH.Me)

			r.Put("/users/profile", userH.UpdateProfile)
			r.Put("/users/profile/image", userH.UpdateProfileImage)
			r.Put("/users/password", userH.ChangePassword)

			r.Get("/projects", projectH.List)
			r.Post("/projects", projectH.Create)
			r.Get("/projects/{id}", projectH.Get)
			r.Put("/projects/{id}", projectH.Update)
			r.Delete("/projects/{id}", projectH.Delete)

			r.Get("/tasks/project/{projectId}", taskH.ListByProject)
			r.Post("/tasks/project/{projectId}", taskH.Create)
			r.Put("/tasks/{id}", taskH.Update)
			r.Delete("/tasks/{id}", taskH.Delete)
			r.Put("/tasks/{id}/status", taskH.ToggleStatus)

			r.Get("/designs/project/{projectId}", designH.List)
			r.Post("/designs/project/{projectId}", designH.Create)
			r.Get("/designs/project/{projectId}/stats", designH.Stats)
			r.Put("/designs/{id}", designH.Update)
			r.Delete("/designs/{id}", designH.Delete)

			r.With(generateRL.Limit).Post("/wireframe/generate", wireframeH.Generate)
			r.Get("/wireframe/count/{projectId}", wireframeH.Count)
			r.With(generateRL.Limit).Post("/wireframe/snapshot", wireframeH.Snapshot)

			r.Get("/notifications", notifH.List)
			r.Get("/notifications/deadlines", notifH.Deadlines)
			r.Get("/notifications/count", notifH.Count)
			r.Put("/notifications/read-all", notifH.MarkAllRead)
			r.Put("/notifications/{id}/read", notifH.MarkRead)
			r.Post("/notifications/test-deadline-check", notifH.TriggerDeadlineCheck)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
			})
		})
	})

	return r
}
