package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/UnatyNomsa/pitchpal/internal/api/handlers"
	"github.com/UnatyNomsa/pitchpal/internal/api/middleware"
	"github.com/UnatyNomsa/pitchpal/internal/config"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/metrics"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Session  *handlers.SessionHandler
	Analysis *handlers.AnalysisHandler
	User     *handlers.UserHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit(50, 100)) // 50 req/sec, burst of 100

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks and metrics
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Token minting
		r.Post("/api/v1/auth/token", h.Auth.Token)
	})

	// API routes. Auth is optional: requests without a token act as the demo
	// identity or the userId they name.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthMiddleware(cfg.Auth.JWTSecret))

		r.Route("/api/v1", func(r chi.Router) {
			// Practice sessions
			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", h.Session.List)
				r.Post("/", h.Session.Create)
				r.Get("/{id}", h.Session.Get)
				r.Delete("/{id}", h.Session.Delete)
				r.Post("/{id}/analyze", h.Session.Analyze)
			})

			// Sessionless analysis and tips
			r.Post("/analyze-text", h.Analysis.AnalyzeText)
			r.Get("/tips", h.Analysis.Tips)

			// Subscriptions
			r.Route("/users/{id}/subscription", func(r chi.Router) {
				r.Get("/", h.User.GetSubscription)
				r.Put("/", h.User.UpgradeSubscription)
			})
		})

		// Unversioned aliases for frontend compatibility
		r.Route("/api/sessions", func(r chi.Router) {
			r.Get("/", h.Session.List)
			r.Post("/", h.Session.Create)
			r.Get("/{id}", h.Session.Get)
			r.Delete("/{id}", h.Session.Delete)
			r.Post("/{id}/analyze", h.Session.Analyze)
		})
		r.Post("/api/analyze-text", h.Analysis.AnalyzeText)
		r.Get("/api/tips", h.Analysis.Tips)
		r.Get("/api/users/{id}/subscription", h.User.GetSubscription)
		r.Put("/api/users/{id}/subscription", h.User.UpgradeSubscription)
	})

	return r
}
