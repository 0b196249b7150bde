package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/onboarding-api/internal/api/http/handlers"
	"github.com/spec-kit/onboarding-api/internal/auth"
	"github.com/spec-kit/onboarding-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Applications   *handlers.ApplicationsHandler
	Admin          *handlers.AdminApplicationsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthRateLimit guards the credential endpoints; nil disables it.
	AuthRateLimit fiber.Handler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Post("/applications", cfg.AuthMiddleware.Optional, cfg.Applications.Submit)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.Authorize(domain.RoleAdmin))
	admin.Get("/applications", cfg.Admin.List)
	admin.Get("/applications/:id", cfg.Admin.Get)
	admin.Put("/applications/:id/status", cfg.Admin.UpdateStatus)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", withRateLimit(cfg.AuthRateLimit, cfg.Auth.Register)...)
	authGroup.Post("/login", withRateLimit(cfg.AuthRateLimit, cfg.Auth.Login)...)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.Authorize(), cfg.Auth.Me)
}

func withRateLimit(limiter fiber.Handler, handler fiber.Handler) []fiber.Handler {
	if limiter == nil {
		return []fiber.Handler{handler}
	}
	return []fiber.Handler{limiter, handler}
}
