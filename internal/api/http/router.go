package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registration-service/internal/api/http/handlers"
	"github.com/spec-kit/registration-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Registrations   *handlers.RegistrationsHandler
	Admin           *handlers.AdminHandler
	Checkin         *handlers.CheckinHandler
	AdminMiddleware *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/registrations", cfg.Registrations.Register)
	app.Get("/registrations/:id", cfg.Registrations.Get)

	app.Post("/auth/admin/login", cfg.Admin.Login)

	admin := app.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Get("/registrations", cfg.Admin.List)
	admin.Get("/registrations/export", cfg.Admin.Export)
	admin.Post("/registrations/:id/approve", cfg.Admin.Approve)
	admin.Post("/registrations/:id/payments", cfg.Admin.AddPayment)
	admin.Post("/registrations/:id/ticket", cfg.Admin.IssueTicket)
	admin.Post("/checkin", cfg.Checkin.CheckIn)
}
