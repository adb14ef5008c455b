package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-management/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Agents         *handlers.AgentsHandler
	Collaboration  *handlers.CollaborationHandler
	Mail           *handlers.MailHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/debug/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.Auth.Logout)

	api := app.Group("", cfg.AuthMiddleware)

	agents := api.Group("/agents")
	agents.Get("/", cfg.Agents.List)
	agents.Post("/", cfg.Agents.Create)
	agents.Get("/:id", cfg.Agents.Get)
	agents.Put("/:id", cfg.Agents.Update)
	agents.Delete("/:id", cfg.Agents.Delete)

	api.Get("/employees", cfg.Collaboration.ListEmployees)
	api.Get("/clients", cfg.Collaboration.ListClients)

	teams := api.Group("/teams")
	teams.Get("/", cfg.Collaboration.ListTeams)
	teams.Get("/:id/messages", cfg.Collaboration.ListMessages)
	teams.Post("/:id/messages", cfg.Collaboration.SendMessage)

	api.Post("/communications/email", cfg.Mail.Send)
}
