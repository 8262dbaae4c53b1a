package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eats-service/internal/api/http/handlers"
	"github.com/spec-kit/eats-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	GraphQL            *handlers.GraphQLHandler
	IdentityMiddleware *auth.IdentityMiddleware
}

// RegisterRoutes wires HTTP routes. The identity middleware runs only on the
// mutating GraphQL endpoint and never rejects a request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/graphql", cfg.IdentityMiddleware.Handle, cfg.GraphQL.Post)
}
