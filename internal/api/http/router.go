package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/expense-service/internal/api/http/handlers"
	"github.com/spec-kit/expense-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Expenses       *handlers.ExpensesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication gate runs for every
// request; its allow-list exempts the /auth and /health prefixes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/check-email", cfg.Auth.CheckEmail)

	users := app.Group("/users")
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Delete("/me", cfg.Users.DeleteMe)

	categories := app.Group("/categories")
	categories.Post("/", cfg.Categories.Create)
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Put("/:id", cfg.Categories.Update)
	categories.Delete("/:id", cfg.Categories.Delete)

	expenses := app.Group("/expenses")
	expenses.Post("/", cfg.Expenses.Create)
	expenses.Get("/", cfg.Expenses.List)
	expenses.Get("/summary", cfg.Expenses.Summary)
	expenses.Get("/:id", cfg.Expenses.Get)
	expenses.Put("/:id", cfg.Expenses.Update)
	expenses.Delete("/:id", cfg.Expenses.Delete)
}
