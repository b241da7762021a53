package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/schooldesk/examvault-api/internal/config"
	"github.com/schooldesk/examvault-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuditHandler      *handler.AuditHandler
	PermissionHandler *handler.PermissionHandler
	ConfigHandler     *handler.ConfigHandler
	StorageHandler    *handler.StorageHandler
	IdentityResolver  fiber.Handler
	AuditWriteLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Identity resolution is best-effort; unauthenticated traffic passes
	// through and identity headers stay authoritative.
	identity := deps.IdentityResolver
	if identity == nil {
		identity = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuditHandler != nil {
		audit := api.Group("/audit", identity)
		deps.AuditHandler.Register(audit, deps.AuditWriteLimiter)
	}

	if deps.ConfigHandler != nil {
		configGroup := api.Group("/config", identity)
		deps.ConfigHandler.Register(configGroup)
	}

	if deps.PermissionHandler != nil {
		permissions := api.Group("/permissions", identity)
		deps.PermissionHandler.Register(permissions)
	}

	if deps.StorageHandler != nil {
		storage := api.Group("/storage", identity)
		deps.StorageHandler.Register(storage)
	}
}
