package server

import (
	"time"

	"bedrot-sim/internal/common/config"
	commonhandlers "bedrot-sim/internal/common/handlers"
	"bedrot-sim/internal/common/middleware"
	"bedrot-sim/internal/wizard/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

const openAPIPath = "docs/openapi.yaml"

// ============================================================
// Application
// ============================================================

// New собирает fiber-приложение со всеми маршрутами сервиса.
func New(cfg *config.Config, wizard *handlers.WizardHandler, db commonhandlers.Pinger, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Bed Rot Simulator",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	if cfg.IsDevelopment() {
		app.Use(middleware.Logger())
	}
	app.Use(middleware.CORS(nil))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", commonhandlers.LivenessProbe)
	app.Get("/health/ready", commonhandlers.ReadinessProbe(db))
	app.Get("/health/startup", commonhandlers.StartupProbe)

	app.Get("/docs/openapi.yaml", commonhandlers.SwaggerSpec(openAPIPath))
	app.Get("/docs", commonhandlers.SwaggerUI)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Bed Rot Simulator v1",
			"status":  "ok",
		})
	})

	wizard.Register(api)

	return app
}
