package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"shaft-planner/internal/common/config"
	"shaft-planner/internal/common/logging"
	"shaft-planner/internal/common/middleware"
	"shaft-planner/internal/gateway/handlers"
	"shaft-planner/internal/gateway/proxy"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Shaft Planner Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(middleware.Logger("GATEWAY"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]string{
		"planner": cfg.PlannerURL,
		"archive": cfg.ArchiveURL,
	}))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec("docs/shaft-planner.openapi.yaml"))

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Shaft Planner API v1",
			"status":  "ok",
		})
	})

	proxy.Register(api, cfg.PlannerURL, cfg.ArchiveURL)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zap.S().Infof("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	zap.S().Infof("Proxying planner to %s, archive to %s", cfg.PlannerURL, cfg.ArchiveURL)

	if err := app.Listen(addr); err != nil {
		zap.S().Fatalf("Failed to start server: %v", err)
	}
}
