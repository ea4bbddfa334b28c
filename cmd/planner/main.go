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
	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/handlers"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/samples"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	pol := policy.Default()
	if cfg.PolicyPath != "" {
		if pol, err = policy.Load(cfg.PolicyPath); err != nil {
			zap.S().Fatalf("[POLICY] %v", err)
		}
		zap.S().Infof("[POLICY] Loaded %s", cfg.PolicyPath)
	}
	if _, err := samples.All(); err != nil {
		zap.S().Fatalf("[SAMPLES] %v", err)
	}

	drawingHandler := handlers.NewDrawingHandler(drawing.NewService(pol, cfg.AssetsDir))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Planner Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("PLANNER"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Drawing Routes
	// ============================================================

	app.Post("/plan", drawingHandler.Plan)
	app.Post("/section", drawingHandler.Section)
	app.Post("/validate", drawingHandler.Validate)
	app.Get("/samples", drawingHandler.ListSamples)
	app.Get("/samples/:name", drawingHandler.GetSample)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zap.S().Infof("Starting Planner Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		zap.S().Fatalf("Failed to start server: %v", err)
	}
}
