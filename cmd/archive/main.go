package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.uber.org/zap"

	"shaft-planner/internal/archive/handlers"
	"shaft-planner/internal/archive/repository"
	"shaft-planner/internal/archive/service"
	"shaft-planner/internal/common/config"
	"shaft-planner/internal/common/logging"
	"shaft-planner/internal/common/middleware"
	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Archive Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.OpenSQLite(cfg.ArchiveDBPath)
	if err != nil {
		zap.S().Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_archive.sql"); err != nil {
		zap.S().Fatalf("init db: %v", err)
	}

	pol := policy.Default()
	if cfg.PolicyPath != "" {
		if pol, err = policy.Load(cfg.PolicyPath); err != nil {
			zap.S().Fatalf("[POLICY] %v", err)
		}
	}

	fileStorage := service.NewFileStorage(cfg.ArchiveStorageRoot)
	archiveHandler := handlers.NewArchiveHandler(repo, fileStorage, drawing.NewService(pol, cfg.AssetsDir))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Archive Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("ARCHIVE"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", archiveHandler.Ready)

	// ============================================================
	// Archive Routes
	// ============================================================

	app.Post("/drawings", archiveHandler.Create)
	app.Get("/drawings", archiveHandler.List)
	app.Get("/drawings/:id", archiveHandler.Get)
	app.Get("/drawings/:id/image", archiveHandler.GetImage)
	app.Delete("/drawings/:id", archiveHandler.Delete)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zap.S().Infof("Starting Archive Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		zap.S().Fatalf("Failed to start server: %v", err)
	}
}
