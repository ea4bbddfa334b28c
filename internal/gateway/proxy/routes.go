package proxy

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Service Routes
// ============================================================

// Register вешает публичные маршруты /api/v1 на сервисы планировщика и архива.
func Register(api fiber.Router, plannerURL, archiveURL string) {
	// Planner Service
	api.Post("/plan", ProxyTo(plannerURL+"/plan"))
	api.Post("/section", ProxyTo(plannerURL+"/section"))
	api.Post("/validate", ProxyTo(plannerURL+"/validate"))
	api.Get("/samples", ProxyTo(plannerURL+"/samples"))
	api.Get("/samples/:name", func(c fiber.Ctx) error {
		return Forward(c, fmt.Sprintf("%s/samples/%s", plannerURL, c.Params("name")))
	})

	// Archive Service
	api.Post("/drawings", ProxyTo(archiveURL+"/drawings"))
	api.Get("/drawings", ProxyTo(archiveURL+"/drawings"))
	api.Get("/drawings/:id", func(c fiber.Ctx) error {
		return Forward(c, fmt.Sprintf("%s/drawings/%s", archiveURL, c.Params("id")))
	})
	api.Get("/drawings/:id/image", func(c fiber.Ctx) error {
		return Forward(c, fmt.Sprintf("%s/drawings/%s/image", archiveURL, c.Params("id")))
	})
	api.Delete("/drawings/:id", func(c fiber.Ctx) error {
		return Forward(c, fmt.Sprintf("%s/drawings/%s", archiveURL, c.Params("id")))
	})
}
