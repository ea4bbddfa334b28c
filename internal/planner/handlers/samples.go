package handlers

import (
	"github.com/gofiber/fiber/v3"

	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/samples"
)

// ============================================================
// Sample Catalogue Handlers
// ============================================================

type sampleEntry struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        drawing.Kind `json:"kind"`
}

// ListSamples перечисляет встроенные образцы чертежей.
func (h *DrawingHandler) ListSamples(c fiber.Ctx) error {
	all, err := samples.All()
	if err != nil {
		return Fail(c, "SAMPLES", err)
	}
	out := make([]sampleEntry, 0, len(all))
	for _, s := range all {
		out = append(out, sampleEntry{Name: s.Name, Description: s.Description, Kind: s.Request.Kind})
	}
	return c.JSON(out)
}

// GetSample рисует образец по имени; ?format=json отдаёт сам запрос.
func (h *DrawingHandler) GetSample(c fiber.Ctx) error {
	s, ok, err := samples.Get(c.Params("name"))
	if err != nil {
		return Fail(c, "SAMPLES", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sample not found"})
	}
	if c.Query("format") == formatJSON {
		return c.JSON(s)
	}
	req := s.Request
	return h.render(c, "SAMPLES", &req)
}
