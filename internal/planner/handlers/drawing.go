package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/render"
)

// ============================================================
// Drawing Handler
// ============================================================

// formatJSON отдаёт геометрию и размеры вместо картинки.
const formatJSON = "json"

type DrawingHandler struct {
	svc *drawing.Service
}

func NewDrawingHandler(svc *drawing.Service) *DrawingHandler {
	return &DrawingHandler{svc: svc}
}

// Plan рисует план шахт. ?format=png|svg|json
func (h *DrawingHandler) Plan(c fiber.Ctx) error {
	zap.S().Debugf("[PLAN] Received request, %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}
	req := drawing.NewPlanRequest()
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		zap.S().Debugf("[PLAN] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	if c.Query("format") == formatJSON {
		res, err := h.svc.Plan(&req)
		if err != nil {
			return Fail(c, "PLAN", err)
		}
		return c.JSON(res)
	}
	return h.render(c, "PLAN", &drawing.Request{Kind: drawing.KindPlan, Plan: &req})
}

// Section рисует разрез одного лифта. ?format=png|svg|json
func (h *DrawingHandler) Section(c fiber.Ctx) error {
	zap.S().Debugf("[SECTION] Received request, %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}
	req := drawing.NewSectionRequest()
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		zap.S().Debugf("[SECTION] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	if c.Query("format") == formatJSON {
		res, err := h.svc.Section(&req)
		if err != nil {
			return Fail(c, "SECTION", err)
		}
		return c.JSON(res)
	}
	return h.render(c, "SECTION", &drawing.Request{Kind: drawing.KindSection, Section: &req})
}

// Validate проверяет запрос любого вида и возвращает вычисленные размеры шахт без рисования.
func (h *DrawingHandler) Validate(c fiber.Ctx) error {
	var req drawing.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	sum, err := h.svc.Validate(&req)
	if err != nil {
		return Fail(c, "VALIDATE", err)
	}
	return c.JSON(fiber.Map{"valid": true, "summary": sum})
}

func (h *DrawingHandler) render(c fiber.Ctx, tag string, req *drawing.Request) error {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := h.svc.Render(req, format, &buf); err != nil {
		return Fail(c, tag, err)
	}
	c.Set("Content-Type", format.ContentType())
	return c.Send(buf.Bytes())
}

// Fail переводит ошибку сервиса в HTTP-ответ: 422 с перечнем нарушений, 400 для битого запроса.
func Fail(c fiber.Ctx, tag string, err error) error {
	switch {
	case errors.Is(err, drawing.ErrInvalidRequest):
		zap.S().Infof("[%s] Rejected: %v", tag, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    drawing.ErrInvalidRequest.Error(),
			"problems": lift.Problems(err),
		})
	case errors.Is(err, drawing.ErrMalformedRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		zap.S().Errorf("[%s] Render error: %v", tag, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
