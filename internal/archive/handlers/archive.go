package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shaft-planner/internal/archive/models"
	"shaft-planner/internal/archive/repository"
	"shaft-planner/internal/archive/service"
	"shaft-planner/internal/planner/drawing"
	planner "shaft-planner/internal/planner/handlers"
	"shaft-planner/internal/planner/render"
)

// ============================================================
// Archive Handler
// ============================================================

type ArchiveHandler struct {
	repo    *repository.Repository
	storage *service.FileStorage
	svc     *drawing.Service
}

func NewArchiveHandler(repo *repository.Repository, storage *service.FileStorage, svc *drawing.Service) *ArchiveHandler {
	return &ArchiveHandler{
		repo:    repo,
		storage: storage,
		svc:     svc,
	}
}

type createRequest struct {
	Name    string          `json:"name"`
	Format  string          `json:"format"`
	Request drawing.Request `json:"request"`
}

// Create проверяет и рисует запрос, затем сохраняет запрос, картинку и запись в базе.
func (h *ArchiveHandler) Create(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req createRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sum, err := h.svc.Validate(&req.Request)
	if err != nil {
		return planner.Fail(c, "ARCHIVE", err)
	}
	var image bytes.Buffer
	if err := h.svc.Render(&req.Request, format, &image); err != nil {
		return planner.Fail(c, "ARCHIVE", err)
	}
	body, err := json.Marshal(req.Request)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode request"})
	}

	d := &models.Drawing{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Kind:    string(req.Request.Kind),
		Format:  string(format),
		Request: body,
		Lifts:   len(sum.Lifts),
	}
	d.TotalWidth, d.TotalDepth = sum.TotalWidth, sum.TotalDepth
	if sum.Kind == drawing.KindSection && len(sum.Lifts) > 0 {
		d.TotalWidth, d.TotalDepth = sum.Lifts[0].ShaftWidth, sum.Lifts[0].ShaftDepth
	}

	if err := h.storage.SaveFile(d.ID, h.storage.RequestPath(d.ID), body); err != nil {
		zap.S().Errorf("[ARCHIVE] save request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}
	if err := h.storage.SaveFile(d.ID, h.storage.ImagePath(d.ID, d.Format), image.Bytes()); err != nil {
		zap.S().Errorf("[ARCHIVE] save image error: %v", err)
		h.cleanup(d.ID)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}
	if err := h.repo.Create(c.Context(), d); err != nil {
		zap.S().Errorf("[ARCHIVE] insert error: %v", err)
		h.cleanup(d.ID)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store drawing"})
	}

	zap.S().Infof("[ARCHIVE] Stored %s %q as %s", d.Kind, d.Name, d.ID)
	return c.Status(http.StatusCreated).JSON(d)
}

// List перечисляет чертежи; ?kind=plan|section фильтрует по виду.
func (h *ArchiveHandler) List(c fiber.Ctx) error {
	items, err := h.repo.List(c.Context(), c.Query("kind"))
	if err != nil {
		zap.S().Errorf("[ARCHIVE] list error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list drawings"})
	}
	return c.JSON(items)
}

// Get отдаёт запись вместе с исходным запросом.
func (h *ArchiveHandler) Get(c fiber.Ctx) error {
	d, ok, err := h.lookup(c)
	if !ok {
		return err
	}
	return c.JSON(d)
}

// GetImage отдаёт сохранённую картинку.
func (h *ArchiveHandler) GetImage(c fiber.Ctx) error {
	d, ok, err := h.lookup(c)
	if !ok {
		return err
	}

	path := h.storage.ImagePath(d.ID, d.Format)
	if _, err := os.Stat(path); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	c.Set("Content-Type", render.Format(d.Format).ContentType())
	return c.SendFile(path)
}

// Delete удаляет запись и файлы чертежа.
func (h *ArchiveHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.repo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
		}
		zap.S().Errorf("[ARCHIVE] delete error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete drawing"})
	}
	h.cleanup(id)
	return c.SendStatus(http.StatusNoContent)
}

// Ready проверяет доступность базы.
func (h *ArchiveHandler) Ready(c fiber.Ctx) error {
	if err := h.repo.Ping(c.Context()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Helpers
// ============================================================

// lookup при !ok уже записал 404/500 в ответ; вызывающему остаётся вернуть err.
func (h *ArchiveHandler) lookup(c fiber.Ctx) (*models.Drawing, bool, error) {
	d, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err == nil {
		return d, true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
	}
	zap.S().Errorf("[ARCHIVE] lookup error: %v", err)
	return nil, false, c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load drawing"})
}

func (h *ArchiveHandler) cleanup(id string) {
	if err := h.storage.Remove(id); err != nil {
		zap.S().Warnf("[ARCHIVE] cleanup %s: %v", id, err)
	}
}
