package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Logger Middleware
// ============================================================

const RequestIDHeader = "X-Request-ID"

// Logger пишет каждый запрос в глобальный zap-логгер с тегом сервиса.
// Входящий X-Request-ID сохраняется, иначе выдаётся новый.
func Logger(tag string) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		log := zap.S().With("request_id", id, "status", status, "latency", time.Since(start))
		switch {
		case status >= 500:
			log.Errorf("[%s] %s %s: %v", tag, c.Method(), c.Path(), err)
		case status >= 400:
			log.Warnf("[%s] %s %s", tag, c.Method(), c.Path())
		default:
			log.Infof("[%s] %s %s", tag, c.Method(), c.Path())
		}
		return err
	}
}
