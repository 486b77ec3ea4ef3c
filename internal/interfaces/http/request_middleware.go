package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/observability/metrics"
	"github.com/jhoicas/MantenPro-api/pkg/logger"
)

// RequestLogger registra cada petición (método, ruta, estado, duración) y la
// observa en el histograma HTTP. Usa la ruta registrada, no la URL, para no
// multiplicar series por ID.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El error handler de fiber aún no escribió la respuesta.
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path

		metrics.ObserveHTTPRequest(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("duration", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
