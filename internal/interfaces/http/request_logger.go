package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

const (
	localLogger    = "logger"
	localRequestID = "requestid"
)

// RequestID asigna X-Request-ID (respeta el del cliente) y lo deja en c.Locals.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: localRequestID,
	})
}

// RequestLogger registra método, ruta, status y latencia de cada request y
// deja un sublogger con request_id en c.Locals. Va después de RequestID.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(localRequestID).(string)
		l := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, l)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// requestLogger logger del request o uno nulo fuera del middleware.
func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return &l
	}
	nop := zerolog.Nop()
	return &nop
}
