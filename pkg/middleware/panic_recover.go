package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

// Middleware converts a handler panic into a 500 response instead of a
// dropped connection. The stack goes to the log; the client only ever sees
// a generic message.
func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			m.logger.WithFields(logrus.Fields{
				"panic":  r,
				"method": c.Method(),
				"path":   c.Path(),
				"ip":     c.IP(),
				"stack":  string(debug.Stack()),
			}).Error("recovered from panic while handling request")

			if c.Response().Header.StatusCode() == 0 {
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
		}()

		return c.Next()
	}
}
