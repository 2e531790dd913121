package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

type corsMiddleware struct {
	allowOrigins     []string
	allowMethods     []string
	allowHeaders     []string
	allowCredentials bool
}

func NewCORSMiddleware(cfg *config.CORSConfig) Middleware {
	return &corsMiddleware{
		allowOrigins:     cfg.AllowOrigins,
		allowMethods:     cfg.AllowMethods,
		allowHeaders:     cfg.AllowHeaders,
		allowCredentials: cfg.AllowCredentials,
	}
}

func (m *corsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}

		allowed := false
		for _, o := range m.allowOrigins {
			if o == "*" || strings.EqualFold(o, origin) {
				allowed = true
				break
			}
		}
		if allowed {
			c.Set("Vary", "Origin")
			if m.allowCredentials {
				c.Set("Access-Control-Allow-Origin", origin)
				c.Set("Access-Control-Allow-Credentials", "true")
			} else {
				if hasStar(m.allowOrigins) {
					c.Set("Access-Control-Allow-Origin", "*")
				} else {
					c.Set("Access-Control-Allow-Origin", origin)
				}
			}

			if c.Method() == fiber.MethodOptions {
				reqMethod := c.Get("Access-Control-Request-Method")
				if reqMethod != "" {
					c.Set("Access-Control-Allow-Methods", strings.Join(m.allowMethods, ", "))
					if len(m.allowHeaders) > 0 {
						c.Set("Access-Control-Allow-Headers", strings.Join(m.allowHeaders, ", "))
					} else {
						c.Set("Access-Control-Allow-Headers", "Content-Type")
					}
					return c.SendStatus(fiber.StatusNoContent)
				}
			}
		}
		return c.Next()
	}
}

func hasStar(arr []string) bool {
	for _, v := range arr {
		if v == "*" {
			return true
		}
	}
	return false
}
