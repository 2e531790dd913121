package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

type getRootHandler struct {
	cfg *config.AppConfig
}

func NewGetRootHandler(cfg *config.AppConfig) Handler {
	return &getRootHandler{
		cfg: cfg,
	}
}

// Handle @Summary API landing endpoint
// @Tags Root
// @Produce json
// @Success 200 {object} map[string]interface{} "Service description"
// @Router / [get]
func (h *getRootHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"name":    h.cfg.Name,
		"version": h.cfg.Version,
		"docs":    h.cfg.APIPrefix + "/version",
	})
}
