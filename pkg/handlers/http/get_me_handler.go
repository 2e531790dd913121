package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/common"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/user"
)

type getMeHandler struct {
	logger *logrus.Logger
	repo   user.Repository
}

func NewGetMeHandler(logger *logrus.Logger, repo user.Repository) Handler {
	return &getMeHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} user.User "Current user"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Router /api/v1/auth/me [get]
func (h *getMeHandler) Handle(c *fiber.Ctx) error {
	rawID, ok := c.Locals(common.UserIDContextKey).(string)
	if !ok || rawID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	entity, err := h.repo.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
