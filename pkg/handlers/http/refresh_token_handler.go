package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/user"
	"github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http/request"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/auth/jwt"
)

type refreshTokenHandler struct {
	logger     *logrus.Logger
	repo       user.Repository
	jwtManager jwt.Manager
}

func NewRefreshTokenHandler(logger *logrus.Logger, repo user.Repository, jwtManager jwt.Manager) Handler {
	return &refreshTokenHandler{
		logger:     logger,
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Handle @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body request.RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} map[string]interface{} "New token pair"
// @Failure 401 {object} map[string]interface{} "Invalid or expired refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *refreshTokenHandler) Handle(c *fiber.Ctx) error {
	var req request.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired refresh token"})
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired refresh token"})
	}
	entity, err := h.repo.Get(c.Context(), userID)
	if err != nil || !entity.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired refresh token"})
	}

	accessToken, err := h.jwtManager.CreateToken(entity.ID, entity.Email, jwt.AccessToken)
	if err != nil {
		h.logger.WithError(err).Error("failed to create access token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to refresh token"})
	}
	refreshToken, err := h.jwtManager.CreateToken(entity.ID, entity.Email, jwt.RefreshToken)
	if err != nil {
		h.logger.WithError(err).Error("failed to create refresh token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to refresh token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}
