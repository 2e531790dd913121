package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/user"
	"github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http/request"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/auth/jwt"
)

type loginHandler struct {
	logger     *logrus.Logger
	repo       user.Repository
	jwtManager jwt.Manager
}

func NewLoginHandler(logger *logrus.Logger, repo user.Repository, jwtManager jwt.Manager) Handler {
	return &loginHandler{
		logger:     logger,
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Handle @Summary Authenticate a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body request.LoginRequest true "Login payload"
// @Success 200 {object} map[string]interface{} "Token pair"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := h.repo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}
	if !entity.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "account is disabled"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entity.HashedPassword), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	accessToken, err := h.jwtManager.CreateToken(entity.ID, entity.Email, jwt.AccessToken)
	if err != nil {
		h.logger.WithError(err).Error("failed to create access token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to authenticate"})
	}
	refreshToken, err := h.jwtManager.CreateToken(entity.ID, entity.Email, jwt.RefreshToken)
	if err != nil {
		h.logger.WithError(err).Error("failed to create refresh token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to authenticate"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}
