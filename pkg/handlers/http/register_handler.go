package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/user"
	"github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http/request"
	"github.com/pandiarajan-src/task-tracker-api/pkg/validation"
)

const (
	usernameMaxLength = 50
	emailMaxLength    = 254
)

type registerHandler struct {
	logger   *logrus.Logger
	repo     user.Repository
	pipeline *validation.Pipeline
	cfg      *config.AuthConfig
}

func NewRegisterHandler(
	logger *logrus.Logger,
	repo user.Repository,
	pipeline *validation.Pipeline,
	cfg *config.AuthConfig,
) Handler {
	return &registerHandler{
		logger:   logger,
		repo:     repo,
		pipeline: pipeline,
		cfg:      cfg,
	}
}

// Handle @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body request.RegisterRequest true "Registration payload"
// @Success 201 {object} user.User "User created"
// @Failure 409 {object} map[string]interface{} "Email or username already taken"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /api/v1/auth/register [post]
func (h *registerHandler) Handle(c *fiber.Ctx) error {
	raw := rawRequestFrom(c)

	var req request.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		if _, rej := h.pipeline.Process(raw, nil); rej != nil {
			return rejectionResponse(c, rej)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	fields := []validation.FieldCandidate{
		{Name: "username", Value: req.Username, Required: true, MaxLength: usernameMaxLength},
		{Name: "email", Value: req.Email, Required: true, MaxLength: emailMaxLength},
	}
	sanitized, rej := h.pipeline.Process(raw, fields)
	if rej != nil {
		return rejectionResponse(c, rej)
	}

	email := sanitized["email"]
	if !request.ValidEmail(email) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "email must be a valid email address",
			"field": "email",
		})
	}
	if err := req.Validate(h.cfg.PasswordMinLength); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.repo.GetByEmail(c.Context(), email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": domain.ErrEmailAlreadyRegistered.Error()})
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.WithError(err).Error("failed to check existing email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	if _, err := h.repo.GetByUsername(c.Context(), sanitized["username"]); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username is already taken"})
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.WithError(err).Error("failed to check existing username")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		h.logger.WithError(err).Error("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	entity := user.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       sanitized["username"],
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := h.repo.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
