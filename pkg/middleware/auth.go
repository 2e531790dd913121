package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/common"
	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/auth/jwt"
)

const bearerPrefix = "Bearer "

type authMiddleware struct {
	logger     *logrus.Logger
	cfg        *config.AuthConfig
	jwtManager jwt.Manager
}

func NewAuthMiddleware(
	logger *logrus.Logger,
	cfg *config.AuthConfig,
	jwtManager jwt.Manager,
) Middleware {
	return &authMiddleware{
		logger:     logger,
		cfg:        cfg,
		jwtManager: jwtManager,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !m.cfg.Required {
			return ctx.Next()
		}

		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			m.logger.Debug("no bearer token provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := m.jwtManager.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			m.logger.WithError(err).Debug("token validation failed")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		ctx.Locals(common.UserIDContextKey, claims.UserID)
		ctx.Locals(common.UserEmailContextKey, claims.UserEmail)

		return ctx.Next()
	}
}
