package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/auth/jwt"
	"github.com/pandiarajan-src/task-tracker-api/pkg/middleware"
)

func authTestConfig(required bool) *config.AuthConfig {
	return &config.AuthConfig{
		Required:               required,
		SecretKey:              "test-secret",
		AccessTokenExpiryMins:  30,
		RefreshTokenExpiryDays: 7,
	}
}

func newAuthenticatedApp(t *testing.T, cfg *config.AuthConfig, mgr jwt.Manager) *fiber.App {
	t.Helper()
	app := fiber.New()
	mw := middleware.NewAuthMiddleware(logrus.New(), cfg, mgr)
	app.Use(mw.Middleware())
	app.Get("/api/v1/tasks", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthMiddleware_NotRequired_PassesThrough(t *testing.T) {
	cfg := authTestConfig(false)
	app := newAuthenticatedApp(t, cfg, jwt.NewJwtManager(cfg))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	cfg := authTestConfig(true)
	app := newAuthenticatedApp(t, cfg, jwt.NewJwtManager(cfg))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := authTestConfig(true)
	app := newAuthenticatedApp(t, cfg, jwt.NewJwtManager(cfg))

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := authTestConfig(true)
	mgr := jwt.NewJwtManager(cfg)
	app := newAuthenticatedApp(t, cfg, mgr)

	token, err := mgr.CreateToken(uuid.New(), "user@example.com", jwt.AccessToken)
	assert.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_RefreshTokenRejectedForAccess(t *testing.T) {
	cfg := authTestConfig(true)
	mgr := jwt.NewJwtManager(cfg)
	app := newAuthenticatedApp(t, cfg, mgr)

	token, err := mgr.CreateToken(uuid.New(), "user@example.com", jwt.RefreshToken)
	assert.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
