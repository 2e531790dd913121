package middleware_test

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/pandiarajan-src/task-tracker-api/pkg/common"
	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/middleware"
)

func rateLimitConfig() *config.RateLimitConfig {
	return &config.RateLimitConfig{
		Enabled:       true,
		ReadLimit:     200,
		WriteLimit:    50,
		AuthLimit:     10,
		Window:        "1m",
		RetryAfterSec: 60,
	}
}

func newRateLimitedApp(t *testing.T, mw middleware.Middleware) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(mw.Middleware())
	app.Get("/api/v1/tasks", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/api/v1/auth/login", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimiter_Disabled_PassesThrough(t *testing.T) {
	redisClient, _ := redismock.NewClientMock()
	cfg := rateLimitConfig()
	cfg.Enabled = false

	mw := middleware.NewRateLimiterMiddleware(logrus.New(), redisClient, cfg, nil)
	app := newRateLimitedApp(t, mw)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiter_UnderLimit_RecordsHit(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(false)

	fixedTime := time.Unix(1740730536, 0)
	uid := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	window := time.Minute
	windowStart := fixedTime.Add(-window).Unix()
	testKey := "ratelimit:read:0.0.0.0"

	mock.ExpectZCount(testKey,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(fixedTime.Unix(), 10)).SetVal(5)
	mock.ExpectTxPipeline()
	mock.ExpectZRemRangeByScore(testKey, "0", strconv.FormatInt(windowStart, 10)).SetVal(1)
	mock.ExpectZAdd(testKey, &redis.Z{
		Score:  float64(fixedTime.Unix()),
		Member: strconv.FormatInt(fixedTime.Unix(), 10) + ":" + uid.String(),
	}).SetVal(1)
	mock.ExpectExpire(testKey, window).SetVal(true)
	mock.ExpectTxPipelineExec()

	mw := middleware.NewRateLimiterMiddleware(logrus.New(), redisClient, rateLimitConfig(), &middleware.RateLimiterOpts{
		TimeProvider: func() time.Time { return fixedTime },
		UuidProvider: func() uuid.UUID { return uid },
	})
	app := newRateLimitedApp(t, mw)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "200", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "195", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_AuthenticatedRequest_KeyedByUserID(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(false)

	fixedTime := time.Unix(1740730536, 0)
	uid := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	window := time.Minute
	windowStart := fixedTime.Add(-window).Unix()
	userID := "11111111-1111-1111-1111-111111111111"
	testKey := "ratelimit:read:" + userID

	mock.ExpectZCount(testKey,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(fixedTime.Unix(), 10)).SetVal(0)
	mock.ExpectTxPipeline()
	mock.ExpectZRemRangeByScore(testKey, "0", strconv.FormatInt(windowStart, 10)).SetVal(0)
	mock.ExpectZAdd(testKey, &redis.Z{
		Score:  float64(fixedTime.Unix()),
		Member: strconv.FormatInt(fixedTime.Unix(), 10) + ":" + uid.String(),
	}).SetVal(1)
	mock.ExpectExpire(testKey, window).SetVal(true)
	mock.ExpectTxPipelineExec()

	mw := middleware.NewRateLimiterMiddleware(logrus.New(), redisClient, rateLimitConfig(), &middleware.RateLimiterOpts{
		TimeProvider: func() time.Time { return fixedTime },
		UuidProvider: func() uuid.UUID { return uid },
	})

	// Identity is resolved before the limiter on protected routes, so the
	// counter must be keyed on the user id instead of the client IP.
	app := fiber.New()
	app.Get("/api/v1/tasks",
		func(c *fiber.Ctx) error {
			c.Locals(common.UserIDContextKey, userID)
			return c.Next()
		},
		mw.Middleware(),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_LimitExceeded_Returns429(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()

	fixedTime := time.Unix(1740730536, 0)
	window := time.Minute
	windowStart := fixedTime.Add(-window).Unix()
	testKey := "ratelimit:auth:0.0.0.0"

	mock.ExpectZCount(testKey,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(fixedTime.Unix(), 10)).SetVal(10)

	mw := middleware.NewRateLimiterMiddleware(logrus.New(), redisClient, rateLimitConfig(), &middleware.RateLimiterOpts{
		TimeProvider: func() time.Time { return fixedTime },
	})
	app := newRateLimitedApp(t, mw)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

func TestRateLimiter_RedisDown_FailsOpen(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.ExpectZCount("ratelimit:read:0.0.0.0", "0", "0").SetErr(redis.ErrClosed)

	mw := middleware.NewRateLimiterMiddleware(logrus.New(), redisClient, rateLimitConfig(), nil)
	app := newRateLimitedApp(t, mw)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
