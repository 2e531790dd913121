package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/common"
	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/prometheus"
)

// Tier names for the sliding window limits. Auth endpoints get the
// tightest budget, writes a smaller one than reads.
const (
	tierRead  = "read"
	tierWrite = "write"
	tierAuth  = "auth"
)

type rateLimiterMiddleware struct {
	logger       *logrus.Logger
	redis        *redis.Client
	cfg          *config.RateLimitConfig
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

type RateLimiterOpts struct {
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

func NewRateLimiterMiddleware(
	logger *logrus.Logger,
	redisClient *redis.Client,
	cfg *config.RateLimitConfig,
	opts *RateLimiterOpts,
) Middleware {
	timeProvider := time.Now
	uuidProvider := uuid.New
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	if opts != nil && opts.UuidProvider != nil {
		uuidProvider = opts.UuidProvider
	}
	return &rateLimiterMiddleware{
		logger:       logger,
		redis:        redisClient,
		cfg:          cfg,
		timeProvider: timeProvider,
		uuidProvider: uuidProvider,
	}
}

func (m *rateLimiterMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled {
			return c.Next()
		}

		tier, limit := m.tierFor(c)

		window, err := time.ParseDuration(m.cfg.Window)
		if err != nil {
			window = time.Minute
		}

		key := fmt.Sprintf("ratelimit:%s:%s", tier, m.extractKey(c))

		now := m.timeProvider()
		windowStart := now.Add(-window).Unix()

		ctx := c.Context()
		currentCount, err := m.redis.ZCount(ctx, key,
			strconv.FormatInt(windowStart, 10),
			strconv.FormatInt(now.Unix(), 10)).Result()
		if err != nil {
			// Redis being down must not take the API with it.
			m.logger.WithError(err).Error("rate limit counter unavailable")
			return c.Next()
		}

		resetTime := now.Add(window)
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := int64(limit) - currentCount
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if currentCount >= int64(limit) {
			retryAfter := m.cfg.RetryAfterSec
			if retryAfter <= 0 {
				retryAfter = 60
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))

			m.logger.WithFields(logrus.Fields{
				"tier":  tier,
				"key":   key,
				"count": currentCount,
				"limit": limit,
			}).Warn("rate limit exceeded")

			if prometheus.Config.Enabled {
				prometheus.RateLimitExceeded.WithLabelValues(tier).Inc()
			}

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fmt.Sprintf("%s rate limit exceeded, retry after %d seconds", tier, retryAfter),
			})
		}

		requestID := fmt.Sprintf("%d:%s", now.Unix(), m.uuidProvider().String())
		pipe := m.redis.TxPipeline()
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, key, &redis.Z{
			Score:  float64(now.Unix()),
			Member: requestID,
		})
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			m.logger.WithError(err).Error("failed to record rate limit hit")
		}

		return c.Next()
	}
}

func (m *rateLimiterMiddleware) tierFor(c *fiber.Ctx) (string, int) {
	if strings.Contains(c.Path(), "/auth/") {
		return tierAuth, m.cfg.AuthLimit
	}
	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return tierWrite, m.cfg.WriteLimit
	default:
		return tierRead, m.cfg.ReadLimit
	}
}

func (m *rateLimiterMiddleware) extractKey(c *fiber.Ctx) string {
	if userID, ok := c.Locals(common.UserIDContextKey).(string); ok && userID != "" {
		return userID
	}
	return c.IP()
}
