package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"

	"github.com/dwightbot/dwight-web/backend/utils"
)

// RateLimiter is a fixed-window counter per key. Windows expire with the cache entry.
type RateLimiter struct {
	counts *cache.Cache
	window time.Duration
	limit  int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts: cache.New(window, 2*window),
		window: window,
		limit:  limit,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	if err := rl.counts.Add(key, 1, rl.window); err == nil {
		return true
	}
	n, err := rl.counts.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and Increment
		rl.counts.Set(key, 1, rl.window)
		return true
	}
	return n <= rl.limit
}

// RateLimit limits requests per client IP.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	limiter := NewRateLimiter(limit, window)

	return func(c *fiber.Ctx) error {
		ip := utils.GetIPAddress(c)
		if !limiter.Allow(ip) {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("ip", ip),
				slog.String("path", c.Path()),
				slog.Int("limit", limit),
				slog.Duration("window", window),
			)
			return utils.SendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.", nil)
		}
		return c.Next()
	}
}
