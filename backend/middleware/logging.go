package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/utils"
)

// LoggingMiddleware logs every request once it has been handled.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler runs after this middleware returns
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("took", time.Since(start)),
			slog.String("ip", utils.GetIPAddress(c)),
		}
		if session, ok := utils.ExtractUserSession(c); ok {
			attrs = append(attrs, slog.String("user_id", session.UserID))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		slog.LogAttrs(c.UserContext(), level, "HTTP request processed", attrs...)
		return err
	}
}
