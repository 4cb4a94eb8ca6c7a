package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
)

type SessionReader interface {
	GetSession(c *fiber.Ctx) (*models.UserSession, error)
}

// AuthRequired stores the caller's session under Locals("user") or answers 401.
func AuthRequired(sessions SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := sessions.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session",
				slog.String("type", "http"),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			return utils.SendUnauthorized(c, "Authentication required")
		}

		c.Locals("user", session)
		return c.Next()
	}
}
