package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/services"
	"github.com/dwightbot/dwight-web/backend/utils"
	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/announcements"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// WebApp carries the dependencies every handler closes over.
type WebApp struct {
	Sounds        sounds.Service
	Announcements announcements.Service
	Reconcile     reconcile.Service
	Guilds        guilds.Service
	Admins        guilds.AdminChecker
	Sessions      *services.SessionService
	OAuth         *services.OAuthService
	DB            HealthChecker

	FrontendURL    string
	MaxUploadBytes int
	Version        string
	Commit         string
}

// identity returns the caller set by middleware.AuthRequired.
func identity(c *fiber.Ctx) (domain.Identity, error) {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return domain.Identity{}, fiber.ErrUnauthorized
	}
	return session.Identity(), nil
}

func snowflakeParam(c *fiber.Ctx, name string) (snowflake.ID, error) {
	id, err := snowflake.Parse(c.Params(name))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s is not a valid id", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// guildRequest resolves the caller and the :guildID route parameter.
func guildRequest(c *fiber.Ctx) (domain.Identity, snowflake.ID, error) {
	id, err := identity(c)
	if err != nil {
		return id, 0, err
	}
	guildID, err := snowflakeParam(c, "guildID")
	return id, guildID, err
}

func queryLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// fail renders domain errors in the envelope and passes anything else to the error handler.
func fail(c *fiber.Ctx, err error) error {
	if _, ok := err.(*fiber.Error); ok {
		return err
	}
	return utils.SendDomainError(c, err)
}
