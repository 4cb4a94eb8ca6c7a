package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
)

func ChangesPending(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		pending, err := webApp.Reconcile.HasPendingChanges(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.PendingChangesDTO{Pending: pending}, "")
	}
}

func ChangesApply(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		if err = webApp.Reconcile.ApplyChanges(c.UserContext(), id, guildID); err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.PendingChangesDTO{Pending: false}, "Changes applied")
	}
}
