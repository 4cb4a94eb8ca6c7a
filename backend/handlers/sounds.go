package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

func SoundsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		list, err := webApp.Sounds.ListSounds(c.UserContext(), id, guildID, c.Query("q"))
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewSoundDTOs(list), "")
	}
}

func SoundsVisible(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		list, err := webApp.Sounds.ListVisibleSounds(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewSoundDTOs(list), "")
	}
}

func SoundsQuota(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		quota, err := webApp.Sounds.GetQuota(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewQuotaDTO(quota), "")
	}
}

func SoundsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		req, data, err := utils.ReadSoundUpload(c, webApp.MaxUploadBytes)
		if err != nil {
			return fail(c, err)
		}

		sound, err := webApp.Sounds.CreateSound(c.UserContext(), id, sounds.CreateParams{
			GuildID: guildID,
			Name:    req.Name,
			Hidden:  req.Hidden,
			Data:    data,
		})
		if errors.Is(err, domain.ErrTranscodeFailed) && sound != nil {
			// the row exists; the caller can delete it and upload again
			status, code := utils.StatusFor(err)
			return utils.SendError(c, status, code, "Sound was saved but could not be converted",
				map[string]string{"sound_id": sound.ID})
		}
		if err != nil {
			return fail(c, err)
		}
		return utils.SendCreated(c, models.NewSoundDTO(sound), "Sound created")
	}
}

func SoundsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity(c)
		if err != nil {
			return fail(c, err)
		}

		var req models.UpdateSoundRequest
		if err = c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Malformed body")
		}

		sound, err := webApp.Sounds.UpdateSound(c.UserContext(), id, c.Params("soundID"), sounds.UpdateParams{
			Name:   req.Name,
			Hidden: req.Hidden,
		})
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewSoundDTO(sound), "Sound updated")
	}
}

func SoundsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity(c)
		if err != nil {
			return fail(c, err)
		}

		if err = webApp.Sounds.DeleteSound(c.UserContext(), id, c.Params("soundID")); err != nil {
			return fail(c, err)
		}
		return utils.SendNoContent(c)
	}
}
