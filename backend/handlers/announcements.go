package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
)

func AnnouncementsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		list, err := webApp.Announcements.ListAnnouncements(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}

		out := make([]models.AnnouncementDTO, 0, len(list))
		for _, a := range list {
			out = append(out, models.NewAnnouncementDTO(a))
		}
		return utils.SendSuccess(c, out, "")
	}
}

func AnnouncementsUpsert(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}
		userID, err := snowflakeParam(c, "userID")
		if err != nil {
			return fail(c, err)
		}

		var req models.UpsertAnnouncementRequest
		if err = c.BodyParser(&req); err != nil || req.SoundID == "" {
			return utils.SendBadRequest(c, "sound_id is required")
		}

		announcement, err := webApp.Announcements.UpsertAnnouncement(c.UserContext(), id, guildID, userID, req.SoundID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewAnnouncementDTO(announcement), "Announcement saved")
	}
}

func AnnouncementsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}
		userID, err := snowflakeParam(c, "userID")
		if err != nil {
			return fail(c, err)
		}

		if err = webApp.Announcements.DeleteAnnouncement(c.UserContext(), id, guildID, userID); err != nil {
			return fail(c, err)
		}
		return utils.SendNoContent(c)
	}
}
