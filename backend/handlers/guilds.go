package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
	"github.com/dwightbot/dwight-web/internal/domain"
)

func GuildsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity(c)
		if err != nil {
			return fail(c, err)
		}

		list, err := webApp.Guilds.ListGuilds(c.UserContext(), id)
		// The stored Discord token is gone or expired; only a new login can list guilds.
		if errors.Is(err, domain.ErrUnauthorized) {
			webApp.Sessions.DestroySession(c)
			return utils.SendUnauthorized(c, "Discord login expired")
		}
		if err != nil {
			return fail(c, err)
		}

		out := make([]models.GuildDTO, 0, len(list))
		for _, g := range list {
			out = append(out, models.NewGuildDTO(g))
		}
		return utils.SendSuccess(c, out, "")
	}
}

func GuildsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		guild, err := webApp.Guilds.GetGuild(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.NewGuildDTO(*guild), "")
	}
}

// GuildsAdmin answers whether the caller administers the guild. It is the only guild route
// that reports a denial as data instead of 403.
func GuildsAdmin(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		isAdmin, err := webApp.Admins.IsGuildAdmin(c.UserContext(), guildID, id.DiscordID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.AdminDTO{IsAdmin: isAdmin}, "")
	}
}

func GuildsMembers(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		members, err := webApp.Guilds.ListMembers(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}

		out := make([]models.MemberDTO, 0, len(members))
		for _, m := range members {
			out = append(out, models.MemberDTO{UserID: m.UserID, Name: m.Name, Avatar: m.Avatar})
		}
		return utils.SendSuccess(c, out, "")
	}
}

func GuildsCounts(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		counts, err := webApp.Guilds.GetCounts(c.UserContext(), id, guildID)
		if err != nil {
			return fail(c, err)
		}
		return utils.SendSuccess(c, models.CountsDTO{
			Sounds:        counts.Sounds,
			Announcements: counts.Announcements,
			Plays:         counts.Plays,
		}, "")
	}
}

func GuildsTopSounds(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		top, err := webApp.Guilds.TopSounds(c.UserContext(), id, guildID, queryLimit(c))
		if err != nil {
			return fail(c, err)
		}

		out := make([]models.SoundPlaysDTO, 0, len(top))
		for _, s := range top {
			out = append(out, models.SoundPlaysDTO{SoundID: s.SoundID, Name: s.Name, Plays: s.Plays})
		}
		return utils.SendSuccess(c, out, "")
	}
}

func GuildsLastPlays(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, guildID, err := guildRequest(c)
		if err != nil {
			return fail(c, err)
		}

		plays, err := webApp.Guilds.LastPlays(c.UserContext(), id, guildID, queryLimit(c))
		if err != nil {
			return fail(c, err)
		}

		out := make([]models.PlayDTO, 0, len(plays))
		for _, p := range plays {
			out = append(out, models.PlayDTO{SoundID: p.SoundID, Name: p.Name, UserID: p.UserID, PlayedAt: p.PlayedAt})
		}
		return utils.SendSuccess(c, out, "")
	}
}
