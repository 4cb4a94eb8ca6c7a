package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/utils"
)

func DiscordOAuth(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := webApp.OAuth.GenerateState()
		if err != nil {
			return err
		}
		if err = webApp.Sessions.SetState(c, state); err != nil {
			return err
		}
		return c.Redirect(webApp.OAuth.GenerateAuthURL(state), fiber.StatusTemporaryRedirect)
	}
}

func OAuthCallback(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected, err := webApp.Sessions.GetAndClearState(c)
		if err != nil || expected != c.Query("state") {
			slog.Warn("OAuth state mismatch",
				slog.String("type", "http"),
				slog.String("ip", utils.GetIPAddress(c)),
			)
			return utils.SendBadRequest(c, "Invalid OAuth state")
		}

		code := c.Query("code")
		if code == "" {
			return utils.SendBadRequest(c, "Missing authorization code")
		}

		ctx := c.UserContext()
		token, err := webApp.OAuth.ExchangeCodeForToken(ctx, code)
		if err != nil {
			slog.Error("OAuth token exchange failed", slog.String("type", "http"), slog.Any("error", err))
			return utils.SendError(c, fiber.StatusBadGateway, "OAUTH_FAILED", "Discord login failed", nil)
		}

		user, err := webApp.OAuth.GetUserInfo(ctx, token.Value)
		if err != nil {
			slog.Error("OAuth user lookup failed", slog.String("type", "http"), slog.Any("error", err))
			return utils.SendError(c, fiber.StatusBadGateway, "OAUTH_FAILED", "Discord login failed", nil)
		}

		session, err := webApp.OAuth.CreateUserSession(ctx, user, token)
		if err != nil {
			return err
		}
		if err = webApp.Sessions.CreateSession(c, session); err != nil {
			return err
		}
		return c.Redirect(webApp.FrontendURL+"/dashboard", fiber.StatusTemporaryRedirect)
	}
}

func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.Sessions.DestroySession(c)
		return utils.SendNoContent(c)
	}
}

func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return utils.SendSuccess(c, session, "")
	}
}
