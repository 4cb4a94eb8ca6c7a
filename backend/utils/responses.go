package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/internal/domain"
)

func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusCreated, models.NewSuccessResponse(data, message))
}

func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// SendDomainError maps a domain sentinel to its HTTP status and error code.
// The cause behind a denial is logged, never returned to the caller.
func SendDomainError(c *fiber.Ctx, err error) error {
	status, code := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusForbidden:
		message = domain.ErrUnauthorized.Error()
	case http.StatusInternalServerError:
		message = "Internal server error"
	}

	if status >= http.StatusInternalServerError || status == http.StatusForbidden {
		slog.Warn("Request failed",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
	return SendError(c, status, code, message, nil)
}

func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "NOT_ENTITLED"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusConflict, "QUOTA_EXCEEDED"
	case errors.Is(err, domain.ErrNothingToApply):
		return http.StatusPreconditionFailed, "NOTHING_TO_APPLY"
	case errors.Is(err, domain.ErrTranscodeFailed):
		return http.StatusBadGateway, "TRANSCODE_FAILED"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	}
}

func ExtractUserSession(c *fiber.Ctx) (*models.UserSession, bool) {
	session, ok := c.Locals("user").(*models.UserSession)
	return session, ok && session != nil
}

// GetIPAddress returns the client address. Proxy headers count only when the app is
// configured with trusted proxies.
func GetIPAddress(c *fiber.Ctx) string {
	return c.IP()
}
