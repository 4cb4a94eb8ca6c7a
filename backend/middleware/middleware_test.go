package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/backend/config"
	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/backend/utils"
	"github.com/dwightbot/dwight-web/dwight"
	"github.com/dwightbot/dwight-web/internal/domain"
)

type stubSessions struct {
	session *models.UserSession
}

func (s stubSessions) GetSession(*fiber.Ctx) (*models.UserSession, error) {
	if s.session == nil {
		return nil, errors.New("no session")
	}
	return s.session, nil
}

func decode(t *testing.T, resp *http.Response) models.APIResponse {
	t.Helper()
	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthRequired(t *testing.T) {
	for _, tt := range []struct {
		name   string
		store  stubSessions
		status int
	}{
		{name: "no session", status: http.StatusUnauthorized},
		{name: "session", store: stubSessions{session: &models.UserSession{UserID: "u", DiscordID: 1}}, status: http.StatusOK},
	} {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthRequired(tt.store))
			app.Get("/", func(c *fiber.Ctx) error {
				session := c.Locals("user").(*models.UserSession)
				return c.SendString(session.UserID)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/fiber", func(*fiber.Ctx) error { return fiber.ErrMethodNotAllowed })
	app.Get("/domain", func(*fiber.Ctx) error { return fmt.Errorf("lookup: %w", domain.ErrNotFound) })
	app.Get("/plain", func(*fiber.Ctx) error { return errors.New("boom") })

	for _, tt := range []struct {
		path   string
		status int
		code   string
	}{
		{path: "/fiber", status: http.StatusMethodNotAllowed, code: "METHOD_NOT_ALLOWED"},
		{path: "/domain", status: http.StatusNotFound, code: "NOT_FOUND"},
		{path: "/plain", status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR"},
		{path: "/missing", status: http.StatusNotFound, code: "NOT_FOUND"},
	} {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	time.Sleep(80 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(1, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit_IgnoresUntrustedForwardedFor(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(1, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	codes := make([]int, 0, 2)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, xff)
		resp, err := app.Test(req)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	webCfg := &config.WebAppConfig{Web: dwight.WebConfig{
		TrustedProxies: []string{"0.0.0.0"},
		ProxyHeader:    fiber.HeaderXForwardedFor,
	}}
	fiberCfg := fiber.Config{}
	webCfg.ApplyProxy(&fiberCfg)

	app := fiber.New(fiberCfg)
	app.Use(RateLimit(1, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(utils.GetIPAddress(c)) })

	for _, xff := range []string{"203.0.113.1", "203.0.113.2, 10.0.0.1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, xff)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, xff)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, strings.Split(xff, ",")[0], string(body))
	}
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders(), Metrics(), LoggingMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
