package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/backend/models"
)

const testKey = "0123456789abcdef0123456789abcdef"

// sessionApp exposes login and whoami routes around the service.
func sessionApp(s *SessionService) *fiber.App {
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return s.CreateSession(c, &models.UserSession{UserID: "u-1", DiscordID: 42, Username: "dwight"})
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		session, err := s.GetSession(c)
		if err != nil {
			return c.Status(http.StatusUnauthorized).SendString(err.Error())
		}
		return c.JSON(session)
	})
	return app
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionService_RoundTrip(t *testing.T) {
	app := sessionApp(NewSessionService(testKey, false))
	cookie := login(t, app)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionService_Rejects(t *testing.T) {
	signer := NewSessionService(testKey, false)
	app := sessionApp(signer)
	cookie := login(t, app)

	tests := []struct {
		name   string
		app    *fiber.App
		cookie *http.Cookie
	}{
		{name: "no cookie", app: app},
		{name: "tampered", app: app, cookie: &http.Cookie{Name: SessionCookieName, Value: "x" + cookie.Value}},
		{name: "other key", app: sessionApp(NewSessionService("another-key-another-key-another-k", false)), cookie: cookie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			resp, err := tt.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestSessionService_Expired(t *testing.T) {
	s := NewSessionService(testKey, false)
	s.now = func() time.Time { return time.Now().Add(-2 * SessionTTL) }
	app := sessionApp(s)
	cookie := login(t, app)

	s.now = time.Now
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionService_State(t *testing.T) {
	s := NewSessionService(testKey, false)
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error { return s.SetState(c, "abc") })
	app.Get("/get", func(c *fiber.Ctx) error {
		state, err := s.GetAndClearState(c)
		if err != nil {
			return c.SendStatus(http.StatusBadRequest)
		}
		return c.SendString(state)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Cookies())

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(resp.Cookies()[0])
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionService_sign(t *testing.T) {
	s := NewSessionService(testKey, false)
	signed, err := s.sign([]byte("payload"))
	require.NoError(t, err)

	data, err := s.verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = NewSessionService("", false).sign([]byte("payload"))
	assert.Error(t, err)
}
