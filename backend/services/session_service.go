package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
)

const (
	SessionCookieName = "dwight_session"
	StateCookieName   = "oauth_state"

	SessionTTL = 7 * 24 * time.Hour
	stateTTL   = 10 * time.Minute
)

var ErrNoSession = errors.New("no session")

// SessionService keeps the session in an HMAC-signed cookie; nothing is stored server side.
type SessionService struct {
	key    []byte
	secure bool
	now    func() time.Time
}

func NewSessionService(key string, secure bool) *SessionService {
	return &SessionService{
		key:    []byte(key),
		secure: secure,
		now:    time.Now,
	}
}

func (s *SessionService) CreateSession(c *fiber.Ctx, session *models.UserSession) error {
	session.ExpiresAt = s.now().Add(SessionTTL)

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	signed, err := s.sign(payload)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	s.setCookie(c, SessionCookieName, signed, SessionTTL)

	slog.Info("Session created",
		slog.String("type", "http"),
		slog.String("user_id", session.UserID),
		slog.String("discord_id", session.DiscordID.String()),
	)
	return nil
}

func (s *SessionService) GetSession(c *fiber.Ctx) (*models.UserSession, error) {
	cookie := c.Cookies(SessionCookieName)
	if cookie == "" {
		return nil, ErrNoSession
	}

	payload, err := s.verify(cookie)
	if err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	var session models.UserSession
	if err = json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		s.DestroySession(c)
		return nil, errors.New("session expired")
	}
	if session.UserID == "" || session.DiscordID == 0 {
		return nil, errors.New("session has no identity")
	}
	return &session, nil
}

func (s *SessionService) DestroySession(c *fiber.Ctx) {
	s.clearCookie(c, SessionCookieName)
}

// SetState stores the OAuth state parameter for the callback to compare against.
func (s *SessionService) SetState(c *fiber.Ctx, state string) error {
	signed, err := s.sign([]byte(state))
	if err != nil {
		return fmt.Errorf("failed to sign state: %w", err)
	}
	s.setCookie(c, StateCookieName, signed, stateTTL)
	return nil
}

func (s *SessionService) GetAndClearState(c *fiber.Ctx) (string, error) {
	cookie := c.Cookies(StateCookieName)
	if cookie == "" {
		return "", errors.New("no state cookie found")
	}
	s.clearCookie(c, StateCookieName)

	state, err := s.verify(cookie)
	if err != nil {
		return "", fmt.Errorf("invalid state: %w", err)
	}
	return string(state), nil
}

func (s *SessionService) setCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *SessionService) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// sign appends an HMAC-SHA256 of data and base64url encodes the result.
func (s *SessionService) sign(data []byte) (string, error) {
	if len(s.key) == 0 {
		return "", errors.New("session key not configured")
	}
	h := hmac.New(sha256.New, s.key)
	h.Write(data)

	combined := append(append([]byte{}, data...), h.Sum(nil)...)
	return base64.RawURLEncoding.EncodeToString(combined), nil
}

func (s *SessionService) verify(encoded string) ([]byte, error) {
	if len(s.key) == 0 {
		return nil, errors.New("session key not configured")
	}
	combined, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	if len(combined) < sha256.Size {
		return nil, errors.New("invalid data length")
	}

	data := combined[:len(combined)-sha256.Size]
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	if !hmac.Equal(combined[len(combined)-sha256.Size:], h.Sum(nil)) {
		return nil, errors.New("signature verification failed")
	}
	return data, nil
}
