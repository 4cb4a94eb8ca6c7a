package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/dwight"
	dbmodels "github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

const discordAPIBase = "https://discord.com/api/v10"

// DiscordUser is the subset of /users/@me the dashboard keeps.
type DiscordUser struct {
	ID         snowflake.ID `json:"id"`
	Username   string       `json:"username"`
	GlobalName string       `json:"global_name"`
	Avatar     string       `json:"avatar"`
}

// AccessToken is the bearer token granted at login.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// UserStore maps Discord accounts to internal user ids and keeps their latest token.
type UserStore interface {
	UpsertByDiscordID(ctx context.Context, discordID, username, avatar, accessToken string, tokenExpiresAt time.Time) (*dbmodels.User, error)
}

type OAuthService struct {
	cfg        dwight.OAuthConfig
	users      UserStore
	httpClient *http.Client
}

func NewOAuthService(cfg dwight.OAuthConfig, users UserStore, httpClient *http.Client) *OAuthService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OAuthService{
		cfg:        cfg,
		users:      users,
		httpClient: httpClient,
	}
}

func (o *OAuthService) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", o.cfg.ClientID)
	params.Set("redirect_uri", o.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(o.cfg.Scopes, " "))
	params.Set("state", state)
	params.Set("prompt", "none")

	return discordAPIBase + "/oauth2/authorize?" + params.Encode()
}

func (o *OAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*AccessToken, error) {
	data := url.Values{}
	data.Set("client_id", o.cfg.ClientID)
	data.Set("client_secret", o.cfg.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", o.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, discordAPIBase+"/oauth2/token",
		strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err = o.doJSON(req, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response has no access_token")
	}

	token := &AccessToken{Value: tokenResp.AccessToken}
	if tokenResp.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}
	return token, nil
}

func (o *OAuthService) GetUserInfo(ctx context.Context, accessToken string) (*DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordAPIBase+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user DiscordUser
	if err = o.doJSON(req, &user); err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("user info has no id")
	}
	return &user, nil
}

// CreateUserSession records the login and builds the session payload.
func (o *OAuthService) CreateUserSession(ctx context.Context, user *DiscordUser, token *AccessToken) (*models.UserSession, error) {
	name := user.Username
	if user.GlobalName != "" {
		name = user.GlobalName
	}

	record, err := o.users.UpsertByDiscordID(ctx, user.ID.String(), name, user.Avatar, token.Value, token.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	slog.Info("User logged in",
		slog.String("type", "http"),
		slog.String("user_id", record.ID),
		slog.String("discord_id", user.ID.String()),
	)

	return &models.UserSession{
		UserID:    record.ID,
		DiscordID: user.ID,
		Username:  name,
		Avatar:    user.Avatar,
	}, nil
}

func (o *OAuthService) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (o *OAuthService) doJSON(req *http.Request, out any) error {
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord API error %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
