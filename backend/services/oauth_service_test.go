package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/dwight"
	dbmodels "github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type fakeUsers struct {
	err       error
	discordID string
	username  string
	token     string
	expiresAt time.Time
}

func (f *fakeUsers) UpsertByDiscordID(_ context.Context, discordID, username, avatar, accessToken string, tokenExpiresAt time.Time) (*dbmodels.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.discordID, f.username = discordID, username
	f.token, f.expiresAt = accessToken, tokenExpiresAt
	return &dbmodels.User{ID: "user-uuid", DiscordID: discordID, Username: username, Avatar: avatar}, nil
}

func newOAuth(t *testing.T, users UserStore) *OAuthService {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewOAuthService(dwight.OAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/callback",
		Scopes:       []string{"identify", "guilds"},
	}, users, client)
}

func TestOAuthService_GenerateAuthURL(t *testing.T) {
	o := newOAuth(t, &fakeUsers{})

	u, err := url.Parse(o.GenerateAuthURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "identify guilds", u.Query().Get("scope"))
	assert.Equal(t, "state-1", u.Query().Get("state"))
}

func TestOAuthService_LoginFlow(t *testing.T) {
	users := &fakeUsers{}
	o := newOAuth(t, users)

	httpmock.RegisterResponder(http.MethodPost, discordAPIBase+"/oauth2/token",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"access_token": "tok", "token_type": "Bearer", "expires_in": 604800}))
	httpmock.RegisterResponder(http.MethodGet, discordAPIBase+"/users/@me",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer tok" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, "no"), nil
			}
			return httpmock.NewStringResponse(http.StatusOK,
				`{"id":"42","username":"dwight","global_name":"Dwight","avatar":"abc"}`), nil
		})

	ctx := context.Background()
	token, err := o.ExchangeCodeForToken(ctx, "code")
	require.NoError(t, err)

	assert.Equal(t, "tok", token.Value)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), token.ExpiresAt, time.Minute)

	user, err := o.GetUserInfo(ctx, token.Value)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), user.ID)

	session, err := o.CreateUserSession(ctx, user, token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", session.UserID)
	assert.Equal(t, snowflake.ID(42), session.DiscordID)
	assert.Equal(t, "42", users.discordID)
	assert.Equal(t, "Dwight", users.username)
	assert.Equal(t, "tok", users.token)
	assert.Equal(t, token.ExpiresAt, users.expiresAt)
}

func TestOAuthService_Errors(t *testing.T) {
	o := newOAuth(t, &fakeUsers{err: errors.New("db down")})

	httpmock.RegisterResponder(http.MethodPost, discordAPIBase+"/oauth2/token",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"invalid_grant"}`))
	httpmock.RegisterResponder(http.MethodGet, discordAPIBase+"/users/@me",
		httpmock.NewStringResponder(http.StatusOK, `{"username":"ghost"}`))

	ctx := context.Background()
	_, err := o.ExchangeCodeForToken(ctx, "bad")
	assert.ErrorContains(t, err, "invalid_grant")

	_, err = o.GetUserInfo(ctx, "tok")
	assert.ErrorContains(t, err, "no id")

	_, err = o.CreateUserSession(ctx, &DiscordUser{ID: 1, Username: "x"}, &AccessToken{Value: "tok"})
	assert.ErrorContains(t, err, "db down")
}

func TestOAuthService_GenerateState(t *testing.T) {
	o := newOAuth(t, &fakeUsers{})
	a, err := o.GenerateState()
	require.NoError(t, err)
	b, err := o.GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
