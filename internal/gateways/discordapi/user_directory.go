package discordapi

import (
	"context"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
)

// TokenSource returns the stored OAuth2 access token of a dashboard user.
type TokenSource interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

// UserDirectory lists a dashboard user's guilds with the token granted at login.
type UserDirectory struct {
	client *Client
	tokens TokenSource
}

var _ guilds.CallerDirectory = &UserDirectory{}

func NewUserDirectory(client *Client, tokens TokenSource) *UserDirectory {
	return &UserDirectory{client: client, tokens: tokens}
}

func (d *UserDirectory) CallerGuilds(ctx context.Context, identity domain.Identity) ([]guilds.Guild, error) {
	token, err := d.tokens.AccessToken(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return d.client.UserGuilds(ctx, token)
}
