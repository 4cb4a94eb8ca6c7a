package discordapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/guildauth"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
)

const guildPageSize = 200

// restAPI is the part of rest.Rest this client calls.
type restAPI interface {
	GetGuild(guildID snowflake.ID, withCounts bool, opts ...rest.RequestOpt) (*discord.RestGuild, error)
	GetMember(guildID snowflake.ID, userID snowflake.ID, opts ...rest.RequestOpt) (*discord.Member, error)
	GetMembers(guildID snowflake.ID, limit int, after snowflake.ID, opts ...rest.RequestOpt) ([]discord.Member, error)
	GetCurrentUserGuilds(bearerToken string, before snowflake.ID, after snowflake.ID, limit int, withCounts bool, opts ...rest.RequestOpt) ([]discord.OAuth2Guild, error)
}

// Client answers guild questions with the bot token. Every call is bounded by the
// configured request timeout.
type Client struct {
	rest    restAPI
	timeout time.Duration
}

var (
	_ guildauth.PlatformAPI = &Client{}
	_ guilds.Directory      = &Client{}
)

func New(token string, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		rest:    rest.New(rest.NewClient(token, rest.WithHTTPClient(httpClient))),
		timeout: timeout,
	}
}

func (c *Client) GetGuild(ctx context.Context, guildID snowflake.ID) (*guildauth.Guild, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	guild, err := c.rest.GetGuild(guildID, false, rest.WithCtx(ctx))
	if err != nil {
		return nil, classify(err)
	}
	return toAuthGuild(guild), nil
}

func (c *Client) GetMember(ctx context.Context, guildID, userID snowflake.ID) (*guildauth.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	member, err := c.rest.GetMember(guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, classify(err)
	}
	return &guildauth.Member{
		UserID:  member.User.ID,
		RoleIDs: member.RoleIDs,
	}, nil
}

// BotGuilds pages through every guild the bot has joined.
func (c *Client) BotGuilds(ctx context.Context) ([]guilds.Guild, error) {
	return c.currentUserGuilds(ctx, "")
}

// UserGuilds pages through the guilds of the user the bearer token belongs to.
func (c *Client) UserGuilds(ctx context.Context, accessToken string) ([]guilds.Guild, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token", domain.ErrUnauthorized)
	}
	result, err := c.currentUserGuilds(ctx, accessToken)
	if statusOf(err) == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: access token rejected: %w", domain.ErrUnauthorized, err)
	}
	return result, err
}

// currentUserGuilds lists the token owner's guilds. An empty token means the bot.
func (c *Client) currentUserGuilds(ctx context.Context, bearerToken string) ([]guilds.Guild, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		result []guilds.Guild
		after  snowflake.ID
	)
	for {
		page, err := c.rest.GetCurrentUserGuilds(bearerToken, 0, after, guildPageSize, false, rest.WithCtx(ctx))
		if err != nil {
			return nil, classify(err)
		}
		for _, g := range page {
			result = append(result, guilds.Guild{
				ID:         g.ID,
				Name:       g.Name,
				Icon:       g.Icon,
				Manageable: g.Owner || g.Permissions.Has(discord.PermissionAdministrator) || g.Permissions.Has(discord.PermissionManageGuild),
			})
		}
		if len(page) < guildPageSize {
			return result, nil
		}
		after = page[len(page)-1].ID
	}
}

func (c *Client) ListMembers(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	members, err := c.rest.GetMembers(guildID, limit, 0, rest.WithCtx(ctx))
	if err != nil {
		return nil, classify(err)
	}

	result := make([]guilds.Member, 0, len(members))
	for _, m := range members {
		result = append(result, toMember(m))
	}
	return result, nil
}

// GuildSummary reuses the guild fetch made for authorization.
func (c *Client) GuildSummary(ctx context.Context, guildID snowflake.ID) (*guilds.Guild, error) {
	guild, err := c.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return &guilds.Guild{ID: guild.ID, Name: guild.Name, Icon: guild.Icon}, nil
}

// classify tags definitive platform answers so callers can tell them from outages.
func classify(err error) error {
	if statusOf(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

func statusOf(err error) int {
	var restErr rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}
	return 0
}

func toAuthGuild(g *discord.RestGuild) *guildauth.Guild {
	roles := make([]guildauth.Role, 0, len(g.Roles))
	for _, role := range g.Roles {
		roles = append(roles, guildauth.Role{ID: role.ID, Permissions: role.Permissions})
	}
	return &guildauth.Guild{
		ID:      g.ID,
		Name:    g.Name,
		Icon:    g.Icon,
		OwnerID: g.OwnerID,
		Roles:   roles,
	}
}

func toMember(m discord.Member) guilds.Member {
	name := m.User.Username
	if m.User.GlobalName != nil && *m.User.GlobalName != "" {
		name = *m.User.GlobalName
	}
	if m.Nick != nil && *m.Nick != "" {
		name = *m.Nick
	}

	avatar := m.User.Avatar
	if m.Avatar != nil {
		avatar = m.Avatar
	}

	return guilds.Member{
		UserID: m.User.ID,
		Name:   name,
		Avatar: avatar,
		Bot:    m.User.Bot,
	}
}
