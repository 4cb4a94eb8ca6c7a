package discordapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/guildauth"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
)

type fakeRest struct {
	guild      *discord.RestGuild
	member     *discord.Member
	members    []discord.Member
	userGuilds []discord.OAuth2Guild
	err        error

	afters  []snowflake.ID
	bearers []string
}

func (f *fakeRest) GetGuild(snowflake.ID, bool, ...rest.RequestOpt) (*discord.RestGuild, error) {
	return f.guild, f.err
}

func (f *fakeRest) GetMember(snowflake.ID, snowflake.ID, ...rest.RequestOpt) (*discord.Member, error) {
	return f.member, f.err
}

func (f *fakeRest) GetMembers(_ snowflake.ID, limit int, _ snowflake.ID, _ ...rest.RequestOpt) ([]discord.Member, error) {
	if limit < len(f.members) {
		return f.members[:limit], f.err
	}
	return f.members, f.err
}

func (f *fakeRest) GetCurrentUserGuilds(bearerToken string, _ snowflake.ID, after snowflake.ID, limit int, _ bool, _ ...rest.RequestOpt) ([]discord.OAuth2Guild, error) {
	f.afters = append(f.afters, after)
	f.bearers = append(f.bearers, bearerToken)
	var page []discord.OAuth2Guild
	for _, g := range f.userGuilds {
		if g.ID > after && len(page) < limit {
			page = append(page, g)
		}
	}
	return page, f.err
}

func statusError(code int) error {
	return rest.Error{Response: &http.Response{StatusCode: code, Status: http.StatusText(code)}}
}

type fakeTokens map[string]string

func (f fakeTokens) AccessToken(_ context.Context, userID string) (string, error) {
	token, ok := f[userID]
	if !ok {
		return "", fmt.Errorf("%w: no token", domain.ErrUnauthorized)
	}
	return token, nil
}

func newTestClient(f *fakeRest) *Client {
	return &Client{rest: f, timeout: time.Second}
}

func ptr[T any](v T) *T { return &v }

func TestClient_GetGuild(t *testing.T) {
	f := &fakeRest{guild: &discord.RestGuild{
		Guild: discord.Guild{ID: 1, Name: "Dunder Mifflin", OwnerID: 2},
		Roles: []discord.Role{
			{ID: 10, Permissions: discord.PermissionAdministrator},
			{ID: 11, Permissions: discord.PermissionSendMessages},
		},
	}}

	got, err := newTestClient(f).GetGuild(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &guildauth.Guild{
		ID:      1,
		Name:    "Dunder Mifflin",
		OwnerID: 2,
		Roles: []guildauth.Role{
			{ID: 10, Permissions: discord.PermissionAdministrator},
			{ID: 11, Permissions: discord.PermissionSendMessages},
		},
	}, got)
}

func TestClient_GetMember(t *testing.T) {
	f := &fakeRest{member: &discord.Member{
		User:    discord.User{ID: 5, Username: "dwight"},
		RoleIDs: []snowflake.ID{10, 12},
	}}

	got, err := newTestClient(f).GetMember(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, &guildauth.Member{UserID: 5, RoleIDs: []snowflake.ID{10, 12}}, got)

	f.err = errors.New("rate limited")
	_, err = newTestClient(f).GetMember(context.Background(), 1, 5)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	f.err = statusError(http.StatusNotFound)
	_, err = newTestClient(f).GetMember(context.Background(), 1, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_BotGuilds_Pages(t *testing.T) {
	f := &fakeRest{}
	for i := 1; i <= guildPageSize+3; i++ {
		f.userGuilds = append(f.userGuilds, discord.OAuth2Guild{ID: snowflake.ID(i), Name: "g"})
	}

	got, err := newTestClient(f).BotGuilds(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, guildPageSize+3)
	assert.Equal(t, []snowflake.ID{0, guildPageSize}, f.afters)
	assert.Equal(t, []string{"", ""}, f.bearers)
}

func TestClient_UserGuilds(t *testing.T) {
	f := &fakeRest{userGuilds: []discord.OAuth2Guild{
		{ID: 1, Name: "owned", Owner: true},
		{ID: 2, Name: "admin", Permissions: discord.PermissionAdministrator},
		{ID: 3, Name: "manager", Permissions: discord.PermissionManageGuild | discord.PermissionSendMessages},
		{ID: 4, Name: "member", Permissions: discord.PermissionSendMessages},
	}}

	got, err := newTestClient(f).UserGuilds(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, []guilds.Guild{
		{ID: 1, Name: "owned", Manageable: true},
		{ID: 2, Name: "admin", Manageable: true},
		{ID: 3, Name: "manager", Manageable: true},
		{ID: 4, Name: "member"},
	}, got)
	assert.Equal(t, []string{"user-token"}, f.bearers)
}

func TestClient_UserGuilds_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		err   error
		want  error
	}{
		{name: "No token", token: "", want: domain.ErrUnauthorized},
		{name: "Token rejected", token: "stale", err: statusError(http.StatusUnauthorized), want: domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRest{err: tt.err}
			_, err := newTestClient(f).UserGuilds(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserDirectory_CallerGuilds(t *testing.T) {
	f := &fakeRest{userGuilds: []discord.OAuth2Guild{{ID: 1, Name: "owned", Owner: true}}}
	directory := NewUserDirectory(newTestClient(f), fakeTokens{"u-1": "tok"})

	got, err := directory.CallerGuilds(context.Background(), domain.Identity{UserID: "u-1", DiscordID: 42})
	require.NoError(t, err)
	assert.Equal(t, []guilds.Guild{{ID: 1, Name: "owned", Manageable: true}}, got)
	assert.Equal(t, []string{"tok"}, f.bearers)

	_, err = directory.CallerGuilds(context.Background(), domain.Identity{UserID: "u-2", DiscordID: 43})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func Test_toMember(t *testing.T) {
	tests := []struct {
		name   string
		member discord.Member
		want   guilds.Member
	}{
		{
			name:   "Username only",
			member: discord.Member{User: discord.User{ID: 1, Username: "jim"}},
			want:   guilds.Member{UserID: 1, Name: "jim"},
		},
		{
			name:   "Global name",
			member: discord.Member{User: discord.User{ID: 1, Username: "jim", GlobalName: ptr("Jim Halpert")}},
			want:   guilds.Member{UserID: 1, Name: "Jim Halpert"},
		},
		{
			name: "Nick wins and guild avatar overrides",
			member: discord.Member{
				User:   discord.User{ID: 1, Username: "jim", GlobalName: ptr("Jim Halpert"), Avatar: ptr("user")},
				Nick:   ptr("Big Tuna"),
				Avatar: ptr("guild"),
			},
			want: guilds.Member{UserID: 1, Name: "Big Tuna", Avatar: ptr("guild")},
		},
		{
			name:   "Bot flag",
			member: discord.Member{User: discord.User{ID: 9, Username: "dwight", Bot: true}},
			want:   guilds.Member{UserID: 9, Name: "dwight", Bot: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toMember(tt.member))
		})
	}
}
