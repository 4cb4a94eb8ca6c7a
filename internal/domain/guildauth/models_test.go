package guildauth

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthority(t *testing.T) {
	guild := &Guild{
		ID:      1,
		OwnerID: 2,
		Roles: []Role{
			{ID: 10, Permissions: discord.PermissionAdministrator},
			{ID: 11, Permissions: discord.PermissionManageGuild},
			{ID: 12, Permissions: discord.PermissionSendMessages | discord.PermissionViewChannel},
			{ID: 13, Permissions: discord.PermissionKickMembers | discord.PermissionManageGuild},
		},
	}

	authority := NewAuthority(guild)

	assert.Equal(t, snowflake.ID(1), authority.GuildID)
	assert.Equal(t, snowflake.ID(2), authority.OwnerID)
	assert.Equal(t, []snowflake.ID{10, 11, 13}, authority.AdminRoleIDs)
}

func TestAuthority_Allows(t *testing.T) {
	authority := &Authority{OwnerID: 1, AdminRoleIDs: []snowflake.ID{10, 11}}

	tests := []struct {
		name       string
		membership *Membership
		want       bool
	}{
		{name: "owner without roles", membership: &Membership{UserID: 1}, want: true},
		{name: "admin role", membership: &Membership{UserID: 5, RoleIDs: []snowflake.ID{3, 11}}, want: true},
		{name: "no admin role", membership: &Membership{UserID: 5, RoleIDs: []snowflake.ID{3, 4}}, want: false},
		{name: "no roles", membership: &Membership{UserID: 5}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authority.Allows(tt.membership))
		})
	}
}
