package guildauth

import (
	"slices"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// adminPermissions are the permission bits that make a role a guild admin role.
const adminPermissions = discord.PermissionAdministrator | discord.PermissionManageGuild

// Guild is the subset of a guild the platform returns that matters for authorization.
type Guild struct {
	ID      snowflake.ID
	Name    string
	Icon    *string
	OwnerID snowflake.ID
	Roles   []Role
}

type Role struct {
	ID          snowflake.ID
	Permissions discord.Permissions
}

type Member struct {
	UserID  snowflake.ID
	RoleIDs []snowflake.ID
}

// Authority is who may administer a guild: its owner plus anyone holding an admin role.
type Authority struct {
	GuildID      snowflake.ID
	OwnerID      snowflake.ID
	AdminRoleIDs []snowflake.ID
}

// Membership is the role set of a user in a guild.
type Membership struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	RoleIDs []snowflake.ID
}

// NewAuthority derives the admin role set from the guild's roles.
func NewAuthority(guild *Guild) *Authority {
	authority := &Authority{
		GuildID:      guild.ID,
		OwnerID:      guild.OwnerID,
		AdminRoleIDs: make([]snowflake.ID, 0, len(guild.Roles)),
	}
	for _, role := range guild.Roles {
		if role.Permissions&adminPermissions != 0 {
			authority.AdminRoleIDs = append(authority.AdminRoleIDs, role.ID)
		}
	}
	return authority
}

// Allows reports whether the member is the owner or holds at least one admin role.
func (a *Authority) Allows(m *Membership) bool {
	if m.UserID == a.OwnerID {
		return true
	}
	for _, roleID := range m.RoleIDs {
		if slices.Contains(a.AdminRoleIDs, roleID) {
			return true
		}
	}
	return false
}
