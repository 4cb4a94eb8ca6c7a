package mock

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain/guildauth"
)

const (
	GuildID     snowflake.ID = 100
	OwnerID     snowflake.ID = 1
	AdminID     snowflake.ID = 2
	ModeratorID snowflake.ID = 3
	MemberID    snowflake.ID = 4

	AdminRoleID   snowflake.ID = 10
	ManagerRoleID snowflake.ID = 11
	PlainRoleID   snowflake.ID = 12
)

var Guild = &guildauth.Guild{
	ID:      GuildID,
	Name:    "The Office",
	OwnerID: OwnerID,
	Roles: []guildauth.Role{
		{ID: AdminRoleID, Permissions: discord.PermissionAdministrator},
		{ID: ManagerRoleID, Permissions: discord.PermissionManageGuild | discord.PermissionSendMessages},
		{ID: PlainRoleID, Permissions: discord.PermissionSendMessages},
	},
}

var Members = map[snowflake.ID]*guildauth.Member{
	OwnerID:     {UserID: OwnerID},
	AdminID:     {UserID: AdminID, RoleIDs: []snowflake.ID{PlainRoleID, AdminRoleID}},
	ModeratorID: {UserID: ModeratorID, RoleIDs: []snowflake.ID{ManagerRoleID}},
	MemberID:    {UserID: MemberID, RoleIDs: []snowflake.ID{PlainRoleID}},
}
