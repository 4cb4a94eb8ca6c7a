package guildauth

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// PlatformAPI is the chat platform's REST surface needed to answer admin questions.
type PlatformAPI interface {
	GetGuild(ctx context.Context, guildID snowflake.ID) (*Guild, error)
	GetMember(ctx context.Context, guildID, userID snowflake.ID) (*Member, error)
}
