package guilds

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain"
)

// Directory lists what the bot can see on the chat platform.
type Directory interface {
	BotGuilds(ctx context.Context) ([]Guild, error)
	GuildSummary(ctx context.Context, guildID snowflake.ID) (*Guild, error)
	ListMembers(ctx context.Context, guildID snowflake.ID, limit int) ([]Member, error)
}

// CallerDirectory lists the guilds the caller belongs to, as the platform reports them
// to the caller. It returns domain.ErrUnauthorized when the caller's login can no
// longer be used for the lookup.
type CallerDirectory interface {
	CallerGuilds(ctx context.Context, identity domain.Identity) ([]Guild, error)
}

type StatsRepository interface {
	Counts(ctx context.Context, guildID snowflake.ID) (*Counts, error)
	TopSounds(ctx context.Context, guildID snowflake.ID, limit int) ([]SoundPlays, error)
	LastPlays(ctx context.Context, guildID snowflake.ID, limit int) ([]Play, error)
}

// AdminChecker answers the admin question without failing closed.
type AdminChecker interface {
	IsGuildAdmin(ctx context.Context, guildID, userID snowflake.ID) (bool, error)
}
