package reconcile

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type Repository interface {
	// LastVisibleModification returns the newest modified_at among the guild's sounds that
	// are neither deleted nor hidden. ok is false when there are none.
	LastVisibleModification(ctx context.Context, guildID snowflake.ID) (at time.Time, ok bool, err error)
	// Watermark returns when the bot last rebuilt the guild. ok is false when it never has.
	Watermark(ctx context.Context, guildID snowflake.ID) (at time.Time, ok bool, err error)
	// AdvanceWatermark upserts the watermark but never moves it backwards.
	AdvanceWatermark(ctx context.Context, guildID snowflake.ID, at time.Time) error
}

// Notifier tells the bot to rebuild its per-guild UI.
type Notifier interface {
	TriggerRebuild(ctx context.Context, guildID snowflake.ID) error
}
