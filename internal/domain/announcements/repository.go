package announcements

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

type Repository interface {
	List(ctx context.Context, guildID snowflake.ID) ([]*Announcement, error)
	// Upsert replaces any binding with the same (guild, user) key. It returns
	// domain.ErrNotFound when the sound is no longer live in the guild at write time.
	Upsert(ctx context.Context, announcement *Announcement) error
	// Delete returns domain.ErrNotFound when no binding exists.
	Delete(ctx context.Context, guildID, userID snowflake.ID) error
}

// SoundFinder looks up the sound a binding points at.
type SoundFinder interface {
	GetByID(ctx context.Context, soundID string) (*sounds.Sound, error)
}
