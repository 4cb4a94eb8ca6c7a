package sounds

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type Repository interface {
	// GetByID returns domain.ErrNotFound when no sound has the id. Deleted sounds are returned.
	GetByID(ctx context.Context, soundID string) (*Sound, error)
	ListLive(ctx context.Context, guildID snowflake.ID) ([]*Sound, error)
	ListVisible(ctx context.Context, guildID snowflake.ID) ([]*Sound, error)
	CountLive(ctx context.Context, guildID snowflake.ID) (int, error)
	// GetLimit returns the guild's quota override, if any.
	GetLimit(ctx context.Context, guildID snowflake.ID) (int, bool, error)
	Create(ctx context.Context, sound *Sound) error
	Update(ctx context.Context, sound *Sound) error
	// SoftDelete marks the sound deleted and removes every announcement bound to it
	// in one transaction.
	SoftDelete(ctx context.Context, soundID string, at time.Time) error
}

// Transcoder turns an uploaded clip into the playable artifact for soundID.
type Transcoder interface {
	Transcode(ctx context.Context, soundID string, data []byte) error
}
