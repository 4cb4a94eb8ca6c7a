package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Sound struct {
	bun.BaseModel `bun:"table:sounds,alias:s"`

	ID          string    `bun:"sound_id,pk" json:"sound_id"`
	GuildID     string    `bun:"guild_id,notnull" json:"guild_id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Hidden      bool      `bun:"hidden,notnull" json:"hidden"`
	Deleted     bool      `bun:"deleted,notnull" json:"deleted"`
	CreatedByID string    `bun:"created_by_id,notnull" json:"created_by_id"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	ModifiedAt  time.Time `bun:"modified_at,notnull" json:"modified_at"`
}

// Play is written by the bot every time it plays a sound.
type Play struct {
	bun.BaseModel `bun:"table:plays,alias:p"`

	ID       int64     `bun:"id,pk,autoincrement" json:"id"`
	SoundID  string    `bun:"sound_id,notnull" json:"sound_id"`
	UserID   string    `bun:"user_id" json:"user_id"`
	PlayedAt time.Time `bun:"played_at,notnull" json:"played_at"`

	Sound *Sound `bun:"rel:belongs-to,join:sound_id=sound_id" json:"-"`
}
