package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SoundLimit overrides the configured default sound quota for one guild.
type SoundLimit struct {
	bun.BaseModel `bun:"table:sound_limits,alias:sl"`

	GuildID string `bun:"guild_id,pk" json:"guild_id"`
	Limit   int    `bun:"sound_limit,notnull" json:"sound_limit"`
}

// GuildLastUpdate is the reconciliation watermark: when the bot last rebuilt the guild.
type GuildLastUpdate struct {
	bun.BaseModel `bun:"table:guild_last_updates"`

	GuildID    string    `bun:"guild_id,pk" json:"guild_id"`
	LastUpdate time.Time `bun:"last_update,notnull" json:"last_update"`
}
