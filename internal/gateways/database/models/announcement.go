package models

import "github.com/uptrace/bun"

// Announcement is keyed by (guild_id, user_id); at most one binding per member.
type Announcement struct {
	bun.BaseModel `bun:"table:announcements,alias:a"`

	GuildID string `bun:"guild_id,pk" json:"guild_id"`
	UserID  string `bun:"user_id,pk" json:"user_id"`
	SoundID string `bun:"sound_id,notnull" json:"sound_id"`

	Sound *Sound `bun:"rel:belongs-to,join:sound_id=sound_id" json:"sound,omitempty"`
}
