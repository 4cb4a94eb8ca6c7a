package guilds

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type Guild struct {
	ID   snowflake.ID
	Name string
	Icon *string
	// Manageable reports whether the platform grants the listing user owner, administrator
	// or manage-guild rights. It is a hint only; access is decided by the admin gate.
	Manageable bool
}

type Member struct {
	UserID snowflake.ID
	Name   string
	Avatar *string
	Bot    bool
}

type Counts struct {
	Sounds        int
	Announcements int
	Plays         int
}

type SoundPlays struct {
	SoundID string
	Name    string
	Plays   int
}

type Play struct {
	SoundID  string
	Name     string
	UserID   string
	PlayedAt time.Time
}
