package announcements

import "github.com/disgoorg/snowflake/v2"

// Announcement binds a guild member to the sound the bot plays when they join voice.
type Announcement struct {
	GuildID   snowflake.ID
	UserID    snowflake.ID
	SoundID   string
	SoundName string
}
