package sounds

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type Sound struct {
	ID          string
	GuildID     snowflake.ID
	Name        string
	Hidden      bool
	Deleted     bool
	CreatedByID string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Live reports whether the sound still counts against the guild's quota.
func (s *Sound) Live() bool {
	return !s.Deleted
}

// CreateParams is a validated-on-create upload.
type CreateParams struct {
	GuildID snowflake.ID
	Name    string
	Hidden  bool
	Data    []byte
}

type UpdateParams struct {
	Name   string
	Hidden bool
}

type Quota struct {
	Limit int
	Used  int
}
