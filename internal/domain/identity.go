package domain

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// Identity is the authenticated caller of a dashboard operation.
type Identity struct {
	UserID    string
	DiscordID snowflake.ID
}

// Authorizer is the guild admin gate every guild-scoped operation passes through.
// It returns nil when the caller may administer the guild and an error wrapping
// ErrUnauthorized otherwise, including when the answer could not be determined.
type Authorizer interface {
	Authorize(ctx context.Context, identity Identity, guildID snowflake.ID) error
}
