package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User maps a Discord account to the dashboard's internal user id.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          string    `bun:"id,pk" json:"id"`
	DiscordID   string    `bun:"discord_id,notnull,unique" json:"discord_id"`
	Username    string    `bun:"username,notnull" json:"username"`
	Avatar      string    `bun:"avatar" json:"avatar"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	LastLoginAt time.Time `bun:"last_login_at,notnull" json:"last_login_at"`

	// AccessToken is the OAuth2 bearer token from the latest login, used to list the user's guilds.
	AccessToken    string    `bun:"access_token" json:"-"`
	TokenExpiresAt time.Time `bun:"token_expires_at,nullzero" json:"-"`
}
