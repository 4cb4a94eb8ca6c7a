package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type UserRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertByDiscordID records a login and its access token. The internal id is assigned on
// first login and kept after.
func (r *UserRepository) UpsertByDiscordID(ctx context.Context, discordID, username, avatar, accessToken string, tokenExpiresAt time.Time) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	_, err := r.db.NewInsert().
		Model(&models.User{
			ID:          uuid.NewString(),
			DiscordID:   discordID,
			Username:    username,
			Avatar:      avatar,
			CreatedAt:   now,
			LastLoginAt: now,

			AccessToken:    accessToken,
			TokenExpiresAt: tokenExpiresAt.UTC(),
		}).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("avatar = EXCLUDED.avatar").
		Set("last_login_at = EXCLUDED.last_login_at").
		Set("access_token = EXCLUDED.access_token").
		Set("token_expires_at = EXCLUDED.token_expires_at").
		Exec(ctx)
	if err != nil {
		return nil, wrapErr("upsert", "user", err)
	}

	user := new(models.User)
	err = r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err != nil {
		return nil, wrapErr("select", "user", err)
	}
	return user, nil
}

// AccessToken returns the stored bearer token of a user. A missing or expired token is
// domain.ErrUnauthorized: the user has to log in again.
func (r *UserRepository) AccessToken(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Column("access_token", "token_expires_at").
		Where("id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: unknown user %s", domain.ErrUnauthorized, userID)
	}
	if err != nil {
		return "", wrapErr("select", "user", err)
	}

	if user.AccessToken == "" {
		return "", fmt.Errorf("%w: user %s has no access token", domain.ErrUnauthorized, userID)
	}
	if !user.TokenExpiresAt.IsZero() && !time.Now().Before(user.TokenExpiresAt) {
		return "", fmt.Errorf("%w: access token of user %s expired", domain.ErrUnauthorized, userID)
	}
	return user.AccessToken, nil
}
