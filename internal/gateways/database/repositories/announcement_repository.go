package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/announcements"
	"github.com/dwightbot/dwight-web/internal/domain/logger"
	"github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type announcementRepository struct {
	db *bun.DB
}

var _ announcements.Repository = &announcementRepository{}

func NewAnnouncementRepository(db *bun.DB) *announcementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(ctx context.Context, guildID snowflake.ID) ([]*announcements.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Announcement
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Sound").
		Where("a.guild_id = ?", guildID.String()).
		Order("a.user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, wrapErr("list", "announcement", err)
	}

	result := make([]*announcements.Announcement, 0, len(rows))
	for _, row := range rows {
		userID, err := parseSnowflake("announcement", row.UserID)
		if err != nil {
			return nil, err
		}
		announcement := &announcements.Announcement{
			GuildID: guildID,
			UserID:  userID,
			SoundID: row.SoundID,
		}
		if row.Sound != nil {
			announcement.SoundName = row.Sound.Name
		}
		result = append(result, announcement)
	}
	return result, nil
}

// Upsert keys on (guild_id, user_id); an existing binding is repointed to the new sound.
// The sound row is share-locked while the binding is written, so a concurrent soft delete
// either sees the binding and removes it or makes the upsert fail with domain.ErrNotFound.
func (r *announcementRepository) Upsert(ctx context.Context, announcement *announcements.Announcement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("upsert", "announcement", announcement.GuildID, announcement.UserID, announcement.SoundID)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().
			Model((*models.Sound)(nil)).
			Column("sound_id").
			Where("sound_id = ?", announcement.SoundID).
			Where("guild_id = ?", announcement.GuildID.String()).
			Where("deleted = ?", false)
		if tx.Dialect().Name() == dialect.PG {
			q = q.For("SHARE")
		}

		var soundID string
		if err := q.Scan(ctx, &soundID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: sound %s in guild %s", domain.ErrNotFound, announcement.SoundID, announcement.GuildID)
			}
			return wrapErr("lock", "sound", err)
		}

		_, err := tx.NewInsert().
			Model(&models.Announcement{
				GuildID: announcement.GuildID.String(),
				UserID:  announcement.UserID.String(),
				SoundID: soundID,
			}).
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("sound_id = EXCLUDED.sound_id").
			Exec(ctx)
		return wrapErr("upsert", "announcement", err)
	})
	ql.Log(err, 1)
	return err
}

func (r *announcementRepository) Delete(ctx context.Context, guildID, userID snowflake.ID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Announcement)(nil)).
		Where("guild_id = ?", guildID.String()).
		Where("user_id = ?", userID.String()).
		Exec(ctx)
	if err != nil {
		return wrapErr("delete", "announcement", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("%w: announcement for %s in guild %s", domain.ErrNotFound, userID, guildID)
	}
	return nil
}
