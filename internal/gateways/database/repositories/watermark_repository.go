package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"

	"github.com/dwightbot/dwight-web/internal/domain/logger"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile"
	"github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type watermarkRepository struct {
	db *bun.DB
}

var _ reconcile.Repository = &watermarkRepository{}

func NewWatermarkRepository(db *bun.DB) *watermarkRepository {
	return &watermarkRepository{db: db}
}

func (r *watermarkRepository) LastVisibleModification(ctx context.Context, guildID snowflake.ID) (time.Time, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	latest := new(models.Sound)
	err := r.db.NewSelect().
		Model(latest).
		Column("modified_at").
		Where("guild_id = ?", guildID.String()).
		Where("deleted = ?", false).
		Where("hidden = ?", false).
		Order("modified_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, wrapErr("max", "sound", err)
	}
	return latest.ModifiedAt, true, nil
}

func (r *watermarkRepository) Watermark(ctx context.Context, guildID snowflake.ID) (time.Time, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &models.GuildLastUpdate{GuildID: guildID.String()}
	err := r.db.NewSelect().
		Model(row).
		WherePK().
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, wrapErr("select", "guild_last_update", err)
	}
	return row.LastUpdate, true, nil
}

// AdvanceWatermark only ever moves the watermark forward. The conditional update is retried
// once after an insert lost a race, by which point the row is guaranteed to exist.
func (r *watermarkRepository) AdvanceWatermark(ctx context.Context, guildID snowflake.ID, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("advance", "guild_last_update", guildID.String(), at)

	advance := func() (int64, error) {
		res, err := r.db.NewUpdate().
			Model((*models.GuildLastUpdate)(nil)).
			Set("last_update = ?", at).
			Where("guild_id = ?", guildID.String()).
			Where("last_update < ?", at).
			Exec(ctx)
		return rowsAffected(res), err
	}

	n, err := advance()
	if err != nil {
		ql.Log(err, 0)
		return wrapErr("update", "guild_last_update", err)
	}
	if n > 0 {
		ql.Log(nil, n)
		return nil
	}

	res, err := r.db.NewInsert().
		Model(&models.GuildLastUpdate{GuildID: guildID.String(), LastUpdate: at}).
		On("CONFLICT (guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		ql.Log(err, 0)
		return wrapErr("insert", "guild_last_update", err)
	}
	if n = rowsAffected(res); n > 0 {
		ql.Log(nil, n)
		return nil
	}

	n, err = advance()
	ql.Log(err, n)
	return wrapErr("update", "guild_last_update", err)
}
