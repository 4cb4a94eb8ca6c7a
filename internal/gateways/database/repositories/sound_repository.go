package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/logger"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
	"github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type soundRepository struct {
	db *bun.DB
}

var _ sounds.Repository = &soundRepository{}

func NewSoundRepository(db *bun.DB) *soundRepository {
	return &soundRepository{db: db}
}

func (r *soundRepository) GetByID(ctx context.Context, soundID string) (*sounds.Sound, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("select", "sound", soundID)
	m := new(models.Sound)
	err := r.db.NewSelect().
		Model(m).
		Where("sound_id = ?", soundID).
		Scan(ctx)
	ql.Log(err, 1)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sound %s", domain.ErrNotFound, soundID)
	}
	if err != nil {
		return nil, wrapErr("select", "sound", err)
	}
	return toSound(m)
}

func (r *soundRepository) ListLive(ctx context.Context, guildID snowflake.ID) ([]*sounds.Sound, error) {
	return r.list(ctx, guildID, false)
}

func (r *soundRepository) ListVisible(ctx context.Context, guildID snowflake.ID) ([]*sounds.Sound, error) {
	return r.list(ctx, guildID, true)
}

func (r *soundRepository) list(ctx context.Context, guildID snowflake.ID, visibleOnly bool) ([]*sounds.Sound, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Sound
	q := r.db.NewSelect().
		Model(&rows).
		Where("guild_id = ?", guildID.String()).
		Where("deleted = ?", false)
	if visibleOnly {
		q = q.Where("hidden = ?", false)
	}
	if err := q.Order("created_at ASC", "name ASC").Scan(ctx); err != nil {
		return nil, wrapErr("list", "sound", err)
	}

	result := make([]*sounds.Sound, 0, len(rows))
	for _, row := range rows {
		sound, err := toSound(row)
		if err != nil {
			return nil, err
		}
		result = append(result, sound)
	}
	return result, nil
}

func (r *soundRepository) CountLive(ctx context.Context, guildID snowflake.ID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Sound)(nil)).
		Where("guild_id = ?", guildID.String()).
		Where("deleted = ?", false).
		Count(ctx)
	if err != nil {
		return 0, wrapErr("count", "sound", err)
	}
	return count, nil
}

func (r *soundRepository) GetLimit(ctx context.Context, guildID snowflake.ID) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	limit := &models.SoundLimit{GuildID: guildID.String()}
	err := r.db.NewSelect().
		Model(limit).
		WherePK().
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrapErr("select", "sound_limit", err)
	}
	return limit.Limit, true, nil
}

func (r *soundRepository) Create(ctx context.Context, sound *sounds.Sound) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("insert", "sound", sound.ID, sound.GuildID.String())
	res, err := r.db.NewInsert().
		Model(fromSound(sound)).
		Exec(ctx)
	ql.Log(err, rowsAffected(res))

	return wrapErr("insert", "sound", err)
}

func (r *soundRepository) Update(ctx context.Context, sound *sounds.Sound) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("update", "sound", sound.ID)
	res, err := r.db.NewUpdate().
		Model(fromSound(sound)).
		Column("name", "hidden", "modified_at").
		WherePK().
		Exec(ctx)
	n := rowsAffected(res)
	ql.Log(err, n)

	if err != nil {
		return wrapErr("update", "sound", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: sound %s", domain.ErrNotFound, sound.ID)
	}
	return nil
}

// SoftDelete flags the sound deleted and drops its announcement bindings atomically.
func (r *soundRepository) SoftDelete(ctx context.Context, soundID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("soft_delete", "sound", soundID)
	var unbound int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Sound)(nil)).
			Set("deleted = ?", true).
			Set("modified_at = ?", at).
			Where("sound_id = ?", soundID).
			Where("deleted = ?", false).
			Exec(ctx)
		if err != nil {
			return wrapErr("soft_delete", "sound", err)
		}
		if rowsAffected(res) == 0 {
			return fmt.Errorf("%w: sound %s", domain.ErrNotFound, soundID)
		}

		res, err = tx.NewDelete().
			Model((*models.Announcement)(nil)).
			Where("sound_id = ?", soundID).
			Exec(ctx)
		if err != nil {
			return wrapErr("delete", "announcement", err)
		}
		unbound = rowsAffected(res)
		return nil
	})
	ql.Log(err, unbound)
	return err
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func toSound(m *models.Sound) (*sounds.Sound, error) {
	guildID, err := parseSnowflake("sound", m.GuildID)
	if err != nil {
		return nil, err
	}
	return &sounds.Sound{
		ID:          m.ID,
		GuildID:     guildID,
		Name:        m.Name,
		Hidden:      m.Hidden,
		Deleted:     m.Deleted,
		CreatedByID: m.CreatedByID,
		CreatedAt:   m.CreatedAt,
		ModifiedAt:  m.ModifiedAt,
	}, nil
}

func fromSound(s *sounds.Sound) *models.Sound {
	return &models.Sound{
		ID:          s.ID,
		GuildID:     s.GuildID.String(),
		Name:        s.Name,
		Hidden:      s.Hidden,
		Deleted:     s.Deleted,
		CreatedByID: s.CreatedByID,
		CreatedAt:   s.CreatedAt,
		ModifiedAt:  s.ModifiedAt,
	}
}
