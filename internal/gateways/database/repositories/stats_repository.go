package repositories

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"

	"github.com/dwightbot/dwight-web/internal/domain/guilds"
	"github.com/dwightbot/dwight-web/internal/gateways/database/models"
)

type statsRepository struct {
	db *bun.DB
}

var _ guilds.StatsRepository = &statsRepository{}

func NewStatsRepository(db *bun.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context, guildID snowflake.ID) (*guilds.Counts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var counts guilds.Counts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := r.db.NewSelect().
			Model((*models.Sound)(nil)).
			Where("guild_id = ?", guildID.String()).
			Where("deleted = ?", false).
			Count(gctx)
		counts.Sounds = n
		return wrapErr("count", "sound", err)
	})
	g.Go(func() error {
		n, err := r.db.NewSelect().
			Model((*models.Announcement)(nil)).
			Where("guild_id = ?", guildID.String()).
			Count(gctx)
		counts.Announcements = n
		return wrapErr("count", "announcement", err)
	})
	g.Go(func() error {
		n, err := r.db.NewSelect().
			Model((*models.Play)(nil)).
			Join("JOIN sounds AS s ON s.sound_id = p.sound_id").
			Where("s.guild_id = ?", guildID.String()).
			Where("s.deleted = ?", false).
			Count(gctx)
		counts.Plays = n
		return wrapErr("count", "play", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *statsRepository) TopSounds(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.SoundPlays, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []struct {
		SoundID string `bun:"sound_id"`
		Name    string `bun:"name"`
		Plays   int    `bun:"plays"`
	}
	err := r.db.NewSelect().
		TableExpr("plays AS p").
		ColumnExpr("p.sound_id, s.name, COUNT(*) AS plays").
		Join("JOIN sounds AS s ON s.sound_id = p.sound_id").
		Where("s.guild_id = ?", guildID.String()).
		Where("s.deleted = ?", false).
		GroupExpr("p.sound_id, s.name").
		OrderExpr("plays DESC, s.name ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, wrapErr("top", "play", err)
	}

	result := make([]guilds.SoundPlays, 0, len(rows))
	for _, row := range rows {
		result = append(result, guilds.SoundPlays{SoundID: row.SoundID, Name: row.Name, Plays: row.Plays})
	}
	return result, nil
}

func (r *statsRepository) LastPlays(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.Play, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []struct {
		SoundID  string    `bun:"sound_id"`
		Name     string    `bun:"name"`
		UserID   string    `bun:"user_id"`
		PlayedAt time.Time `bun:"played_at"`
	}
	err := r.db.NewSelect().
		TableExpr("plays AS p").
		ColumnExpr("p.sound_id, s.name, p.user_id, p.played_at").
		Join("JOIN sounds AS s ON s.sound_id = p.sound_id").
		Where("s.guild_id = ?", guildID.String()).
		OrderExpr("p.played_at DESC, p.id DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, wrapErr("recent", "play", err)
	}

	result := make([]guilds.Play, 0, len(rows))
	for _, row := range rows {
		result = append(result, guilds.Play{
			SoundID:  row.SoundID,
			Name:     row.Name,
			UserID:   row.UserID,
			PlayedAt: row.PlayedAt,
		})
	}
	return result, nil
}
