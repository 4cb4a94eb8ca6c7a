package sounds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/dwightbot/dwight-web/dwight/metrics"
	"github.com/dwightbot/dwight-web/internal/domain"
)

const (
	DefaultLimit          = 20
	DefaultMaxNameLength  = 32
	DefaultMaxUploadBytes = 100 * 1024
)

type Service interface {
	ListSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID, query string) ([]*Sound, error)
	ListVisibleSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]*Sound, error)
	GetQuota(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Quota, error)
	CreateSound(ctx context.Context, identity domain.Identity, params CreateParams) (*Sound, error)
	UpdateSound(ctx context.Context, identity domain.Identity, soundID string, params UpdateParams) (*Sound, error)
	DeleteSound(ctx context.Context, identity domain.Identity, soundID string) error
}

type Config struct {
	DefaultLimit   int
	MaxNameLength  int
	MaxUploadBytes int
}

type service struct {
	repository Repository
	transcoder Transcoder
	gate       domain.Authorizer
	cfg        Config
	now        func() time.Time
}

func NewService(repository Repository, transcoder Transcoder, gate domain.Authorizer, cfg Config) *service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxNameLength <= 0 {
		cfg.MaxNameLength = DefaultMaxNameLength
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &service{
		repository: repository,
		transcoder: transcoder,
		gate:       gate,
		cfg:        cfg,
		now:        time.Now,
	}
}

// ListSounds returns the guild's live sounds. A non-empty query narrows them to fuzzy
// name matches, best match first.
func (s *service) ListSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID, query string) ([]*Sound, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	sounds, err := s.repository.ListLive(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sounds: %w", err)
	}
	if query == "" {
		return sounds, nil
	}
	return matchNames(sounds, query), nil
}

func (s *service) ListVisibleSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]*Sound, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	sounds, err := s.repository.ListVisible(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible sounds: %w", err)
	}
	return sounds, nil
}

func (s *service) GetQuota(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Quota, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}
	return s.quota(ctx, guildID)
}

func (s *service) quota(ctx context.Context, guildID snowflake.ID) (*Quota, error) {
	limit, found, err := s.repository.GetLimit(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sound limit: %w", err)
	}
	if !found {
		limit = s.cfg.DefaultLimit
	}

	used, err := s.repository.CountLive(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sounds: %w", err)
	}
	return &Quota{Limit: limit, Used: used}, nil
}

// CreateSound stores and transcodes a new sound. The quota check and the insert are not
// atomic; concurrent creates may overshoot the limit by the number of racers minus one.
// If the transcode fails the row stays and ErrTranscodeFailed is returned alongside it.
func (s *service) CreateSound(ctx context.Context, identity domain.Identity, params CreateParams) (*Sound, error) {
	if err := s.gate.Authorize(ctx, identity, params.GuildID); err != nil {
		return nil, err
	}

	name, err := validateName(params.Name, s.cfg.MaxNameLength)
	if err != nil {
		return nil, err
	}
	if err := validateAudio(params.Data, s.cfg.MaxUploadBytes); err != nil {
		return nil, err
	}

	quota, err := s.quota(ctx, params.GuildID)
	if err != nil {
		return nil, err
	}
	if quota.Used >= quota.Limit {
		metrics.SoundsCreated.WithLabelValues("quota_exceeded").Inc()
		return nil, fmt.Errorf("%w: guild %s already has %d of %d sounds", domain.ErrQuotaExceeded, params.GuildID, quota.Used, quota.Limit)
	}

	now := s.now().UTC()
	sound := &Sound{
		ID:          uuid.NewString(),
		GuildID:     params.GuildID,
		Name:        name,
		Hidden:      params.Hidden,
		CreatedByID: identity.UserID,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.repository.Create(ctx, sound); err != nil {
		metrics.SoundsCreated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create sound: %w", err)
	}

	if err := s.transcoder.Transcode(ctx, sound.ID, params.Data); err != nil {
		metrics.SoundsCreated.WithLabelValues("transcode_failed").Inc()
		slog.Error("Sound transcode failed",
			slog.String("type", "transcode"),
			slog.String("sound_id", sound.ID),
			slog.String("guild_id", sound.GuildID.String()),
			slog.Any("error", err),
		)
		if !errors.Is(err, domain.ErrTranscodeFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrTranscodeFailed, err)
		}
		return sound, err
	}

	metrics.SoundsCreated.WithLabelValues("created").Inc()
	slog.Info("Sound created",
		slog.String("type", "sys"),
		slog.String("sound_id", sound.ID),
		slog.String("guild_id", sound.GuildID.String()),
		slog.String("user_id", identity.UserID),
	)
	return sound, nil
}

func (s *service) UpdateSound(ctx context.Context, identity domain.Identity, soundID string, params UpdateParams) (*Sound, error) {
	sound, err := s.liveSound(ctx, soundID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, identity, sound.GuildID); err != nil {
		return nil, err
	}

	name, err := validateName(params.Name, s.cfg.MaxNameLength)
	if err != nil {
		return nil, err
	}

	sound.Name = name
	sound.Hidden = params.Hidden
	sound.ModifiedAt = s.now().UTC()
	if err := s.repository.Update(ctx, sound); err != nil {
		return nil, fmt.Errorf("failed to update sound: %w", err)
	}
	return sound, nil
}

func (s *service) DeleteSound(ctx context.Context, identity domain.Identity, soundID string) error {
	sound, err := s.liveSound(ctx, soundID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, identity, sound.GuildID); err != nil {
		return err
	}

	if err := s.repository.SoftDelete(ctx, sound.ID, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to delete sound: %w", err)
	}

	slog.Info("Sound deleted",
		slog.String("type", "sys"),
		slog.String("sound_id", sound.ID),
		slog.String("guild_id", sound.GuildID.String()),
		slog.String("user_id", identity.UserID),
	)
	return nil
}

func (s *service) liveSound(ctx context.Context, soundID string) (*Sound, error) {
	sound, err := s.repository.GetByID(ctx, soundID)
	if err != nil {
		return nil, err
	}
	if !sound.Live() {
		return nil, fmt.Errorf("%w: sound %s", domain.ErrNotFound, soundID)
	}
	return sound, nil
}

type soundNames []*Sound

func (n soundNames) String(i int) string { return n[i].Name }
func (n soundNames) Len() int            { return len(n) }

func matchNames(sounds []*Sound, query string) []*Sound {
	matches := fuzzy.FindFrom(query, soundNames(sounds))
	matched := make([]*Sound, 0, len(matches))
	for _, match := range matches {
		matched = append(matched, sounds[match.Index])
	}
	return matched
}
