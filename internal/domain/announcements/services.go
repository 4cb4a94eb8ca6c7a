package announcements

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain"
)

type Service interface {
	ListAnnouncements(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]*Announcement, error)
	UpsertAnnouncement(ctx context.Context, identity domain.Identity, guildID, userID snowflake.ID, soundID string) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, identity domain.Identity, guildID, userID snowflake.ID) error
}

type service struct {
	repository Repository
	sounds     SoundFinder
	gate       domain.Authorizer
}

func NewService(repository Repository, sounds SoundFinder, gate domain.Authorizer) *service {
	return &service{
		repository: repository,
		sounds:     sounds,
		gate:       gate,
	}
}

func (s *service) ListAnnouncements(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]*Announcement, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	announcements, err := s.repository.List(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// UpsertAnnouncement binds userID to soundID. The sound must be live and belong to guildID.
func (s *service) UpsertAnnouncement(ctx context.Context, identity domain.Identity, guildID, userID snowflake.ID, soundID string) (*Announcement, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	sound, err := s.sounds.GetByID(ctx, soundID)
	if err != nil {
		return nil, err
	}
	if sound.Deleted || sound.GuildID != guildID {
		return nil, fmt.Errorf("%w: sound %s in guild %s", domain.ErrNotFound, soundID, guildID)
	}

	announcement := &Announcement{
		GuildID:   guildID,
		UserID:    userID,
		SoundID:   sound.ID,
		SoundName: sound.Name,
	}
	if err := s.repository.Upsert(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to upsert announcement: %w", err)
	}

	slog.Info("Announcement set",
		slog.String("type", "sys"),
		slog.String("guild_id", guildID.String()),
		slog.String("user_id", userID.String()),
		slog.String("sound_id", sound.ID),
	)
	return announcement, nil
}

func (s *service) DeleteAnnouncement(ctx context.Context, identity domain.Identity, guildID, userID snowflake.ID) error {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, guildID, userID); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}
