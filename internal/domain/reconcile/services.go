package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dwightbot/dwight-web/dwight/metrics"
	"github.com/dwightbot/dwight-web/internal/domain"
)

type Service interface {
	HasPendingChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (bool, error)
	ApplyChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) error
}

type service struct {
	repository Repository
	notifier   Notifier
	gate       domain.Authorizer
	now        func() time.Time
}

func NewService(repository Repository, notifier Notifier, gate domain.Authorizer) *service {
	return &service{
		repository: repository,
		notifier:   notifier,
		gate:       gate,
		now:        time.Now,
	}
}

// IsPending reports whether visible sounds changed after the last rebuild.
// A guild without visible sounds never has pending changes.
func IsPending(lastModified time.Time, modified bool, lastApplied time.Time, applied bool) bool {
	if !modified {
		return false
	}
	if !applied {
		return true
	}
	return lastApplied.Before(lastModified)
}

func (s *service) HasPendingChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (bool, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return false, err
	}
	return s.pending(ctx, guildID)
}

func (s *service) pending(ctx context.Context, guildID snowflake.ID) (bool, error) {
	var (
		lastModified, lastApplied time.Time
		modified, applied         bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lastModified, modified, err = s.repository.LastVisibleModification(gctx, guildID)
		if err != nil {
			return fmt.Errorf("failed to get last modification: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lastApplied, applied, err = s.repository.Watermark(gctx, guildID)
		if err != nil {
			return fmt.Errorf("failed to get watermark: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	return IsPending(lastModified, modified, lastApplied, applied), nil
}

// ApplyChanges asks the bot to rebuild and records the rebuild time once the bot has
// acknowledged. A failed webhook leaves the watermark untouched so the change stays pending.
func (s *service) ApplyChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) error {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return err
	}

	pending, err := s.pending(ctx, guildID)
	if err != nil {
		metrics.Applies.WithLabelValues("error").Inc()
		return err
	}
	if !pending {
		metrics.Applies.WithLabelValues("nothing").Inc()
		return fmt.Errorf("%w: guild %s", domain.ErrNothingToApply, guildID)
	}

	if err := s.notifier.TriggerRebuild(ctx, guildID); err != nil {
		metrics.Applies.WithLabelValues("webhook_failed").Inc()
		if !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return err
	}

	at := s.now().UTC()
	if err := s.repository.AdvanceWatermark(ctx, guildID, at); err != nil {
		metrics.Applies.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to advance watermark: %w", err)
	}

	metrics.Applies.WithLabelValues("applied").Inc()
	slog.Info("Changes applied",
		slog.String("type", "sys"),
		slog.String("guild_id", guildID.String()),
		slog.String("user_id", identity.UserID),
		slog.Time("watermark", at),
	)
	return nil
}
