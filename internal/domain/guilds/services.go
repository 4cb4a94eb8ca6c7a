package guilds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dwightbot/dwight-web/internal/domain"
)

const (
	MemberListLimit   = 1000
	DefaultStatsLimit = 10
	maxStatsLimit     = 100
	adminCheckWorkers = 4
)

type Service interface {
	ListGuilds(ctx context.Context, identity domain.Identity) ([]Guild, error)
	GetGuild(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Guild, error)
	ListMembers(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]Member, error)
	GetCounts(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Counts, error)
	TopSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID, limit int) ([]SoundPlays, error)
	LastPlays(ctx context.Context, identity domain.Identity, guildID snowflake.ID, limit int) ([]Play, error)
}

type service struct {
	directory Directory
	callers   CallerDirectory
	stats     StatsRepository
	admins    AdminChecker
	gate      domain.Authorizer
	botUserID snowflake.ID
}

func NewService(directory Directory, callers CallerDirectory, stats StatsRepository, admins AdminChecker, gate domain.Authorizer, botUserID snowflake.ID) *service {
	return &service{
		directory: directory,
		callers:   callers,
		stats:     stats,
		admins:    admins,
		gate:      gate,
		botUserID: botUserID,
	}
}

// ListGuilds returns the guilds the caller shares with the bot and administers, in the
// order the platform listed the caller's guilds. Only guilds where the platform grants the
// caller manage rights are checked against the admin gate. A guild that no longer knows
// the caller is left out; any other undetermined guild fails the whole listing.
func (s *service) ListGuilds(ctx context.Context, identity domain.Identity) ([]Guild, error) {
	callerGuilds, err := s.callers.CallerGuilds(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: list caller guilds: %w", domain.ErrUpstreamUnavailable, err)
	}

	botGuilds, err := s.directory.BotGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list bot guilds: %w", domain.ErrUpstreamUnavailable, err)
	}

	joined := make(map[snowflake.ID]bool, len(botGuilds))
	for _, guild := range botGuilds {
		joined[guild.ID] = true
	}
	candidates := make([]Guild, 0, len(callerGuilds))
	for _, guild := range callerGuilds {
		if joined[guild.ID] && guild.Manageable {
			candidates = append(candidates, guild)
		}
	}

	var (
		mu      sync.Mutex
		allowed = make(map[snowflake.ID]bool, len(candidates))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(adminCheckWorkers)
	for _, guild := range candidates {
		g.Go(func() error {
			ok, err := s.admins.IsGuildAdmin(gctx, guild.ID, identity.DiscordID)
			if errors.Is(err, domain.ErrNotFound) {
				slog.Debug("Guild no longer lists caller",
					slog.String("type", "discord"),
					slog.String("guild_id", guild.ID.String()),
					slog.Any("error", err),
				)
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			allowed[guild.ID] = ok
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]Guild, 0, len(allowed))
	for _, guild := range candidates {
		if allowed[guild.ID] {
			result = append(result, guild)
		}
	}
	return result, nil
}

func (s *service) GetGuild(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Guild, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	guild, err := s.directory.GuildSummary(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: get guild %s: %w", domain.ErrUpstreamUnavailable, guildID, err)
	}
	return guild, nil
}

// ListMembers returns up to MemberListLimit members, leaving out the bot itself.
func (s *service) ListMembers(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]Member, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	members, err := s.directory.ListMembers(ctx, guildID, MemberListLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list members of %s: %w", domain.ErrUpstreamUnavailable, guildID, err)
	}

	filtered := members[:0]
	for _, member := range members {
		if member.UserID != s.botUserID {
			filtered = append(filtered, member)
		}
	}
	return filtered, nil
}

func (s *service) GetCounts(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*Counts, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	counts, err := s.stats.Counts(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to count guild records: %w", err)
	}
	return counts, nil
}

func (s *service) TopSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID, limit int) ([]SoundPlays, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	top, err := s.stats.TopSounds(ctx, guildID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get top sounds: %w", err)
	}
	return top, nil
}

func (s *service) LastPlays(ctx context.Context, identity domain.Identity, guildID snowflake.ID, limit int) ([]Play, error) {
	if err := s.gate.Authorize(ctx, identity, guildID); err != nil {
		return nil, err
	}

	plays, err := s.stats.LastPlays(ctx, guildID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get last plays: %w", err)
	}
	return plays, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultStatsLimit
	case limit > maxStatsLimit:
		return maxStatsLimit
	default:
		return limit
	}
}
