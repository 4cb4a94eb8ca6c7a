package guildauth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dwightbot/dwight-web/dwight/metrics"
	"github.com/dwightbot/dwight-web/internal/domain"
)

const (
	DefaultTTL            = 60 * time.Second
	DefaultMembershipSize = 10_000
)

type Service interface {
	domain.Authorizer
	IsGuildAdmin(ctx context.Context, guildID, userID snowflake.ID) (bool, error)
	GuildAuthority(ctx context.Context, guildID snowflake.ID) (*Authority, error)
	GuildMembership(ctx context.Context, guildID, userID snowflake.ID) (*Membership, error)
}

type Config struct {
	TTL            time.Duration
	MembershipSize int
}

type membershipEntry struct {
	membership *Membership
	expiresAt  time.Time
}

type service struct {
	api         PlatformAPI
	ttl         time.Duration
	authorities *cache.Cache
	memberships *lru.Cache
	fetches     singleflight.Group
}

func NewService(api PlatformAPI, cfg Config) (*service, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MembershipSize <= 0 {
		cfg.MembershipSize = DefaultMembershipSize
	}

	memberships, err := lru.New(cfg.MembershipSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership cache: %w", err)
	}

	return &service{
		api:         api,
		ttl:         cfg.TTL,
		authorities: cache.New(cfg.TTL, cfg.TTL*2),
		memberships: memberships,
	}, nil
}

// IsGuildAdmin fetches authority and membership in parallel. Both fetches run to
// completion even if one fails so the successful one still lands in its cache.
func (s *service) IsGuildAdmin(ctx context.Context, guildID, userID snowflake.ID) (bool, error) {
	var (
		authority  *Authority
		membership *Membership
		g          errgroup.Group
	)

	g.Go(func() error {
		var err error
		authority, err = s.GuildAuthority(ctx, guildID)
		return err
	})
	g.Go(func() error {
		var err error
		membership, err = s.GuildMembership(ctx, guildID, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return false, err
	}
	return authority.Allows(membership), nil
}

func (s *service) Authorize(ctx context.Context, identity domain.Identity, guildID snowflake.ID) error {
	ok, err := s.IsGuildAdmin(ctx, guildID, identity.DiscordID)
	if err != nil {
		slog.Warn("Guild admin check failed",
			slog.String("type", "discord"),
			slog.String("guild_id", guildID.String()),
			slog.String("user_id", identity.DiscordID.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *service) GuildAuthority(ctx context.Context, guildID snowflake.ID) (*Authority, error) {
	key := guildID.String()
	if cached, ok := s.authorities.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("authority", "hit").Inc()
		return cached.(*Authority), nil
	}
	metrics.CacheLookups.WithLabelValues("authority", "miss").Inc()

	v, err, _ := s.fetches.Do("guild:"+key, func() (any, error) {
		guild, err := s.api.GetGuild(context.WithoutCancel(ctx), guildID)
		if err != nil {
			metrics.DiscordFetches.WithLabelValues("guild", "error").Inc()
			return nil, fmt.Errorf("%w: fetch guild %s: %w", domain.ErrUpstreamUnavailable, guildID, err)
		}
		if guild == nil || guild.OwnerID == 0 {
			metrics.DiscordFetches.WithLabelValues("guild", "malformed").Inc()
			return nil, fmt.Errorf("%w: guild %s has no owner", domain.ErrUpstreamUnavailable, guildID)
		}
		metrics.DiscordFetches.WithLabelValues("guild", "ok").Inc()

		authority := NewAuthority(guild)
		s.authorities.Set(key, authority, cache.DefaultExpiration)
		return authority, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Authority), nil
}

func (s *service) GuildMembership(ctx context.Context, guildID, userID snowflake.ID) (*Membership, error) {
	key := guildID.String() + ":" + userID.String()
	if cached, ok := s.memberships.Get(key); ok {
		entry := cached.(membershipEntry)
		if time.Now().Before(entry.expiresAt) {
			metrics.CacheLookups.WithLabelValues("membership", "hit").Inc()
			return entry.membership, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("membership", "miss").Inc()

	v, err, _ := s.fetches.Do("member:"+key, func() (any, error) {
		member, err := s.api.GetMember(context.WithoutCancel(ctx), guildID, userID)
		if err != nil {
			metrics.DiscordFetches.WithLabelValues("member", "error").Inc()
			return nil, fmt.Errorf("%w: fetch member %s of guild %s: %w", domain.ErrUpstreamUnavailable, userID, guildID, err)
		}
		if member == nil || member.UserID == 0 {
			metrics.DiscordFetches.WithLabelValues("member", "malformed").Inc()
			return nil, fmt.Errorf("%w: member %s of guild %s has no user", domain.ErrUpstreamUnavailable, userID, guildID)
		}
		metrics.DiscordFetches.WithLabelValues("member", "ok").Inc()

		membership := &Membership{
			GuildID: guildID,
			UserID:  member.UserID,
			RoleIDs: member.RoleIDs,
		}
		s.memberships.Add(key, membershipEntry{
			membership: membership,
			expiresAt:  time.Now().Add(s.ttl),
		})
		return membership, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Membership), nil
}
