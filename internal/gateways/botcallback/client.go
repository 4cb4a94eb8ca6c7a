package botcallback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile"
)

const DefaultTimeout = 10 * time.Second

// Client asks the bot process to rebuild a guild's soundboard.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ reconcile.Notifier = (*Client)(nil)

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) TriggerRebuild(ctx context.Context, guildID snowflake.ID) error {
	start := time.Now()
	url := c.baseURL + "/" + guildID.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to build rebuild request: %w", domain.ErrUpstreamUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: rebuild callback: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: rebuild callback returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	slog.Debug("Rebuild callback delivered",
		slog.String("type", "http"),
		slog.String("guild_id", guildID.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
