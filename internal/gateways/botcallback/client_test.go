package botcallback_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/gateways/botcallback"
)

const guildID = snowflake.ID(100)

func newClient(t *testing.T) *botcallback.Client {
	t.Helper()
	httpClient := &http.Client{Timeout: time.Second}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return botcallback.New("http://bot.internal/rebuild/", httpClient)
}

func TestTriggerRebuild(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantErr   bool
	}{
		{name: "ok", responder: httpmock.NewStringResponder(http.StatusOK, "done")},
		{name: "no content", responder: httpmock.NewStringResponder(http.StatusNoContent, "")},
		{name: "redirect status counts as success", responder: httpmock.NewStringResponder(http.StatusNotModified, "")},
		{name: "client error", responder: httpmock.NewStringResponder(http.StatusNotFound, "unknown guild"), wantErr: true},
		{name: "server error", responder: httpmock.NewStringResponder(http.StatusInternalServerError, ""), wantErr: true},
		{name: "transport error", responder: httpmock.NewErrorResponder(errors.New("connection refused")), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t)
			httpmock.RegisterResponder(http.MethodGet, "http://bot.internal/rebuild/100", tt.responder)

			err := client.TriggerRebuild(context.Background(), guildID)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
		})
	}
}

func TestTriggerRebuild_CancelledContext(t *testing.T) {
	client := newClient(t)
	httpmock.RegisterResponder(http.MethodGet, "http://bot.internal/rebuild/100",
		httpmock.NewStringResponder(http.StatusOK, ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.TriggerRebuild(ctx, guildID)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
