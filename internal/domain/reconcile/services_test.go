package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dwightbot/dwight-web/internal/domain"
	domainmock "github.com/dwightbot/dwight-web/internal/domain/mock"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile/mock"
)

const guildID snowflake.ID = 100

var (
	identity = domain.Identity{UserID: "u-1", DiscordID: 42}
	t0       = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedNow = t0.Add(time.Hour)
)

func TestIsPending(t *testing.T) {
	tests := []struct {
		name         string
		lastModified time.Time
		modified     bool
		lastApplied  time.Time
		applied      bool
		want         bool
	}{
		{name: "No visible sounds, never applied", want: false},
		{name: "No visible sounds, applied before", lastApplied: t0, applied: true, want: false},
		{name: "Never applied", lastModified: t0, modified: true, want: true},
		{name: "Applied before modification", lastModified: t0, modified: true, lastApplied: t0.Add(-time.Second), applied: true, want: true},
		{name: "Applied at modification", lastModified: t0, modified: true, lastApplied: t0, applied: true, want: false},
		{name: "Applied after modification", lastModified: t0, modified: true, lastApplied: t0.Add(time.Second), applied: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.IsPending(tt.lastModified, tt.modified, tt.lastApplied, tt.applied))
		})
	}
}

type fixture struct {
	repo     *mock.MockRepository
	notifier *mock.MockNotifier
	gate     *domainmock.MockAuthorizer
	service  reconcile.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:     mock.NewMockRepository(ctrl),
		notifier: mock.NewMockNotifier(ctrl),
		gate:     domainmock.NewMockAuthorizer(ctrl),
	}
	s := reconcile.NewService(f.repo, f.notifier, f.gate)
	reconcile.SetClock(s, func() time.Time { return fixedNow })
	f.service = s
	return f
}

func Test_service_HasPendingChanges(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
	f.repo.EXPECT().LastVisibleModification(gomock.Any(), guildID).Return(t0, true, nil)
	f.repo.EXPECT().Watermark(gomock.Any(), guildID).Return(time.Time{}, false, nil)

	got, err := f.service.HasPendingChanges(context.Background(), identity, guildID)
	require.NoError(t, err)
	assert.True(t, got)
}

func Test_service_HasPendingChanges_Unauthorized(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(domain.ErrUnauthorized)

	got, err := f.service.HasPendingChanges(context.Background(), identity, guildID)
	assert.False(t, got)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func Test_service_ApplyChanges(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
	f.repo.EXPECT().LastVisibleModification(gomock.Any(), guildID).Return(t0, true, nil)
	f.repo.EXPECT().Watermark(gomock.Any(), guildID).Return(t0.Add(-time.Minute), true, nil)
	gomock.InOrder(
		f.notifier.EXPECT().TriggerRebuild(gomock.Any(), guildID).Return(nil),
		f.repo.EXPECT().AdvanceWatermark(gomock.Any(), guildID, fixedNow).Return(nil),
	)

	assert.NoError(t, f.service.ApplyChanges(context.Background(), identity, guildID))
}

func Test_service_ApplyChanges_NothingToApply(t *testing.T) {
	tests := []struct {
		name         string
		lastModified time.Time
		modified     bool
		lastApplied  time.Time
		applied      bool
	}{
		{name: "Watermark current", lastModified: t0, modified: true, lastApplied: t0, applied: true},
		{name: "No visible sounds", modified: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
			f.repo.EXPECT().LastVisibleModification(gomock.Any(), guildID).Return(tt.lastModified, tt.modified, nil)
			f.repo.EXPECT().Watermark(gomock.Any(), guildID).Return(tt.lastApplied, tt.applied, nil)

			err := f.service.ApplyChanges(context.Background(), identity, guildID)
			assert.ErrorIs(t, err, domain.ErrNothingToApply)
		})
	}
}

func Test_service_ApplyChanges_WebhookFailureKeepsWatermark(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
	f.repo.EXPECT().LastVisibleModification(gomock.Any(), guildID).Return(t0, true, nil)
	f.repo.EXPECT().Watermark(gomock.Any(), guildID).Return(time.Time{}, false, nil)
	f.notifier.EXPECT().TriggerRebuild(gomock.Any(), guildID).Return(errors.New("connection refused"))

	err := f.service.ApplyChanges(context.Background(), identity, guildID)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func Test_service_ApplyChanges_Unauthorized(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(domain.ErrUnauthorized)

	err := f.service.ApplyChanges(context.Background(), identity, guildID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func Test_service_ApplyChanges_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
	f.repo.EXPECT().LastVisibleModification(gomock.Any(), guildID).Return(time.Time{}, false, errors.New("db down"))
	f.repo.EXPECT().Watermark(gomock.Any(), guildID).Return(time.Time{}, false, nil).AnyTimes()

	err := f.service.ApplyChanges(context.Background(), identity, guildID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNothingToApply)
}
