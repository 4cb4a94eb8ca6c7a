package announcements_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/announcements"
	"github.com/dwightbot/dwight-web/internal/domain/announcements/mock"
	domainmock "github.com/dwightbot/dwight-web/internal/domain/mock"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

const (
	guildID      snowflake.ID = 100
	otherGuildID snowflake.ID = 200
	memberID     snowflake.ID = 7
)

var identity = domain.Identity{UserID: "u-1", DiscordID: 42}

func Test_service_UpsertAnnouncement(t *testing.T) {
	tests := []struct {
		name       string
		sound      *sounds.Sound
		lookupErr  error
		upsertErr  error
		wantErr    error
		wantUpsert bool
	}{
		{
			name:       "Live sound of the guild",
			sound:      &sounds.Sound{ID: "s1", GuildID: guildID, Name: "dundie"},
			wantUpsert: true,
		},
		{
			name:       "Hidden sound is allowed",
			sound:      &sounds.Sound{ID: "s1", GuildID: guildID, Name: "dundie", Hidden: true},
			wantUpsert: true,
		},
		{
			name:    "Deleted sound",
			sound:   &sounds.Sound{ID: "s1", GuildID: guildID, Deleted: true},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "Sound of another guild",
			sound:   &sounds.Sound{ID: "s1", GuildID: otherGuildID},
			wantErr: domain.ErrNotFound,
		},
		{
			name:      "Unknown sound",
			lookupErr: domain.ErrNotFound,
			wantErr:   domain.ErrNotFound,
		},
		{
			name:       "Sound deleted before the write",
			sound:      &sounds.Sound{ID: "s1", GuildID: guildID, Name: "dundie"},
			upsertErr:  fmt.Errorf("%w: sound s1", domain.ErrNotFound),
			wantErr:    domain.ErrNotFound,
			wantUpsert: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockRepository(ctrl)
			finder := mock.NewMockSoundFinder(ctrl)
			gate := domainmock.NewMockAuthorizer(ctrl)

			gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil)
			finder.EXPECT().GetByID(gomock.Any(), "s1").Return(tt.sound, tt.lookupErr)
			if tt.wantUpsert {
				repo.EXPECT().Upsert(gomock.Any(), &announcements.Announcement{
					GuildID:   guildID,
					UserID:    memberID,
					SoundID:   "s1",
					SoundName: "dundie",
				}).Return(tt.upsertErr)
			}

			s := announcements.NewService(repo, finder, gate)
			got, err := s.UpsertAnnouncement(context.Background(), identity, guildID, memberID, "s1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "s1", got.SoundID)
		})
	}
}

func Test_service_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	finder := mock.NewMockSoundFinder(ctrl)
	gate := domainmock.NewMockAuthorizer(ctrl)
	gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(domain.ErrUnauthorized).Times(3)

	s := announcements.NewService(repo, finder, gate)

	_, err := s.ListAnnouncements(context.Background(), identity, guildID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.UpsertAnnouncement(context.Background(), identity, guildID, memberID, "s1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = s.DeleteAnnouncement(context.Background(), identity, guildID, memberID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func Test_service_DeleteAnnouncement(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	gate := domainmock.NewMockAuthorizer(ctrl)
	gate.EXPECT().Authorize(gomock.Any(), identity, guildID).Return(nil).Times(2)
	gomock.InOrder(
		repo.EXPECT().Delete(gomock.Any(), guildID, memberID).Return(nil),
		repo.EXPECT().Delete(gomock.Any(), guildID, memberID).Return(domain.ErrNotFound),
	)

	s := announcements.NewService(repo, mock.NewMockSoundFinder(ctrl), gate)

	assert.NoError(t, s.DeleteAnnouncement(context.Background(), identity, guildID, memberID))
	assert.ErrorIs(t, s.DeleteAnnouncement(context.Background(), identity, guildID, memberID), domain.ErrNotFound)
}
