package models

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/announcements"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

// UserSession is the signed payload of the session cookie.
type UserSession struct {
	UserID    string       `json:"user_id"`
	DiscordID snowflake.ID `json:"discord_id"`
	Username  string       `json:"username"`
	Avatar    string       `json:"avatar"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (s *UserSession) Identity() domain.Identity {
	return domain.Identity{
		UserID:    s.UserID,
		DiscordID: s.DiscordID,
	}
}

type CreateSoundRequest struct {
	Name     string `json:"name"`
	Hidden   bool   `json:"hidden"`
	FileData string `json:"file_data"`
}

type UpdateSoundRequest struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

type UpsertAnnouncementRequest struct {
	SoundID string `json:"sound_id"`
}

type SoundDTO struct {
	ID         string       `json:"id"`
	GuildID    snowflake.ID `json:"guild_id"`
	Name       string       `json:"name"`
	Hidden     bool         `json:"hidden"`
	CreatedBy  string       `json:"created_by"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
}

func NewSoundDTO(s *sounds.Sound) SoundDTO {
	return SoundDTO{
		ID:         s.ID,
		GuildID:    s.GuildID,
		Name:       s.Name,
		Hidden:     s.Hidden,
		CreatedBy:  s.CreatedByID,
		CreatedAt:  s.CreatedAt,
		ModifiedAt: s.ModifiedAt,
	}
}

func NewSoundDTOs(list []*sounds.Sound) []SoundDTO {
	out := make([]SoundDTO, 0, len(list))
	for _, s := range list {
		out = append(out, NewSoundDTO(s))
	}
	return out
}

type QuotaDTO struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

func NewQuotaDTO(q *sounds.Quota) QuotaDTO {
	return QuotaDTO{
		Limit:     q.Limit,
		Used:      q.Used,
		Remaining: max(q.Limit-q.Used, 0),
	}
}

type AnnouncementDTO struct {
	GuildID   snowflake.ID `json:"guild_id"`
	UserID    snowflake.ID `json:"user_id"`
	SoundID   string       `json:"sound_id"`
	SoundName string       `json:"sound_name,omitempty"`
}

func NewAnnouncementDTO(a *announcements.Announcement) AnnouncementDTO {
	return AnnouncementDTO{
		GuildID:   a.GuildID,
		UserID:    a.UserID,
		SoundID:   a.SoundID,
		SoundName: a.SoundName,
	}
}

type GuildDTO struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
	Icon *string      `json:"icon"`
}

func NewGuildDTO(g guilds.Guild) GuildDTO {
	return GuildDTO{ID: g.ID, Name: g.Name, Icon: g.Icon}
}

type MemberDTO struct {
	UserID snowflake.ID `json:"user_id"`
	Name   string       `json:"name"`
	Avatar *string      `json:"avatar"`
}

type CountsDTO struct {
	Sounds        int `json:"sounds"`
	Announcements int `json:"announcements"`
	Plays         int `json:"plays"`
}

type SoundPlaysDTO struct {
	SoundID string `json:"sound_id"`
	Name    string `json:"name"`
	Plays   int    `json:"plays"`
}

type PlayDTO struct {
	SoundID  string    `json:"sound_id"`
	Name     string    `json:"name"`
	UserID   string    `json:"user_id"`
	PlayedAt time.Time `json:"played_at"`
}

type PendingChangesDTO struct {
	Pending bool `json:"pending"`
}

type AdminDTO struct {
	IsAdmin bool `json:"is_admin"`
}
