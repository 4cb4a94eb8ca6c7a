package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	domain "github.com/dwightbot/dwight-web/internal/domain"
	guilds "github.com/dwightbot/dwight-web/internal/domain/guilds"
	gomock "go.uber.org/mock/gomock"
)

// MockDirectory is a mock of Directory interface.
type MockDirectory struct {
	ctrl     *gomock.Controller
	recorder *MockDirectoryMockRecorder
	isgomock struct{}
}

// MockDirectoryMockRecorder is the mock recorder for MockDirectory.
type MockDirectoryMockRecorder struct {
	mock *MockDirectory
}

// NewMockDirectory creates a new mock instance.
func NewMockDirectory(ctrl *gomock.Controller) *MockDirectory {
	mock := &MockDirectory{ctrl: ctrl}
	mock.recorder = &MockDirectoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDirectory) EXPECT() *MockDirectoryMockRecorder {
	return m.recorder
}

// BotGuilds mocks base method.
func (m *MockDirectory) BotGuilds(ctx context.Context) ([]guilds.Guild, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BotGuilds", ctx)
	ret0, _ := ret[0].([]guilds.Guild)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BotGuilds indicates an expected call of BotGuilds.
func (mr *MockDirectoryMockRecorder) BotGuilds(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BotGuilds", reflect.TypeOf((*MockDirectory)(nil).BotGuilds), ctx)
}

// GuildSummary mocks base method.
func (m *MockDirectory) GuildSummary(ctx context.Context, guildID snowflake.ID) (*guilds.Guild, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GuildSummary", ctx, guildID)
	ret0, _ := ret[0].(*guilds.Guild)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GuildSummary indicates an expected call of GuildSummary.
func (mr *MockDirectoryMockRecorder) GuildSummary(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GuildSummary", reflect.TypeOf((*MockDirectory)(nil).GuildSummary), ctx, guildID)
}

// ListMembers mocks base method.
func (m *MockDirectory) ListMembers(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.Member, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembers", ctx, guildID, limit)
	ret0, _ := ret[0].([]guilds.Member)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembers indicates an expected call of ListMembers.
func (mr *MockDirectoryMockRecorder) ListMembers(ctx, guildID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembers", reflect.TypeOf((*MockDirectory)(nil).ListMembers), ctx, guildID, limit)
}

// MockCallerDirectory is a mock of CallerDirectory interface.
type MockCallerDirectory struct {
	ctrl     *gomock.Controller
	recorder *MockCallerDirectoryMockRecorder
	isgomock struct{}
}

// MockCallerDirectoryMockRecorder is the mock recorder for MockCallerDirectory.
type MockCallerDirectoryMockRecorder struct {
	mock *MockCallerDirectory
}

// NewMockCallerDirectory creates a new mock instance.
func NewMockCallerDirectory(ctrl *gomock.Controller) *MockCallerDirectory {
	mock := &MockCallerDirectory{ctrl: ctrl}
	mock.recorder = &MockCallerDirectoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCallerDirectory) EXPECT() *MockCallerDirectoryMockRecorder {
	return m.recorder
}

// CallerGuilds mocks base method.
func (m *MockCallerDirectory) CallerGuilds(ctx context.Context, identity domain.Identity) ([]guilds.Guild, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CallerGuilds", ctx, identity)
	ret0, _ := ret[0].([]guilds.Guild)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CallerGuilds indicates an expected call of CallerGuilds.
func (mr *MockCallerDirectoryMockRecorder) CallerGuilds(ctx, identity any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CallerGuilds", reflect.TypeOf((*MockCallerDirectory)(nil).CallerGuilds), ctx, identity)
}

// MockStatsRepository is a mock of StatsRepository interface.
type MockStatsRepository struct {
	ctrl     *gomock.Controller
	recorder *MockStatsRepositoryMockRecorder
	isgomock struct{}
}

// MockStatsRepositoryMockRecorder is the mock recorder for MockStatsRepository.
type MockStatsRepositoryMockRecorder struct {
	mock *MockStatsRepository
}

// NewMockStatsRepository creates a new mock instance.
func NewMockStatsRepository(ctrl *gomock.Controller) *MockStatsRepository {
	mock := &MockStatsRepository{ctrl: ctrl}
	mock.recorder = &MockStatsRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStatsRepository) EXPECT() *MockStatsRepositoryMockRecorder {
	return m.recorder
}

// Counts mocks base method.
func (m *MockStatsRepository) Counts(ctx context.Context, guildID snowflake.ID) (*guilds.Counts, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Counts", ctx, guildID)
	ret0, _ := ret[0].(*guilds.Counts)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Counts indicates an expected call of Counts.
func (mr *MockStatsRepositoryMockRecorder) Counts(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Counts", reflect.TypeOf((*MockStatsRepository)(nil).Counts), ctx, guildID)
}

// LastPlays mocks base method.
func (m *MockStatsRepository) LastPlays(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.Play, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LastPlays", ctx, guildID, limit)
	ret0, _ := ret[0].([]guilds.Play)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LastPlays indicates an expected call of LastPlays.
func (mr *MockStatsRepositoryMockRecorder) LastPlays(ctx, guildID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LastPlays", reflect.TypeOf((*MockStatsRepository)(nil).LastPlays), ctx, guildID, limit)
}

// TopSounds mocks base method.
func (m *MockStatsRepository) TopSounds(ctx context.Context, guildID snowflake.ID, limit int) ([]guilds.SoundPlays, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TopSounds", ctx, guildID, limit)
	ret0, _ := ret[0].([]guilds.SoundPlays)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TopSounds indicates an expected call of TopSounds.
func (mr *MockStatsRepositoryMockRecorder) TopSounds(ctx, guildID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TopSounds", reflect.TypeOf((*MockStatsRepository)(nil).TopSounds), ctx, guildID, limit)
}

// MockAdminChecker is a mock of AdminChecker interface.
type MockAdminChecker struct {
	ctrl     *gomock.Controller
	recorder *MockAdminCheckerMockRecorder
	isgomock struct{}
}

// MockAdminCheckerMockRecorder is the mock recorder for MockAdminChecker.
type MockAdminCheckerMockRecorder struct {
	mock *MockAdminChecker
}

// NewMockAdminChecker creates a new mock instance.
func NewMockAdminChecker(ctrl *gomock.Controller) *MockAdminChecker {
	mock := &MockAdminChecker{ctrl: ctrl}
	mock.recorder = &MockAdminCheckerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAdminChecker) EXPECT() *MockAdminCheckerMockRecorder {
	return m.recorder
}

// IsGuildAdmin mocks base method.
func (m *MockAdminChecker) IsGuildAdmin(ctx context.Context, guildID, userID snowflake.ID) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsGuildAdmin", ctx, guildID, userID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsGuildAdmin indicates an expected call of IsGuildAdmin.
func (mr *MockAdminCheckerMockRecorder) IsGuildAdmin(ctx, guildID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsGuildAdmin", reflect.TypeOf((*MockAdminChecker)(nil).IsGuildAdmin), ctx, guildID, userID)
}
