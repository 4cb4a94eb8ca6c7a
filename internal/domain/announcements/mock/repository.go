package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	announcements "github.com/dwightbot/dwight-web/internal/domain/announcements"
	sounds "github.com/dwightbot/dwight-web/internal/domain/sounds"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *MockRepository) Delete(ctx context.Context, guildID, userID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, guildID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockRepositoryMockRecorder) Delete(ctx, guildID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockRepository)(nil).Delete), ctx, guildID, userID)
}

// List mocks base method.
func (m *MockRepository) List(ctx context.Context, guildID snowflake.ID) ([]*announcements.Announcement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, guildID)
	ret0, _ := ret[0].([]*announcements.Announcement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockRepositoryMockRecorder) List(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockRepository)(nil).List), ctx, guildID)
}

// Upsert mocks base method.
func (m *MockRepository) Upsert(ctx context.Context, announcement *announcements.Announcement) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Upsert", ctx, announcement)
	ret0, _ := ret[0].(error)
	return ret0
}

// Upsert indicates an expected call of Upsert.
func (mr *MockRepositoryMockRecorder) Upsert(ctx, announcement any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Upsert", reflect.TypeOf((*MockRepository)(nil).Upsert), ctx, announcement)
}

// MockSoundFinder is a mock of SoundFinder interface.
type MockSoundFinder struct {
	ctrl     *gomock.Controller
	recorder *MockSoundFinderMockRecorder
	isgomock struct{}
}

// MockSoundFinderMockRecorder is the mock recorder for MockSoundFinder.
type MockSoundFinderMockRecorder struct {
	mock *MockSoundFinder
}

// NewMockSoundFinder creates a new mock instance.
func NewMockSoundFinder(ctrl *gomock.Controller) *MockSoundFinder {
	mock := &MockSoundFinder{ctrl: ctrl}
	mock.recorder = &MockSoundFinderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSoundFinder) EXPECT() *MockSoundFinderMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockSoundFinder) GetByID(ctx context.Context, soundID string) (*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, soundID)
	ret0, _ := ret[0].(*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockSoundFinderMockRecorder) GetByID(ctx, soundID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockSoundFinder)(nil).GetByID), ctx, soundID)
}
