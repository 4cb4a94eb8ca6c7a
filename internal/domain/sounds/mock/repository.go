package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	snowflake "github.com/disgoorg/snowflake/v2"
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

// CountLive mocks base method.
func (m *MockRepository) CountLive(ctx context.Context, guildID snowflake.ID) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountLive", ctx, guildID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountLive indicates an expected call of CountLive.
func (mr *MockRepositoryMockRecorder) CountLive(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountLive", reflect.TypeOf((*MockRepository)(nil).CountLive), ctx, guildID)
}

// Create mocks base method.
func (m *MockRepository) Create(ctx context.Context, sound *sounds.Sound) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, sound)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRepositoryMockRecorder) Create(ctx, sound any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRepository)(nil).Create), ctx, sound)
}

// GetByID mocks base method.
func (m *MockRepository) GetByID(ctx context.Context, soundID string) (*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, soundID)
	ret0, _ := ret[0].(*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockRepositoryMockRecorder) GetByID(ctx, soundID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockRepository)(nil).GetByID), ctx, soundID)
}

// GetLimit mocks base method.
func (m *MockRepository) GetLimit(ctx context.Context, guildID snowflake.ID) (int, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLimit", ctx, guildID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetLimit indicates an expected call of GetLimit.
func (mr *MockRepositoryMockRecorder) GetLimit(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLimit", reflect.TypeOf((*MockRepository)(nil).GetLimit), ctx, guildID)
}

// ListLive mocks base method.
func (m *MockRepository) ListLive(ctx context.Context, guildID snowflake.ID) ([]*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListLive", ctx, guildID)
	ret0, _ := ret[0].([]*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListLive indicates an expected call of ListLive.
func (mr *MockRepositoryMockRecorder) ListLive(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListLive", reflect.TypeOf((*MockRepository)(nil).ListLive), ctx, guildID)
}

// ListVisible mocks base method.
func (m *MockRepository) ListVisible(ctx context.Context, guildID snowflake.ID) ([]*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListVisible", ctx, guildID)
	ret0, _ := ret[0].([]*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListVisible indicates an expected call of ListVisible.
func (mr *MockRepositoryMockRecorder) ListVisible(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListVisible", reflect.TypeOf((*MockRepository)(nil).ListVisible), ctx, guildID)
}

// SoftDelete mocks base method.
func (m *MockRepository) SoftDelete(ctx context.Context, soundID string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDelete", ctx, soundID, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDelete indicates an expected call of SoftDelete.
func (mr *MockRepositoryMockRecorder) SoftDelete(ctx, soundID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDelete", reflect.TypeOf((*MockRepository)(nil).SoftDelete), ctx, soundID, at)
}

// Update mocks base method.
func (m *MockRepository) Update(ctx context.Context, sound *sounds.Sound) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, sound)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockRepositoryMockRecorder) Update(ctx, sound any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockRepository)(nil).Update), ctx, sound)
}

// MockTranscoder is a mock of Transcoder interface.
type MockTranscoder struct {
	ctrl     *gomock.Controller
	recorder *MockTranscoderMockRecorder
	isgomock struct{}
}

// MockTranscoderMockRecorder is the mock recorder for MockTranscoder.
type MockTranscoderMockRecorder struct {
	mock *MockTranscoder
}

// NewMockTranscoder creates a new mock instance.
func NewMockTranscoder(ctrl *gomock.Controller) *MockTranscoder {
	mock := &MockTranscoder{ctrl: ctrl}
	mock.recorder = &MockTranscoderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTranscoder) EXPECT() *MockTranscoderMockRecorder {
	return m.recorder
}

// Transcode mocks base method.
func (m *MockTranscoder) Transcode(ctx context.Context, soundID string, data []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transcode", ctx, soundID, data)
	ret0, _ := ret[0].(error)
	return ret0
}

// Transcode indicates an expected call of Transcode.
func (mr *MockTranscoderMockRecorder) Transcode(ctx, soundID, data any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transcode", reflect.TypeOf((*MockTranscoder)(nil).Transcode), ctx, soundID, data)
}
