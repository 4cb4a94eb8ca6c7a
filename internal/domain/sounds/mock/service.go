package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	domain "github.com/dwightbot/dwight-web/internal/domain"
	sounds "github.com/dwightbot/dwight-web/internal/domain/sounds"
	gomock "go.uber.org/mock/gomock"
)

// MockService is a mock of Service interface.
type MockService struct {
	ctrl     *gomock.Controller
	recorder *MockServiceMockRecorder
	isgomock struct{}
}

// MockServiceMockRecorder is the mock recorder for MockService.
type MockServiceMockRecorder struct {
	mock *MockService
}

// NewMockService creates a new mock instance.
func NewMockService(ctrl *gomock.Controller) *MockService {
	mock := &MockService{ctrl: ctrl}
	mock.recorder = &MockServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockService) EXPECT() *MockServiceMockRecorder {
	return m.recorder
}

// CreateSound mocks base method.
func (m *MockService) CreateSound(ctx context.Context, identity domain.Identity, params sounds.CreateParams) (*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateSound", ctx, identity, params)
	ret0, _ := ret[0].(*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateSound indicates an expected call of CreateSound.
func (mr *MockServiceMockRecorder) CreateSound(ctx, identity, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateSound", reflect.TypeOf((*MockService)(nil).CreateSound), ctx, identity, params)
}

// DeleteSound mocks base method.
func (m *MockService) DeleteSound(ctx context.Context, identity domain.Identity, soundID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteSound", ctx, identity, soundID)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteSound indicates an expected call of DeleteSound.
func (mr *MockServiceMockRecorder) DeleteSound(ctx, identity, soundID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteSound", reflect.TypeOf((*MockService)(nil).DeleteSound), ctx, identity, soundID)
}

// GetQuota mocks base method.
func (m *MockService) GetQuota(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (*sounds.Quota, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetQuota", ctx, identity, guildID)
	ret0, _ := ret[0].(*sounds.Quota)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetQuota indicates an expected call of GetQuota.
func (mr *MockServiceMockRecorder) GetQuota(ctx, identity, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetQuota", reflect.TypeOf((*MockService)(nil).GetQuota), ctx, identity, guildID)
}

// ListSounds mocks base method.
func (m *MockService) ListSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID, query string) ([]*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListSounds", ctx, identity, guildID, query)
	ret0, _ := ret[0].([]*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListSounds indicates an expected call of ListSounds.
func (mr *MockServiceMockRecorder) ListSounds(ctx, identity, guildID, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListSounds", reflect.TypeOf((*MockService)(nil).ListSounds), ctx, identity, guildID, query)
}

// ListVisibleSounds mocks base method.
func (m *MockService) ListVisibleSounds(ctx context.Context, identity domain.Identity, guildID snowflake.ID) ([]*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListVisibleSounds", ctx, identity, guildID)
	ret0, _ := ret[0].([]*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListVisibleSounds indicates an expected call of ListVisibleSounds.
func (mr *MockServiceMockRecorder) ListVisibleSounds(ctx, identity, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListVisibleSounds", reflect.TypeOf((*MockService)(nil).ListVisibleSounds), ctx, identity, guildID)
}

// UpdateSound mocks base method.
func (m *MockService) UpdateSound(ctx context.Context, identity domain.Identity, soundID string, params sounds.UpdateParams) (*sounds.Sound, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateSound", ctx, identity, soundID, params)
	ret0, _ := ret[0].(*sounds.Sound)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateSound indicates an expected call of UpdateSound.
func (mr *MockServiceMockRecorder) UpdateSound(ctx, identity, soundID, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateSound", reflect.TypeOf((*MockService)(nil).UpdateSound), ctx, identity, soundID, params)
}
