package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	guildauth "github.com/dwightbot/dwight-web/internal/domain/guildauth"
	gomock "go.uber.org/mock/gomock"
)

// MockPlatformAPI is a mock of PlatformAPI interface.
type MockPlatformAPI struct {
	ctrl     *gomock.Controller
	recorder *MockPlatformAPIMockRecorder
	isgomock struct{}
}

// MockPlatformAPIMockRecorder is the mock recorder for MockPlatformAPI.
type MockPlatformAPIMockRecorder struct {
	mock *MockPlatformAPI
}

// NewMockPlatformAPI creates a new mock instance.
func NewMockPlatformAPI(ctrl *gomock.Controller) *MockPlatformAPI {
	mock := &MockPlatformAPI{ctrl: ctrl}
	mock.recorder = &MockPlatformAPIMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPlatformAPI) EXPECT() *MockPlatformAPIMockRecorder {
	return m.recorder
}

// GetGuild mocks base method.
func (m *MockPlatformAPI) GetGuild(ctx context.Context, guildID snowflake.ID) (*guildauth.Guild, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetGuild", ctx, guildID)
	ret0, _ := ret[0].(*guildauth.Guild)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetGuild indicates an expected call of GetGuild.
func (mr *MockPlatformAPIMockRecorder) GetGuild(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetGuild", reflect.TypeOf((*MockPlatformAPI)(nil).GetGuild), ctx, guildID)
}

// GetMember mocks base method.
func (m *MockPlatformAPI) GetMember(ctx context.Context, guildID, userID snowflake.ID) (*guildauth.Member, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMember", ctx, guildID, userID)
	ret0, _ := ret[0].(*guildauth.Member)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetMember indicates an expected call of GetMember.
func (mr *MockPlatformAPIMockRecorder) GetMember(ctx, guildID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMember", reflect.TypeOf((*MockPlatformAPI)(nil).GetMember), ctx, guildID, userID)
}
