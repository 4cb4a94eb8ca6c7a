package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	domain "github.com/dwightbot/dwight-web/internal/domain"
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

// ApplyChanges mocks base method.
func (m *MockService) ApplyChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyChanges", ctx, identity, guildID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ApplyChanges indicates an expected call of ApplyChanges.
func (mr *MockServiceMockRecorder) ApplyChanges(ctx, identity, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyChanges", reflect.TypeOf((*MockService)(nil).ApplyChanges), ctx, identity, guildID)
}

// HasPendingChanges mocks base method.
func (m *MockService) HasPendingChanges(ctx context.Context, identity domain.Identity, guildID snowflake.ID) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasPendingChanges", ctx, identity, guildID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HasPendingChanges indicates an expected call of HasPendingChanges.
func (mr *MockServiceMockRecorder) HasPendingChanges(ctx, identity, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasPendingChanges", reflect.TypeOf((*MockService)(nil).HasPendingChanges), ctx, identity, guildID)
}
