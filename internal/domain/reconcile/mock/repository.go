package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	snowflake "github.com/disgoorg/snowflake/v2"
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

// AdvanceWatermark mocks base method.
func (m *MockRepository) AdvanceWatermark(ctx context.Context, guildID snowflake.ID, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AdvanceWatermark", ctx, guildID, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// AdvanceWatermark indicates an expected call of AdvanceWatermark.
func (mr *MockRepositoryMockRecorder) AdvanceWatermark(ctx, guildID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AdvanceWatermark", reflect.TypeOf((*MockRepository)(nil).AdvanceWatermark), ctx, guildID, at)
}

// LastVisibleModification mocks base method.
func (m *MockRepository) LastVisibleModification(ctx context.Context, guildID snowflake.ID) (time.Time, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LastVisibleModification", ctx, guildID)
	ret0, _ := ret[0].(time.Time)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// LastVisibleModification indicates an expected call of LastVisibleModification.
func (mr *MockRepositoryMockRecorder) LastVisibleModification(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LastVisibleModification", reflect.TypeOf((*MockRepository)(nil).LastVisibleModification), ctx, guildID)
}

// Watermark mocks base method.
func (m *MockRepository) Watermark(ctx context.Context, guildID snowflake.ID) (time.Time, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Watermark", ctx, guildID)
	ret0, _ := ret[0].(time.Time)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Watermark indicates an expected call of Watermark.
func (mr *MockRepositoryMockRecorder) Watermark(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Watermark", reflect.TypeOf((*MockRepository)(nil).Watermark), ctx, guildID)
}

// MockNotifier is a mock of Notifier interface.
type MockNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierMockRecorder
	isgomock struct{}
}

// MockNotifierMockRecorder is the mock recorder for MockNotifier.
type MockNotifierMockRecorder struct {
	mock *MockNotifier
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier(ctrl *gomock.Controller) *MockNotifier {
	mock := &MockNotifier{ctrl: ctrl}
	mock.recorder = &MockNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifier) EXPECT() *MockNotifierMockRecorder {
	return m.recorder
}

// TriggerRebuild mocks base method.
func (m *MockNotifier) TriggerRebuild(ctx context.Context, guildID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TriggerRebuild", ctx, guildID)
	ret0, _ := ret[0].(error)
	return ret0
}

// TriggerRebuild indicates an expected call of TriggerRebuild.
func (mr *MockNotifierMockRecorder) TriggerRebuild(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TriggerRebuild", reflect.TypeOf((*MockNotifier)(nil).TriggerRebuild), ctx, guildID)
}
