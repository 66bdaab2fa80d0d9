package service

import (
	"context"

	"tiktok/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a testify mock for service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// MockEventPublisher_Expecter records typed expectations.
type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

// NewMockEventPublisher registers cleanup that asserts every expectation was met.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

func (_m *MockEventPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	return _m.Called(ctx, event).Error(0)
}

func (_e *MockEventPublisher_Expecter) PublishAccountEvent(ctx, event any) *mock.Call {
	return _e.mock.On("PublishAccountEvent", ctx, event)
}

func (_m *MockEventPublisher) Close() error {
	return _m.Called().Error(0)
}

func (_e *MockEventPublisher_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}
