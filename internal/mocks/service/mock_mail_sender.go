package service

import (
	"context"

	"tiktok/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockMailSender is a testify mock for service.MailSender.
type MockMailSender struct {
	mock.Mock
}

// MockMailSender_Expecter records typed expectations.
type MockMailSender_Expecter struct {
	mock *mock.Mock
}

// NewMockMailSender registers cleanup that asserts every expectation was met.
func NewMockMailSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMailSender {
	m := &MockMailSender{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockMailSender) EXPECT() *MockMailSender_Expecter {
	return &MockMailSender_Expecter{mock: &_m.Mock}
}

func (_m *MockMailSender) Send(ctx context.Context, msg *service.MailMessage) error {
	return _m.Called(ctx, msg).Error(0)
}

func (_e *MockMailSender_Expecter) Send(ctx, msg any) *mock.Call {
	return _e.mock.On("Send", ctx, msg)
}
