package service

import (
	"tiktok/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// MockTokenService_Expecter records typed expectations.
type MockTokenService_Expecter struct {
	mock *mock.Mock
}

// NewMockTokenService registers cleanup that asserts every expectation was met.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

func (_m *MockTokenService) GenerateTokens(userID int64) (*service.TokenPair, error) {
	ret := _m.Called(userID)

	var pair *service.TokenPair
	if v := ret.Get(0); v != nil {
		pair = v.(*service.TokenPair)
	}

	return pair, ret.Error(1)
}

func (_e *MockTokenService_Expecter) GenerateTokens(userID any) *mock.Call {
	return _e.mock.On("GenerateTokens", userID)
}

func (_m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	ret := _m.Called(tokenString)

	var claims *service.Claims
	if v := ret.Get(0); v != nil {
		claims = v.(*service.Claims)
	}

	return claims, ret.Error(1)
}

func (_e *MockTokenService_Expecter) ValidateToken(tokenString any) *mock.Call {
	return _e.mock.On("ValidateToken", tokenString)
}

func (_m *MockTokenService) RefreshAccessToken(refreshToken string) (string, error) {
	ret := _m.Called(refreshToken)

	return ret.String(0), ret.Error(1)
}

func (_e *MockTokenService_Expecter) RefreshAccessToken(refreshToken any) *mock.Call {
	return _e.mock.On("RefreshAccessToken", refreshToken)
}
