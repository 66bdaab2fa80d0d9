package repository

import (
	"context"

	"tiktok/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a testify mock for repository.TransactionManager.
// When the expectation returns no error, fn runs against Factory.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

// MockTransactionManager_Expecter records typed expectations.
type MockTransactionManager_Expecter struct {
	mock *mock.Mock
}

// NewMockTransactionManager registers cleanup that asserts every expectation was met.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}, factory repository.RepositoryFactory) *MockTransactionManager {
	m := &MockTransactionManager{Factory: factory}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockTransactionManager) EXPECT() *MockTransactionManager_Expecter {
	return &MockTransactionManager_Expecter{mock: &_m.Mock}
}

func (_m *MockTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := _m.Called(ctx).Error(0); err != nil {
		return err
	}

	return fn(_m.Factory)
}

func (_e *MockTransactionManager_Expecter) Execute(ctx any) *mock.Call {
	return _e.mock.On("Execute", ctx)
}

// StaticFactory hands out one fixed user repository.
type StaticFactory struct {
	UserRepo repository.UserRepository
}

func (f *StaticFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}
