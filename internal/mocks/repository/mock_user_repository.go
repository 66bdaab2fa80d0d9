package repository

import (
	"context"

	"tiktok/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// MockUserRepository_Expecter records typed expectations.
type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockUserRepository registers cleanup that asserts every expectation was met.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	ret := _m.Called(ctx, id)

	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) FindByID(ctx, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ret := _m.Called(ctx, email)

	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) FindByEmail(ctx, email any) *mock.Call {
	return _e.mock.On("FindByEmail", ctx, email)
}

func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_e *MockUserRepository_Expecter) Create(ctx, user any) *mock.Call {
	return _e.mock.On("Create", ctx, user)
}

func (_m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_e *MockUserRepository_Expecter) Update(ctx, user any) *mock.Call {
	return _e.mock.On("Update", ctx, user)
}

func userOrNil(v any) *entity.User {
	if v == nil {
		return nil
	}

	return v.(*entity.User)
}
