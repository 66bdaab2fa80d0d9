package rdb

import (
	"context"
	"time"

	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
	"tiktok/internal/infra/persistence/model"
	"tiktok/internal/infra/persistence/rdb/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	q *query.Query
}

// NewUserRepository is the constructor for userRepository.
// It initializes the repository with the GORM Gen query builder.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{q: query.Use(db)}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u := repo.q.UserModel

	userM, err := u.WithContext(ctx).Where(u.ID.Eq(id)).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := repo.q.UserModel

	userM, err := u.WithContext(ctx).Where(u.Email.Eq(email)).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(userM), nil
}

// Create persists a new user and copies the generated ID and timestamps back.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.q.UserModel.WithContext(ctx).Create(userM); err != nil {
		return translateWriteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.DateJoined = userM.DateJoined
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update writes every mutable column of an existing user. id and date_joined never change.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	u := repo.q.UserModel
	now := time.Now()

	info, err := u.WithContext(ctx).Where(u.ID.Eq(user.ID)).UpdateSimple(
		u.Email.Value(user.Email),
		u.Username.Value(user.Username),
		u.Phone.Value(user.Phone),
		u.FirstName.Value(user.FirstName),
		u.LastName.Value(user.LastName),
		u.Password.Value(user.PasswordHash),
		u.IsActive.Value(user.IsActive),
		u.UpdatedAt.Value(now),
	)
	if err != nil {
		return translateWriteError(err, "failed to update user")
	}
	if info.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = now

	return nil
}

func translateWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.NewFieldError("email", domainerrors.MsgEmailTaken)
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.NewDatabaseExecuteError(err, details+": constraint violated")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:           userM.ID,
		Email:        userM.Email,
		Username:     userM.Username,
		Phone:        userM.Phone,
		FirstName:    userM.FirstName,
		LastName:     userM.LastName,
		PasswordHash: userM.Password,
		IsActive:     userM.IsActive,
		DateJoined:   userM.DateJoined,
		UpdatedAt:    userM.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Phone:      user.Phone,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Password:   user.PasswordHash,
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
		UpdatedAt:  user.UpdatedAt,
	}
}
