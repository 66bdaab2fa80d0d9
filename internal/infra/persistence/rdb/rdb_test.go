package rdb

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"tiktok/config"
	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	internalerrors "tiktok/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(&config.MySQLConfig{Host: "db", Port: "3306", Name: "tiktok", User: "root", Password: "pw"})

	prefix, rawQuery, found := strings.Cut(dsn, "?")
	require.True(t, found)
	assert.Equal(t, "root:pw@tcp(db:3306)/tiktok", prefix)

	query, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "true", query.Get("parseTime"))
	assert.Equal(t, "utf8mb4", query.Get("charset"))
	assert.Equal(t, "'STRICT_TRANS_TABLES'", query.Get("sql_mode"))
}

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey},
		{"postgres message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)},
		{"mysql message", errors.New("Error 1062 (23000): Duplicate entry 'a@example.com' for key 'users.idx_users_email'")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateWriteError(tt.err, "failed to create user")

			fieldErrs, ok := internalerrors.AsType[domainerrors.FieldErrors](err)
			require.True(t, ok)
			assert.Equal(t, domainerrors.MsgEmailTaken, fieldErrs["email"])
		})
	}

	err := translateWriteError(errors.New("connection reset"), "failed to create user")
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestUserMapping(t *testing.T) {
	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &entity.User{
		ID:           3,
		Email:        "a@example.com",
		Username:     "alice",
		Phone:        "0912",
		FirstName:    "Alice",
		LastName:     "Liddell",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
		DateJoined:   joined,
		UpdatedAt:    joined,
	}

	assert.Equal(t, user, toUserDomain(fromUserDomain(user)))
}
