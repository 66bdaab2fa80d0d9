package rdb

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"tiktok/config"
	deliverycontext "tiktok/internal/delivery/context"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunDB builds statements without a server so the SQL can be inspected through the logger.
func newDryRunDB(t *testing.T, sqlLog logger.Interface) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:pw@tcp(127.0.0.1:3306)/tiktok?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: sqlLog})
	require.NoError(t, err)

	return db
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &entry))
		entries = append(entries, entry)
	}

	return entries
}

func TestSQLLogger_UsesRequestLogger(t *testing.T) {
	var base, request bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true

	db := newDryRunDB(t, newSQLLogger(slog.New(slog.NewJSONHandler(&base, nil)), cfg))
	reqLogger := slog.New(slog.NewJSONHandler(&request, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithRequestScope(context.Background(), "req-42", reqLogger)

	_, err := NewUserRepository(db).FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)

	assert.Empty(t, base.String())
	entries := decodeLines(t, &request)
	require.Len(t, entries, 1)
	assert.Equal(t, "SQL", entries[0]["msg"])
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.Contains(t, entries[0]["sql"], "`users`.`email` = 'a@example.com'")
}

func TestSQLLogger_FallsBackOutsideRequests(t *testing.T) {
	var base bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true

	db := newDryRunDB(t, newSQLLogger(slog.New(slog.NewJSONHandler(&base, nil)), cfg))

	_, err := NewUserRepository(db).FindByID(context.Background(), 7)
	require.NoError(t, err)

	entries := decodeLines(t, &base)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "request_id")
	assert.Contains(t, entries[0]["sql"], "`users`.`id` = 7")
}

func TestSQLLogger_HidesParamsOutsideDebug(t *testing.T) {
	var base bytes.Buffer
	sqlLog := newSQLLogger(slog.New(slog.NewJSONHandler(&base, nil)), &config.Config{}).LogMode(logger.Info)
	db := newDryRunDB(t, sqlLog)

	err := NewUserRepository(db).Update(context.Background(), &entity.User{
		ID:           3,
		Email:        "a@example.com",
		PasswordHash: "$2a$10$secrethash",
	})
	// Dry runs affect no rows.
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	entries := decodeLines(t, &base)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0]["sql"], "UPDATE `users` SET")
	assert.NotContains(t, entries[0]["sql"], "secrethash")
	assert.NotContains(t, entries[0]["sql"], "a@example.com")
}

func TestSQLLogger_WarnLevelSkipsRoutineQueries(t *testing.T) {
	var base bytes.Buffer
	db := newDryRunDB(t, newSQLLogger(slog.New(slog.NewJSONHandler(&base, nil)), nil))

	_, err := NewUserRepository(db).FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, base.String())
}
