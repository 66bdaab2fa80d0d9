package main

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"tiktok/config"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/repository"
	"tiktok/internal/infra/auth"
	"tiktok/internal/infra/mail"
	"tiktok/internal/infra/persistence/memory"
	"tiktok/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunParams(t *testing.T) (runParams, *mail.MemorySender) {
	t.Helper()

	cfg := &config.Config{
		SecretKey: "test_secret_key_very_long_for_testing",
		Database:  &config.DatabaseConfig{Driver: config.DriverMemory},
		Token:     &config.TokenConfig{VerificationLifetime: time.Hour},
		Email: &config.EmailConfig{
			DefaultFrom:     "webmaster@localhost",
			VerificationURL: "http://localhost:8000/api/v1/auth/verify-email/",
		},
	}
	codec, err := auth.NewVerificationCodec(cfg)
	require.NoError(t, err)
	sender := mail.NewMemorySender()

	return runParams{
		Config:   cfg,
		UserRepo: memory.NewUserRepository(memory.NewStore()),
		Codec:    codec,
		Sender:   sender,
	}, sender
}

func TestRun_SendsVerificationMail(t *testing.T) {
	params, sender := newRunParams(t)
	ctx := context.Background()

	user := &entity.User{Email: "bob@example.com"}
	require.NoError(t, params.UserRepo.Create(ctx, user))

	require.NoError(t, run(ctx, params, user.ID, true))

	messages := sender.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, usecase.VerificationSubject, messages[0].Subject)
	assert.Equal(t, []string{"bob@example.com"}, messages[0].To)

	_, rawLink, found := strings.Cut(messages[0].Body, ": ")
	require.True(t, found)
	link, err := url.Parse(rawLink)
	require.NoError(t, err)

	userID, err := params.Codec.Decode(link.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRun_PrintOnlyDoesNotMail(t *testing.T) {
	params, sender := newRunParams(t)
	ctx := context.Background()

	user := &entity.User{Email: "amy@example.com"}
	require.NoError(t, params.UserRepo.Create(ctx, user))

	require.NoError(t, run(ctx, params, user.ID, false))
	assert.Empty(t, sender.Messages())
}

func TestRun_MemoryDriverExplainsMissingUser(t *testing.T) {
	params, _ := newRunParams(t)

	err := run(context.Background(), params, 42, true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	assert.Contains(t, err.Error(), "database.driver is memory")
}
