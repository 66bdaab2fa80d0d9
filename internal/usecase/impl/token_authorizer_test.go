package impl

import (
	"context"
	"testing"

	"tiktok/config"
	domainerrors "tiktok/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuthorizer_Authorize(t *testing.T) {
	fx := newAccountFixture(t)
	user := fx.register(t, "rita@example.com", "password1")

	pair, err := fx.tokens.GenerateTokens(user.ID)
	require.NoError(t, err)

	principal, err := fx.authz.Authorize(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
}

func TestTokenAuthorizer_Rejects(t *testing.T) {
	fx := newAccountFixture(t)
	user := fx.register(t, "sam@example.com", "password1")

	pair, err := fx.tokens.GenerateTokens(user.ID)
	require.NoError(t, err)
	verification, err := fx.codec.Issue(user)
	require.NoError(t, err)
	orphan, err := fx.tokens.GenerateTokens(user.ID + 100)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: domainerrors.ErrNotAuthenticated},
		{name: "refresh token", token: pair.RefreshToken, want: domainerrors.ErrTokenNotValid},
		{name: "verification token", token: verification, want: domainerrors.ErrTokenNotValid},
		{name: "unknown user", token: orphan.AccessToken, want: domainerrors.ErrTokenUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := fx.authz.Authorize(context.Background(), tt.token)

			assert.Nil(t, principal)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTokenAuthorizer_RequireActive(t *testing.T) {
	fx := newAccountFixture(t, func(cfg *config.Config) {
		cfg.Auth.RequireActiveLogin = true
	})
	user := fx.register(t, "tina@example.com", "password1")

	pair, err := fx.tokens.GenerateTokens(user.ID)
	require.NoError(t, err)

	_, err = fx.authz.Authorize(context.Background(), pair.AccessToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUserInactive))

	fx.activate(t, user)

	_, err = fx.authz.Authorize(context.Background(), pair.AccessToken)
	assert.NoError(t, err)
}
