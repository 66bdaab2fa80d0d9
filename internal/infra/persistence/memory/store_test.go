package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
	internalerrors "tiktok/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	user := &entity.User{Email: "a@example.com", Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.DateJoined.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byEmail, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	user := &entity.User{Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.IsActive = true

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "a@example.com"}))

	err := repo.Create(ctx, &entity.User{Email: "a@example.com"})
	fieldErrs, ok := internalerrors.AsType[domainerrors.FieldErrors](err)
	require.True(t, ok)
	assert.Equal(t, domainerrors.MsgEmailTaken, fieldErrs["email"])
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	user := &entity.User{Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, user))
	joined := user.DateJoined

	user.IsActive = true
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)
	assert.Equal(t, joined, found.DateJoined)

	assert.ErrorIs(t, repo.Update(ctx, &entity.User{ID: 42}), repository.ErrUserNotFound)
}

func TestUserRepository_ConcurrentCreateKeepsEmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &entity.User{Email: "race@example.com"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.NewUserRepository().Create(ctx, &entity.User{Email: "a@example.com"}))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewUserRepository(store).FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewUserRepository().Create(ctx, &entity.User{Email: "a@example.com"})
	}))

	_, err := NewUserRepository(store).FindByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
}

func TestTransactionManager_RollbackKeepsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	repo := NewUserRepository(store)

	existing := &entity.User{Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, existing))
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.NewUserRepository().Create(ctx, &entity.User{Email: "b@example.com"}))

		activated := *existing
		activated.IsActive = true
		require.NoError(t, repo.Update(ctx, &activated))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)

	_, err = repo.FindByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_RollbackRestoresUpdatedRow(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	repo := NewUserRepository(store)

	user := &entity.User{Email: "a@example.com", Username: "alice"}
	require.NoError(t, repo.Create(ctx, user))
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		changed := *user
		changed.Email = "renamed@example.com"
		changed.Username = "bob"
		require.NoError(t, f.NewUserRepository().Update(ctx, &changed))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindByEmail(ctx, "renamed@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
