// Package memory implements the persistence layer in process memory.
// It backs the memory database driver used for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
)

// Store holds every user record. Email uniqueness is enforced case-sensitively,
// as the SQL unique index does.
type Store struct {
	mu      sync.RWMutex
	users   map[int64]entity.User
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time

	// txMu serializes transactions. Writes outside a transaction do not take it.
	txMu sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]entity.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

type userRepository struct {
	store *Store
	// journal is set inside a transaction and records how to undo each write.
	journal *journal
}

// NewUserRepository returns a UserRepository backed by the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	id, ok := repo.store.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user := repo.store.users[id]

	return &user, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, taken := repo.store.byEmail[user.Email]; taken {
		return domainerrors.NewFieldError("email", domainerrors.MsgEmailTaken)
	}

	repo.store.nextID++
	now := repo.store.now().UTC()

	user.ID = repo.store.nextID
	user.DateJoined = now
	user.UpdatedAt = now

	repo.store.users[user.ID] = *user
	repo.store.byEmail[user.Email] = user.ID
	repo.journal.record(undoEntry{id: user.ID, written: *user})

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	existing, ok := repo.store.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if existing.Email != user.Email {
		if _, taken := repo.store.byEmail[user.Email]; taken {
			return domainerrors.NewFieldError("email", domainerrors.MsgEmailTaken)
		}
		delete(repo.store.byEmail, existing.Email)
		repo.store.byEmail[user.Email] = user.ID
	}

	user.DateJoined = existing.DateJoined
	user.UpdatedAt = repo.store.now().UTC()
	repo.store.users[user.ID] = *user
	repo.journal.record(undoEntry{id: user.ID, prior: &existing, written: *user})

	return nil
}

// undoEntry reverts one write. A nil prior means the row was created.
type undoEntry struct {
	id      int64
	prior   *entity.User
	written entity.User
}

type journal struct {
	entries []undoEntry
}

func (j *journal) record(entry undoEntry) {
	if j == nil {
		return
	}
	j.entries = append(j.entries, entry)
}

// rollback reverts the recorded writes newest first. A row changed since the
// transaction wrote it is left alone so writes from outside survive.
func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(j.entries) - 1; i >= 0; i-- {
		entry := j.entries[i]
		current, ok := s.users[entry.id]
		if !ok || current != entry.written {
			continue
		}

		delete(s.byEmail, current.Email)
		if entry.prior == nil {
			delete(s.users, entry.id)

			continue
		}
		s.users[entry.id] = *entry.prior
		s.byEmail[entry.prior.Email] = entry.id
	}
}
