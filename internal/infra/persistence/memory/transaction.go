package memory

import (
	"context"

	"tiktok/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	store   *Store
	journal *journal
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store, journal: f.journal}
}

// NewTransactionManager returns a TransactionManager that reverts the writes made
// through its repositories when fn fails. Reads are not isolated.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	j := &journal{}
	defer func() {
		if r := recover(); r != nil {
			tm.store.rollback(j)
			panic(r)
		}
		if err != nil {
			tm.store.rollback(j)
		}
	}()

	return fn(&repositoryFactory{store: tm.store, journal: j})
}
