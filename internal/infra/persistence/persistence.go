// Package persistence wires the repositories of the configured database driver.
package persistence

import (
	"log/slog"

	"tiktok/config"
	"tiktok/internal/domain/repository"
	"tiktok/internal/infra/persistence/memory"
	"tiktok/internal/infra/persistence/rdb"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Result exposes the repositories to the rest of the graph
type Result struct {
	fx.Out

	UserRepo  repository.UserRepository
	TxManager repository.TransactionManager
}

// New opens the configured store. The memory driver keeps everything in process.
func New(params Params) (Result, error) {
	if params.Config.Database.Driver == config.DriverMemory {
		params.Logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()

		return Result{
			UserRepo:  memory.NewUserRepository(store),
			TxManager: memory.NewTransactionManager(store),
		}, nil
	}

	db, err := rdb.New(rdb.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		UserRepo:  rdb.NewUserRepository(db),
		TxManager: rdb.NewTransactionManager(db),
	}, nil
}
