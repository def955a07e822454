package store

import (
	"context"
	"fmt"

	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	UserRepository   UserRepository
	EntityRepository EntityRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// the server repositories to the shared connection.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, logger),
		EntityRepository: NewEntityRepository(db, logger),
	}, nil
}
