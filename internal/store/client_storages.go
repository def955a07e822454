package store

import (
	"context"
	"fmt"

	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/logger"
)

// ClientStorages groups all agent-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Cache is the SQLite-backed repository of entity record snapshots.
	Cache CacheRepository
	// Queue is the durable buffer of offline mutations awaiting push.
	Queue QueueRepository
	// Metadata persists sync timestamps between runs.
	Metadata MetadataRepository
}

// NewClientStorages initialises the agent storage layer: it opens the SQLite
// cache file (creating it if absent), applies pending schema migrations, and
// wires the repositories to the shared connection.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Cache:    NewCacheRepository(db, logger),
		Queue:    NewQueueRepository(db, logger),
		Metadata: NewMetadataRepository(db, logger),
	}, nil
}
