package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skids-health/skids-sync/internal/logger"
)

// metadataRepository is the SQLite-backed implementation of
// [MetadataRepository]. Values are opaque strings; time values are persisted
// as RFC 3339 by the service layer.
type metadataRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMetadataRepository constructs a [MetadataRepository] backed by the local
// SQLite database.
func NewMetadataRepository(db *DB, logger *logger.Logger) MetadataRepository {
	logger.Debug().Msg("creating metadata repository")
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the value stored under key or [ErrMetadataNotFound].
func (r *metadataRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	row := r.db.QueryRowContext(ctx, getSyncMetadataValue, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMetadataNotFound
		}
		log.Err(err).Str("func", "*metadataRepository.Get").Str("key", key).
			Msg("error scanning metadata value")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// Set writes the value under key, replacing any previous value.
func (r *metadataRepository) Set(ctx context.Context, key string, value string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setSyncMetadataValue, key, value); err != nil {
		log.Err(err).Str("func", "*metadataRepository.Set").Str("key", key).
			Msg("error setting metadata value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearAll wipes all metadata. Used on sign-out.
func (r *metadataRepository) ClearAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, clearSyncMetadata); err != nil {
		log.Err(err).Str("func", "*metadataRepository.ClearAll").Msg("error clearing sync metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
