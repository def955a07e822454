// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package store

import (
	"context"
	"fmt"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/models"
)

// queueRepository is the SQLite-backed implementation of [QueueRepository].
// Queue order is the AUTOINCREMENT id, so ListPending always yields items in
// the order they were enqueued.
type queueRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewQueueRepository constructs a [QueueRepository] backed by the local
// SQLite database.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	logger.Debug().Msg("creating queue repository")
	return &queueRepository{
		db:     db,
		logger: logger,
	}
}

// Enqueue appends a mutation to the queue and returns the item with its
// assigned id and a zero retry count.
func (r *queueRepository) Enqueue(ctx context.Context, item models.SyncQueueItem) (models.SyncQueueItem, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, enqueueSyncItem,
		item.Entity, item.EntityID, item.Action, item.Data, item.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*queueRepository.Enqueue").
			Str("entity", string(item.Entity)).Str("action", string(item.Action)).
			Msg("error enqueueing sync item")
		return models.SyncQueueItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "*queueRepository.Enqueue").Msg("error getting inserted id")
		return models.SyncQueueItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	item.ID = id
	item.RetryCount = 0

	return item, nil
}

// ListPending returns all queued mutations in enqueue order.
func (r *queueRepository) ListPending(ctx context.Context) ([]models.SyncQueueItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPendingSyncItems)
	if err != nil {
		log.Err(err).Str("func", "*queueRepository.ListPending").Msg("error querying sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.SyncQueueItem, 0)
	for rows.Next() {
		var item models.SyncQueueItem
		if err = rows.Scan(&item.ID, &item.Entity, &item.EntityID, &item.Action, &item.Data, &item.CreatedAt, &item.RetryCount); err != nil {
			log.Err(err).Str("func", "*queueRepository.ListPending").Msg("error scanning sync item")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// CountPending returns the number of queued mutations.
func (r *queueRepository) CountPending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, countPendingSyncItems)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*queueRepository.CountPending").Msg("error counting sync items")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// Remove deletes a queued mutation by id. Removing an id that is already gone
// is not an error: a concurrent drain may have removed it first.
func (r *queueRepository) Remove(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, removeSyncItem, itemID); err != nil {
		log.Err(err).Str("func", "*queueRepository.Remove").Int64("item_id", itemID).
			Msg("error removing sync item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// IncrementRetry bumps the item's retry counter by one.
func (r *queueRepository) IncrementRetry(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, incrementSyncItemRetry, itemID)
	if err != nil {
		log.Err(err).Str("func", "*queueRepository.IncrementRetry").Int64("item_id", itemID).
			Msg("error incrementing retry count")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*queueRepository.IncrementRetry").Msg("error getting affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// ClearAll wipes the queue. Used on sign-out.
func (r *queueRepository) ClearAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, clearSyncQueue); err != nil {
		log.Err(err).Str("func", "*queueRepository.ClearAll").Msg("error clearing sync queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
