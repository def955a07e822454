// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/models"
)

// cacheRepository is the SQLite-backed implementation of [CacheRepository].
// All writes go through the cached_records upsert so a repeated save simply
// refreshes the snapshot in place.
type cacheRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCacheRepository constructs a [CacheRepository] backed by the local
// SQLite database.
func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	logger.Debug().Msg("creating cache repository")
	return &cacheRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRecord inserts the snapshot or replaces an existing one with the same
// entity and record id.
func (r *cacheRepository) SaveRecord(ctx context.Context, record models.CachedRecord) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, upsertCachedRecord,
		record.Entity, record.RecordID, record.Payload, record.CachedAt, record.SyncedAt)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.SaveRecord").
			Str("entity", string(record.Entity)).Str("record_id", record.RecordID).
			Msg("error saving cached record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.SaveRecord").Msg("error getting affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotSaved
	}

	return nil
}

// GetRecord returns a single cached snapshot or [ErrRecordNotFound].
func (r *cacheRepository) GetRecord(ctx context.Context, entity models.Entity, recordID string) (models.CachedRecord, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getCachedRecord, entity, recordID)

	record, err := scanCachedRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CachedRecord{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*cacheRepository.GetRecord").
			Str("entity", string(entity)).Str("record_id", recordID).
			Msg("error scanning cached record")
		return models.CachedRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// GetAllRecords returns every cached snapshot of one entity, ordered by
// record id. An empty cache yields an empty slice, not an error.
func (r *cacheRepository) GetAllRecords(ctx context.Context, entity models.Entity) ([]models.CachedRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllCachedRecords, entity)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.GetAllRecords").
			Str("entity", string(entity)).Msg("error querying cached records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectCachedRecords(rows)
}

// GetRecordsByField returns cached snapshots of one entity whose JSON payload
// has field equal to value.
func (r *cacheRepository) GetRecordsByField(ctx context.Context, entity models.Entity, field string, value any) ([]models.CachedRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordsByFieldQuery(entity, field, value)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.GetRecordsByField").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.GetRecordsByField").
			Str("entity", string(entity)).Str("field", field).
			Msg("error querying cached records by field")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectCachedRecords(rows)
}

// GetStaleRecords returns snapshots whose last confirmed sync is older than
// olderThan. Records never confirmed by the server are always included.
func (r *cacheRepository) GetStaleRecords(ctx context.Context, olderThan time.Time) ([]models.CachedRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getStaleCachedRecords, olderThan)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.GetStaleRecords").Msg("error querying stale records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectCachedRecords(rows)
}

// CountRecords returns the number of cached snapshots across all entities.
func (r *cacheRepository) CountRecords(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, countCachedRecords)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*cacheRepository.CountRecords").Msg("error counting cached records")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// MarkRecordSynced stamps the record's confirmed synchronization time.
func (r *cacheRepository) MarkRecordSynced(ctx context.Context, entity models.Entity, recordID string, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markCachedRecordSynced, syncedAt, entity, recordID)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.MarkRecordSynced").
			Str("entity", string(entity)).Str("record_id", recordID).
			Msg("error marking record synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.MarkRecordSynced").Msg("error getting affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteRecord removes a snapshot from the cache. Deleting a record that is
// not cached is not an error.
func (r *cacheRepository) DeleteRecord(ctx context.Context, entity models.Entity, recordID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteCachedRecord, entity, recordID); err != nil {
		log.Err(err).Str("func", "*cacheRepository.DeleteRecord").
			Str("entity", string(entity)).Str("record_id", recordID).
			Msg("error deleting cached record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearAll wipes the whole cache. Used on sign-out.
func (r *cacheRepository) ClearAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, clearCachedRecords); err != nil {
		log.Err(err).Str("func", "*cacheRepository.ClearAll").Msg("error clearing cached records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// scanCachedRecord scans one row into a [models.CachedRecord], converting the
// nullable synced_at column.
func scanCachedRecord(scan func(dest ...any) error) (models.CachedRecord, error) {
	var record models.CachedRecord
	var syncedAt sql.NullTime

	if err := scan(&record.Entity, &record.RecordID, &record.Payload, &record.CachedAt, &syncedAt); err != nil {
		return models.CachedRecord{}, err
	}
	if syncedAt.Valid {
		record.SyncedAt = &syncedAt.Time
	}

	return record, nil
}

func collectCachedRecords(rows *sql.Rows) ([]models.CachedRecord, error) {
	records := make([]models.CachedRecord, 0)
	for rows.Next() {
		record, err := scanCachedRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
