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

// entityRepository is the PostgreSQL-backed implementation of
// [EntityRepository]. Records are scoped to the owning user; deletes are soft
// so a later pull can observe the tombstone.
type entityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEntityRepository constructs an [EntityRepository] backed by the provided
// database connection and logger.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	logger.Debug().Msg("creating entity repository")
	return &entityRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertRecord inserts the record or replaces the payload of an existing one,
// reviving a soft-deleted row. The server-assigned updated_at is returned.
func (r *entityRepository) UpsertRecord(ctx context.Context, userID int64, entity models.Entity, record models.EntityRecord) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertEntityRecord, userID, entity, record.ID, record.Payload)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*entityRepository.UpsertRecord").
			Int64("user_id", userID).Str("entity", string(entity)).
			Msg("error upserting entity record")
		return models.EntityRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanEntityRecord(row.Scan)
	if err != nil {
		log.Err(err).Str("func", "*entityRepository.UpsertRecord").Msg("error: scanning error")
		return models.EntityRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// GetRecord returns one live record or [ErrRecordNotFound] when it does not
// exist or has been soft-deleted.
func (r *entityRepository) GetRecord(ctx context.Context, userID int64, entity models.Entity, recordID string) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getEntityRecord, userID, entity, recordID)

	record, err := scanEntityRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityRecord{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*entityRepository.GetRecord").
			Int64("user_id", userID).Str("entity", string(entity)).Str("record_id", recordID).
			Msg("error scanning entity record")
		return models.EntityRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// ListRecords returns the user's live records of one entity, newest first.
func (r *entityRepository) ListRecords(ctx context.Context, userID int64, entity models.Entity) ([]models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(userID, entity)
	if err != nil {
		log.Err(err).Str("func", "*entityRepository.ListRecords").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*entityRepository.ListRecords").
			Int64("user_id", userID).Str("entity", string(entity)).
			Msg("error querying entity records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.EntityRecord, 0)
	for rows.Next() {
		record, err := scanEntityRecord(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "*entityRepository.ListRecords").Msg("error scanning entity record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// MarkDeleted soft-deletes a record. Returns [ErrRecordNotFound] when the
// record does not belong to the user.
func (r *entityRepository) MarkDeleted(ctx context.Context, userID int64, entity models.Entity, recordID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markEntityRecordDeleted, userID, entity, recordID)
	if err != nil {
		log.Err(err).Str("func", "*entityRepository.MarkDeleted").
			Int64("user_id", userID).Str("entity", string(entity)).Str("record_id", recordID).
			Msg("error marking entity record deleted")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*entityRepository.MarkDeleted").Msg("error getting affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func scanEntityRecord(scan func(dest ...any) error) (models.EntityRecord, error) {
	var record models.EntityRecord
	var updatedAt time.Time

	if err := scan(&record.ID, &record.Payload, &updatedAt); err != nil {
		return models.EntityRecord{}, err
	}
	record.UpdatedAt = &updatedAt

	return record, nil
}
