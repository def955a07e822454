// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skids-health/skids-sync/internal/crypto"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/internal/validators"
	"github.com/skids-health/skids-sync/models"
)

// cacheService implements [CacheService] on top of the SQLite repositories.
// Message payloads are sealed at rest when a cipher is configured; all other
// entities are cached as plain JSON.
type cacheService struct {
	cache     store.CacheRepository
	queue     store.QueueRepository
	metadata  store.MetadataRepository
	monitor   ConnectivityMonitor
	cipher    crypto.PayloadCipher
	validator validators.Validator
	logger    *logger.Logger
}

// NewCacheService constructs a [CacheService]. monitor may be nil, in which
// case every save is treated as made while online; cipher may be nil, in
// which case message payloads are cached in plaintext.
func NewCacheService(storages *store.ClientStorages, monitor ConnectivityMonitor, cipher crypto.PayloadCipher, log *logger.Logger) CacheService {
	return &cacheService{
		cache:     storages.Cache,
		queue:     storages.Queue,
		metadata:  storages.Metadata,
		monitor:   monitor,
		cipher:    cipher,
		validator: validators.NewMutationValidator(),
		logger:    log,
	}
}

func (s *cacheService) SaveRecord(ctx context.Context, entity models.Entity, recordID string, payload json.RawMessage) (models.CachedRecord, error) {
	log := logger.FromContext(ctx)

	// connectivity snapshotted once; a flip mid-write keeps this outcome
	online := s.monitor == nil || s.monitor.IsOnline()
	now := time.Now()

	record := models.CachedRecord{
		Entity:   entity,
		RecordID: recordID,
		Payload:  payload,
		CachedAt: now,
	}
	if online {
		record.SyncedAt = &now
	}

	if err := s.validator.Validate(ctx, record); err != nil {
		log.Err(err).Str("func", "*cacheService.SaveRecord").
			Str("entity", string(entity)).Str("record_id", recordID).
			Msg("record rejected by validation")
		return models.CachedRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sealed, err := s.sealPayload(entity, payload)
	if err != nil {
		return models.CachedRecord{}, fmt.Errorf("seal payload: %w", err)
	}
	stored := record
	stored.Payload = sealed

	if err = s.cache.SaveRecord(ctx, stored); err != nil {
		return models.CachedRecord{}, fmt.Errorf("save record: %w", err)
	}

	return record, nil
}

func (s *cacheService) SaveServerRecords(ctx context.Context, entity models.Entity, records []models.EntityRecord, syncedAt time.Time) error {
	for _, rec := range records {
		sealed, err := s.sealPayload(entity, rec.Payload)
		if err != nil {
			return fmt.Errorf("seal payload for %s/%s: %w", entity, rec.ID, err)
		}

		cached := models.CachedRecord{
			Entity:   entity,
			RecordID: rec.ID,
			Payload:  sealed,
			CachedAt: syncedAt,
			SyncedAt: &syncedAt,
		}
		if err = s.cache.SaveRecord(ctx, cached); err != nil {
			return fmt.Errorf("save pulled record %s/%s: %w", entity, rec.ID, err)
		}
	}

	return nil
}

func (s *cacheService) GetRecord(ctx context.Context, entity models.Entity, recordID string) (models.CachedRecord, error) {
	record, err := s.cache.GetRecord(ctx, entity, recordID)
	if err != nil {
		return models.CachedRecord{}, err
	}

	return s.openRecord(record)
}

func (s *cacheService) GetAllRecords(ctx context.Context, entity models.Entity) ([]models.CachedRecord, error) {
	records, err := s.cache.GetAllRecords(ctx, entity)
	if err != nil {
		return nil, err
	}

	return s.openRecords(records)
}

func (s *cacheService) GetRecordsByIndex(ctx context.Context, entity models.Entity, field string, value any) ([]models.CachedRecord, error) {
	records, err := s.cache.GetRecordsByField(ctx, entity, field, value)
	if err != nil {
		return nil, err
	}

	return s.openRecords(records)
}

func (s *cacheService) IsDataFresh(ctx context.Context, maxAge time.Duration) (bool, error) {
	total, err := s.cache.CountRecords(ctx)
	if err != nil {
		return false, fmt.Errorf("count records: %w", err)
	}
	if total == 0 {
		// an empty cache has no fresh data to serve
		return false, nil
	}

	stale, err := s.cache.GetStaleRecords(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return false, fmt.Errorf("get stale records: %w", err)
	}

	return len(stale) == 0, nil
}

func (s *cacheService) GetStaleItems(ctx context.Context, maxAge time.Duration) ([]models.CachedRecord, error) {
	records, err := s.cache.GetStaleRecords(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return nil, err
	}

	return s.openRecords(records)
}

func (s *cacheService) DeleteRecord(ctx context.Context, entity models.Entity, recordID string) error {
	if err := s.cache.DeleteRecord(ctx, entity, recordID); err != nil {
		return fmt.Errorf("delete record %s/%s: %w", entity, recordID, err)
	}

	return nil
}

func (s *cacheService) ClearAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := s.cache.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear cached records: %w", err)
	}
	if err := s.queue.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear sync queue: %w", err)
	}
	if err := s.metadata.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear sync metadata: %w", err)
	}

	log.Info().Str("func", "*cacheService.ClearAll").Msg("local data wiped")
	return nil
}

// sealPayload encrypts message payloads at rest. Other entities, or a nil
// cipher, pass through unchanged.
func (s *cacheService) sealPayload(entity models.Entity, payload json.RawMessage) (json.RawMessage, error) {
	if s.cipher == nil || entity != models.EntityMessage {
		return payload, nil
	}

	blob, err := s.cipher.Seal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(blob)
}

func (s *cacheService) openRecord(record models.CachedRecord) (models.CachedRecord, error) {
	if s.cipher == nil || record.Entity != models.EntityMessage {
		return record, nil
	}

	var blob []byte
	if err := json.Unmarshal(record.Payload, &blob); err != nil {
		return models.CachedRecord{}, fmt.Errorf("decode sealed payload for %s/%s: %w", record.Entity, record.RecordID, err)
	}

	payload, err := s.cipher.Open(blob)
	if err != nil {
		return models.CachedRecord{}, fmt.Errorf("open sealed payload for %s/%s: %w", record.Entity, record.RecordID, err)
	}

	record.Payload = payload
	return record, nil
}

func (s *cacheService) openRecords(records []models.CachedRecord) ([]models.CachedRecord, error) {
	for i := range records {
		opened, err := s.openRecord(records[i])
		if err != nil {
			return nil, err
		}
		records[i] = opened
	}

	return records, nil
}
