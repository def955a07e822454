package store

import (
	"context"
	"time"

	"github.com/skids-health/skids-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CacheRepository is the low-level local cache of server entity records.
// Payloads are stored as opaque JSON and never interpreted here.
type CacheRepository interface {
	SaveRecord(ctx context.Context, record models.CachedRecord) error
	GetRecord(ctx context.Context, entity models.Entity, recordID string) (models.CachedRecord, error)
	GetAllRecords(ctx context.Context, entity models.Entity) ([]models.CachedRecord, error)
	GetRecordsByField(ctx context.Context, entity models.Entity, field string, value any) ([]models.CachedRecord, error)
	GetStaleRecords(ctx context.Context, olderThan time.Time) ([]models.CachedRecord, error)
	CountRecords(ctx context.Context) (int, error)
	MarkRecordSynced(ctx context.Context, entity models.Entity, recordID string, syncedAt time.Time) error
	DeleteRecord(ctx context.Context, entity models.Entity, recordID string) error
	ClearAll(ctx context.Context) error
}

// QueueRepository is the durable FIFO buffer of local mutations awaiting push.
type QueueRepository interface {
	Enqueue(ctx context.Context, item models.SyncQueueItem) (models.SyncQueueItem, error)
	ListPending(ctx context.Context) ([]models.SyncQueueItem, error)
	CountPending(ctx context.Context) (int, error)
	Remove(ctx context.Context, itemID int64) error
	IncrementRetry(ctx context.Context, itemID int64) error
	ClearAll(ctx context.Context) error
}

// MetadataRepository persists process-wide sync state as key/value pairs.
type MetadataRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	ClearAll(ctx context.Context) error
}
