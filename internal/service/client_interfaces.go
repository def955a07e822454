// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skids-health/skids-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// CacheService is the agent-side record cache. Every read the app performs
// goes through this cache; the server is only consulted by the coordinator's
// pull phase.
type CacheService interface {
	// SaveRecord stores a locally produced record snapshot. The connectivity
	// state is snapshotted once at entry: a record written while online is
	// stamped as synced, one written while offline stays unsynced until the
	// next successful cycle confirms it.
	SaveRecord(ctx context.Context, entity models.Entity, recordID string, payload json.RawMessage) (models.CachedRecord, error)

	// SaveServerRecords stores records received from a pull, all stamped
	// with the same confirmed sync time.
	SaveServerRecords(ctx context.Context, entity models.Entity, records []models.EntityRecord, syncedAt time.Time) error

	// GetRecord returns a single cached record.
	GetRecord(ctx context.Context, entity models.Entity, recordID string) (models.CachedRecord, error)

	// GetAllRecords returns every cached record of one entity.
	GetAllRecords(ctx context.Context, entity models.Entity) ([]models.CachedRecord, error)

	// GetRecordsByIndex returns cached records of one entity whose payload
	// field equals value (e.g. appointments for one child).
	GetRecordsByIndex(ctx context.Context, entity models.Entity, field string, value any) ([]models.CachedRecord, error)

	// IsDataFresh reports whether the cache holds at least one record and
	// every record's confirmed sync is within maxAge.
	IsDataFresh(ctx context.Context, maxAge time.Duration) (bool, error)

	// GetStaleItems returns records whose confirmed sync is absent or older
	// than maxAge.
	GetStaleItems(ctx context.Context, maxAge time.Duration) ([]models.CachedRecord, error)

	// DeleteRecord removes a cached record. Deleting an absent record is
	// not an error.
	DeleteRecord(ctx context.Context, entity models.Entity, recordID string) error

	// ClearAll wipes records, queued mutations, and sync metadata. Used on
	// sign-out.
	ClearAll(ctx context.Context) error
}

// QueueService buffers local mutations while offline and replays them.
type QueueService interface {
	// Enqueue appends a mutation to the durable queue.
	Enqueue(ctx context.Context, entity models.Entity, action models.SyncAction, entityID string, data json.RawMessage) (models.SyncQueueItem, error)

	// ListPending returns queued mutations in enqueue order.
	ListPending(ctx context.Context) ([]models.SyncQueueItem, error)

	// PendingCount returns the number of queued mutations.
	PendingCount(ctx context.Context) (int, error)

	// Drain replays queued mutations against the server in enqueue order.
	// While offline it fails fast without any transport calls. A failed item
	// has its retry counter bumped and stays queued until the retry budget
	// is exhausted, at which point it is dropped and reported as a permanent
	// failure. Per-item failures never abort the drain.
	Drain(ctx context.Context) (models.DrainResult, error)
}

// SyncCoordinator orchestrates a full cycle: pull every tracked entity, then
// drain the queue. Only one cycle runs at a time.
type SyncCoordinator interface {
	// RunCycle performs one pull+push cycle and reports the aggregate
	// outcome. Per-entity and per-item failures are collected in the result,
	// never raised; [ErrSyncInFlight] is returned when a cycle is already
	// running.
	RunCycle(ctx context.Context) (models.SyncResult, error)

	// LastSyncAt returns the time of the most recent cycle that pulled at
	// least one entity collection, or nil before the first one.
	LastSyncAt(ctx context.Context) (*time.Time, error)

	// InFlight reports whether a cycle is currently running.
	InFlight() bool
}

// ConnectivityMonitor tracks whether the server is reachable. The flag is
// flipped by explicit signals (SetOnline) and by periodic probes.
type ConnectivityMonitor interface {
	// IsOnline returns the current connectivity flag.
	IsOnline() bool

	// SetOnline records a connectivity signal. An offline-to-online
	// transition persists the reconnect time and, when mutations are
	// pending, fires the reconnect hook.
	SetOnline(ctx context.Context, online bool)

	// Probe pings the server once and feeds the outcome into SetOnline.
	// Returns the resulting connectivity flag.
	Probe(ctx context.Context) bool

	// OnReconnect registers the hook fired after an offline-to-online
	// transition with pending mutations. The hook runs on its own goroutine.
	OnReconnect(hook func(ctx context.Context))
}

// ClientAuthService handles account registration, sign-in, and sign-out for
// the agent.
type ClientAuthService interface {
	// Register creates an account on the server and starts a session.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates against the server and starts a session.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// EndSession signs out: the bearer token is discarded and all local
	// data is wiped.
	EndSession(ctx context.Context) error
}

// SyncJob is the background worker that triggers coordinator cycles on a
// fixed interval while the session lasts.
type SyncJob interface {
	// Start launches the background goroutine. It triggers a cycle every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
