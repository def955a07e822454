// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package models

import (
	"encoding/json"
	"time"
)

// CachedRecord is a local snapshot of one server entity record.
// It is the primary persistence model of the offline cache: the payload is
// stored as opaque JSON and never interpreted by the storage layer.
type CachedRecord struct {
	// Entity names the collection this record belongs to.
	Entity Entity `json:"entity"`

	// RecordID is the record identifier, unique within the collection.
	RecordID string `json:"record_id"`

	// Payload carries the collection-specific fields as raw JSON.
	Payload json.RawMessage `json:"payload"`

	// CachedAt is when this snapshot was last written locally.
	CachedAt time.Time `json:"cached_at"`

	// SyncedAt is the last confirmed synchronization with the server.
	// Nil means the record was written while offline and never confirmed;
	// such a record is considered unsynced.
	SyncedAt *time.Time `json:"synced_at,omitempty"`
}

// Unsynced reports whether the record has never been confirmed by the server.
func (r *CachedRecord) Unsynced() bool {
	return r.SyncedAt == nil
}

// StaleAt reports whether the record's last confirmed sync is older than
// maxAge as of now. An unsynced record is always stale.
func (r *CachedRecord) StaleAt(now time.Time, maxAge time.Duration) bool {
	if r.SyncedAt == nil {
		return true
	}
	return now.Sub(*r.SyncedAt) > maxAge
}

// SyncMetadata is the process-wide persisted sync state. It is created
// lazily on the first sync attempt and cleared entirely on sign-out.
type SyncMetadata struct {
	// LastSyncAt is the time of the most recent successful full pull,
	// nil before the first one.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	// LastOnlineAt is the time connectivity was last confirmed, nil if
	// the engine has never observed an online transition.
	LastOnlineAt *time.Time `json:"last_online_at,omitempty"`
}

// Keys under which SyncMetadata fields are persisted in the metadata table.
const (
	MetaLastSyncAt   = "last_sync_at"
	MetaLastOnlineAt = "last_online_at"
)
