// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package models

import (
	"encoding/json"
	"time"
)

// SyncAction is the kind of local mutation buffered in the sync queue.
type SyncAction string

const (
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
	ActionDelete SyncAction = "delete"
)

// Valid reports whether a is one of the supported mutation kinds.
func (a SyncAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

func (a SyncAction) String() string {
	return string(a)
}

// SyncQueueItem is a pending local mutation awaiting transmission to the
// server. Items are appended with monotonically increasing identifiers and
// pushed in strict FIFO order; an item leaves the queue only after a
// confirmed push or after its retry budget is exhausted.
type SyncQueueItem struct {
	// ID is the queue-assigned monotonically increasing identifier, used
	// as the removal key.
	ID int64 `json:"id"`

	// Entity names the target collection.
	Entity Entity `json:"entity"`

	// EntityID identifies the target record for update/delete mutations.
	// Empty for create.
	EntityID string `json:"entity_id,omitempty"`

	// Action is the mutation kind.
	Action SyncAction `json:"action"`

	// Data is the collection-specific payload sent to the server.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the mutation was queued.
	CreatedAt time.Time `json:"created_at"`

	// RetryCount is the number of failed push attempts so far.
	RetryCount int `json:"retry_count"`
}
