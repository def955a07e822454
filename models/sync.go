package models

import "encoding/json"

// DrainResult is the aggregate outcome of one queue drain. Individual item
// failures are captured here instead of being raised, so one bad mutation
// never blocks the rest of the queue.
type DrainResult struct {
	// Processed is the number of items confirmed by the server and removed.
	Processed int `json:"processed"`

	// Failed is the number of items that failed this drain, including
	// items dropped after exhausting their retry budget.
	Failed int `json:"failed"`

	// Errors describes each failure in queue order.
	Errors []string `json:"errors,omitempty"`
}

// SyncResult is the aggregate outcome of one coordinator cycle, exposed to
// the UI layer. A cycle never raises for per-entity or per-item failures.
type SyncResult struct {
	// PullSuccess is true when at least one entity collection was pulled.
	PullSuccess bool `json:"pull_success"`

	// ItemsSynced is the number of queued mutations confirmed this cycle.
	ItemsSynced int `json:"items_synced"`

	// PendingChanges is the number of mutations still queued after the cycle.
	PendingChanges int `json:"pending_changes"`

	// Errors aggregates pull and push failures in the order they occurred.
	Errors []string `json:"errors,omitempty"`
}

// PullResponse is the Server Read API reply for one entity collection.
type PullResponse struct {
	// Records is the current authoritative list for the collection,
	// scoped to the authenticated user.
	Records []EntityRecord `json:"records"`

	// Length is the total number of entries in Records.
	Length int `json:"length"`
}

// MutationRequest is the Server Write API request for one queued mutation.
// The server treats delivery as at-least-once: a retried request for an
// already-applied mutation must succeed idempotently.
type MutationRequest struct {
	// EntityID identifies the target record for update/delete. Empty for
	// create.
	EntityID string `json:"entity_id,omitempty"`

	// Data is the collection-specific payload.
	Data json.RawMessage `json:"data"`
}
