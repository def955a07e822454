package models

import (
	"encoding/json"
	"time"
)

// Entity names the server-side record collections tracked for offline use.
// The sync engine treats entity payloads as opaque JSON; the typed structs
// below are used by the reference server and by callers that need to inspect
// a payload.
type Entity string

const (
	EntityChild       Entity = "child"
	EntityAppointment Entity = "appointment"
	EntityReport      Entity = "report"
	EntityCampaign    Entity = "campaign"
	EntityMessage     Entity = "message"
)

// TrackedEntities lists every collection the sync engine pulls and caches,
// in the order the pull phase visits them.
var TrackedEntities = []Entity{
	EntityChild,
	EntityAppointment,
	EntityReport,
	EntityCampaign,
	EntityMessage,
}

// Valid reports whether e is one of the tracked entity collections.
func (e Entity) Valid() bool {
	switch e {
	case EntityChild, EntityAppointment, EntityReport, EntityCampaign, EntityMessage:
		return true
	}
	return false
}

func (e Entity) String() string {
	return string(e)
}

// EntityRecord is the wire unit exchanged with the Server Read/Write API:
// one record of one tracked collection, with its payload left as raw JSON
// so that the sync engine stays agnostic of collection-specific fields.
type EntityRecord struct {
	// ID is the record identifier, unique within its entity collection.
	ID string `json:"id"`

	// Payload carries the collection-specific fields.
	Payload json.RawMessage `json:"payload"`

	// UpdatedAt is the server-side modification timestamp, when known.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Child is a child profile managed by a parent under a clinic.
type Child struct {
	ID        string     `json:"id"`
	ParentID  int64      `json:"parent_id"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	ClinicID  string     `json:"clinic_id"`
}

// Appointment is a booked clinic visit for a child.
type Appointment struct {
	ID          string     `json:"id"`
	ChildID     string     `json:"child_id"`
	ClinicID    string     `json:"clinic_id"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
}

// Report is a health report published by the clinic for a child.
type Report struct {
	ID       string     `json:"id"`
	ChildID  string     `json:"child_id"`
	Title    string     `json:"title"`
	Summary  string     `json:"summary,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// Campaign is a clinic outreach campaign visible to enrolled parents.
type Campaign struct {
	ID       string     `json:"id"`
	ClinicID string     `json:"clinic_id"`
	Title    string     `json:"title"`
	Body     string     `json:"body,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// Message is one parent/clinic conversation message.
type Message struct {
	ID      string     `json:"id"`
	ChildID string     `json:"child_id,omitempty"`
	Sender  string     `json:"sender"`
	Body    string     `json:"body"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
}
