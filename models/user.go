package models

import "time"

// User represents a parent account registered under a clinic.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier, typically the parent's
	// phone number or email used during authentication.
	Login string `json:"login"`

	// Name is the display name of the parent.
	Name string `json:"name"`

	// ClinicCode is the whitelist code of the clinic the parent registered
	// under.
	ClinicCode string `json:"clinic_code,omitempty"`

	// Password carries the credential on register/login requests. Stored
	// server-side only as an argon2id derivation, never plaintext.
	Password string `json:"password"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
