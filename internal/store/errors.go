package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when a cache lookup targets a record
	// (identified by entity and record id) that is not present locally.
	ErrRecordNotFound = errors.New("cached record was not found")

	// ErrRecordNotSaved is returned when a write completes without error but
	// the number of affected rows is zero, meaning nothing was persisted.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrMetadataNotFound is returned when a sync metadata key has never
	// been written. Callers usually treat it as "no sync has happened yet".
	ErrMetadataNotFound = errors.New("sync metadata key was not found")

	// ErrQueueItemNotFound is returned when an update or delete targets a
	// sync queue item that does not exist, typically because a concurrent
	// drain already removed it.
	ErrQueueItemNotFound = errors.New("sync queue item was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
