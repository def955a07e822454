package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [StructuredConfig.validate] when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid agent adapter settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid sync engine settings
	// (for example, negative retry budget).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAuthConfigs indicates invalid token settings required by
	// the server (for example, missing sign key).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
)
