// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

// Package adapter provides transport-layer abstractions for communicating
// with the sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/skids-health/skids-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer token via
	// SetToken. Returns an error if the request fails or the server responds
	// with a non-2xx status.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer token via SetToken. Returns an error if the request
	// fails or the server responds with a non-2xx status.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Ping probes server reachability. A nil return means the server answered
	// within the request timeout; [ErrUnavailable] (wrapped) means it did not.
	Ping(ctx context.Context) error

	// Pull retrieves the authenticated user's current records of one entity
	// collection. Returns the full authoritative list; an empty collection is
	// a successful pull with zero records.
	Pull(ctx context.Context, entity models.Entity) ([]models.EntityRecord, error)

	// Push replays one queued mutation against the server. Delivery is
	// at-least-once: the server applies creates and updates idempotently, and
	// deleting an already-deleted record succeeds.
	Push(ctx context.Context, item models.SyncQueueItem) error
}
