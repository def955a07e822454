// Package utils provides small helpers shared across the skids-sync
// binaries: type-safe context keys, JSON response writing, JWT claim
// helpers, and record-ID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type instead
// of a plain string prevents collisions with other packages storing
// string-keyed values in the same context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated user's identifier. Read back with GetUserIDFromContext.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user's identifier from
// the context. ok is false when the value is missing or is not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
