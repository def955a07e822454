package service

import (
	"context"

	"github.com/skids-health/skids-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles server-side account registration and credential
// verification, issuing JWT tokens for authenticated sessions.
type AuthService interface {
	// RegisterUser creates a new account. The plaintext password is replaced
	// with an argon2id derivation before persistence.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the credentials and returns the stored user record.
	Login(ctx context.Context, user models.User) (models.User, error)

	// GenerateToken issues a signed JWT for the user.
	GenerateToken(ctx context.Context, user models.User) (models.Token, error)

	// ValidateToken verifies a compact JWT and returns its parsed form with
	// the user id extracted from the "sub" claim.
	ValidateToken(ctx context.Context, signedToken string) (models.Token, error)
}

// EntityService is the server-side sync API: per-user pulls and idempotent
// mutation application.
type EntityService interface {
	// List returns the user's live records of one entity collection.
	List(ctx context.Context, userID int64, entity models.Entity) ([]models.EntityRecord, error)

	// Apply executes one mutation. Creates and updates upsert, so a replayed
	// request lands on the same state; deleting an absent or already-deleted
	// record succeeds.
	Apply(ctx context.Context, userID int64, entity models.Entity, action models.SyncAction, recordID string, req models.MutationRequest) error
}
