package store

import (
	"context"

	"github.com/skids-health/skids-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository manages server-side user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// EntityRepository is the server-side store of per-user entity records.
type EntityRepository interface {
	UpsertRecord(ctx context.Context, userID int64, entity models.Entity, record models.EntityRecord) (models.EntityRecord, error)
	GetRecord(ctx context.Context, userID int64, entity models.Entity, recordID string) (models.EntityRecord, error)
	ListRecords(ctx context.Context, userID int64, entity models.Entity) ([]models.EntityRecord, error)
	MarkDeleted(ctx context.Context, userID int64, entity models.Entity, recordID string) error
}
