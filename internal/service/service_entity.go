package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
)

// entityService is the concrete implementation of EntityService. Mutations
// are applied idempotently so the agent's at-least-once delivery never
// produces duplicates.
type entityService struct {
	entityRepository store.EntityRepository
	logger           *logger.Logger
}

func NewEntityService(entityRepository store.EntityRepository, logger *logger.Logger) EntityService {
	return &entityService{
		entityRepository: entityRepository,
		logger:           logger,
	}
}

func (s *entityService) List(ctx context.Context, userID int64, entity models.Entity) ([]models.EntityRecord, error) {
	if !entity.Valid() {
		return nil, fmt.Errorf("%w: unknown entity %q", ErrInvalidDataProvided, entity)
	}

	records, err := s.entityRepository.ListRecords(ctx, userID, entity)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", entity, err)
	}

	return records, nil
}

func (s *entityService) Apply(ctx context.Context, userID int64, entity models.Entity, action models.SyncAction, recordID string, req models.MutationRequest) error {
	log := logger.FromContext(ctx)

	if !entity.Valid() {
		return fmt.Errorf("%w: unknown entity %q", ErrInvalidDataProvided, entity)
	}

	switch action {
	case models.ActionCreate, models.ActionUpdate:
		if recordID == "" {
			recordID = req.EntityID
		}
		if recordID == "" || len(req.Data) == 0 {
			return fmt.Errorf("%w: %s needs a record id and payload", ErrInvalidDataProvided, action)
		}

		record := models.EntityRecord{ID: recordID, Payload: req.Data}
		if _, err := s.entityRepository.UpsertRecord(ctx, userID, entity, record); err != nil {
			return fmt.Errorf("apply %s %s: %w", action, entity, err)
		}

	case models.ActionDelete:
		if recordID == "" {
			return fmt.Errorf("%w: delete needs a record id", ErrInvalidDataProvided)
		}

		err := s.entityRepository.MarkDeleted(ctx, userID, entity, recordID)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("apply delete %s: %w", entity, err)
		}
		// deleting an absent record succeeds: the replayed request already won

	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidDataProvided, action)
	}

	log.Debug().Str("func", "*entityService.Apply").
		Int64("user_id", userID).Str("entity", string(entity)).Str("action", string(action)).Str("record_id", recordID).
		Msg("mutation applied")
	return nil
}
