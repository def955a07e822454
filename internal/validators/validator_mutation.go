package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skids-health/skids-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldEntity targets the entity collection name of a mutation or record.
	FieldEntity = "entity"

	// FieldAction targets the mutation kind (create, update, delete).
	FieldAction = "action"

	// FieldRecordID targets the record identifier of a mutation or record.
	FieldRecordID = "record_id"

	// FieldPayload targets the raw JSON payload of a mutation or record.
	FieldPayload = "payload"

	// FieldLogin targets the user login on auth requests.
	FieldLogin = "login"

	// FieldPassword targets the user password on auth requests.
	FieldPassword = "password"
)

// MutationValidator validates sync mutations, cached records, and auth
// requests before they reach the storage or transport layer.
type MutationValidator struct {
}

func NewMutationValidator() Validator {
	return &MutationValidator{}
}

func (v *MutationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncQueueItem:
		return v.validateQueueItem(ctx, value, fields...)
	case *models.SyncQueueItem:
		return v.validateQueueItem(ctx, *value, fields...)

	case models.CachedRecord:
		return v.validateCachedRecord(ctx, value, fields...)
	case *models.CachedRecord:
		return v.validateCachedRecord(ctx, *value, fields...)

	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *MutationValidator) validateQueueItem(_ context.Context, item models.SyncQueueItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntity, FieldAction, FieldRecordID, FieldPayload}
	}

	for _, field := range fields {
		switch field {
		case FieldEntity:
			if !item.Entity.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntity, item.Entity)
			}
		case FieldAction:
			if !item.Action.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidAction, item.Action)
			}
		case FieldRecordID:
			// create carries its record id inside the payload
			if item.Action != models.ActionCreate && item.EntityID == "" {
				return fmt.Errorf("%w: empty for %s", ErrInvalidRecordID, item.Action)
			}
		case FieldPayload:
			// delete has no payload
			if item.Action == models.ActionDelete {
				continue
			}
			if err := validateRawPayload(item.Data); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *MutationValidator) validateCachedRecord(_ context.Context, record models.CachedRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntity, FieldRecordID, FieldPayload}
	}

	for _, field := range fields {
		switch field {
		case FieldEntity:
			if !record.Entity.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntity, record.Entity)
			}
		case FieldRecordID:
			if record.RecordID == "" {
				return fmt.Errorf("%w: empty", ErrInvalidRecordID)
			}
		case FieldPayload:
			if err := validateRawPayload(record.Payload); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *MutationValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldLogin:
			if user.Login == "" {
				return ErrInvalidLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrInvalidPassword
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func validateRawPayload(raw json.RawMessage) error {
	if len(raw) == 0 {
		return ErrEmptyPayload
	}
	if !json.Valid(raw) {
		return ErrInvalidPayload
	}
	return nil
}
