// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/mock"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEntitySvc(t *testing.T, ctrl *gomock.Controller) (*entityService, *mock.MockEntityRepository) {
	t.Helper()
	mockEntities := mock.NewMockEntityRepository(ctrl)
	svc := NewEntityService(mockEntities, logger.NewLogger("test")).(*entityService)

	return svc, mockEntities
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestEntityService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntities := newTestEntitySvc(t, ctrl)
	ctx := context.Background()

	records := []models.EntityRecord{{ID: "child-1", Payload: json.RawMessage(`{"name":"Asha"}`)}}
	mockEntities.EXPECT().ListRecords(ctx, int64(42), models.EntityChild).Return(records, nil)

	got, err := svc.List(ctx, 42, models.EntityChild)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestEntityService_List_UnknownEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestEntitySvc(t, ctrl)

	_, err := svc.List(context.Background(), 42, "vaccine")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Apply ────────────────────────────────────────────────────────────────────

func TestEntityService_Apply_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntities := newTestEntitySvc(t, ctrl)
	ctx := context.Background()
	payload := json.RawMessage(`{"status":"booked"}`)

	mockEntities.EXPECT().
		UpsertRecord(ctx, int64(42), models.EntityAppointment, models.EntityRecord{ID: "app-1", Payload: payload}).
		Return(models.EntityRecord{ID: "app-1", Payload: payload}, nil)

	err := svc.Apply(ctx, 42, models.EntityAppointment, models.ActionCreate, "", models.MutationRequest{EntityID: "app-1", Data: payload})
	require.NoError(t, err)
}

func TestEntityService_Apply_UpdateUsesPathRecordID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntities := newTestEntitySvc(t, ctrl)
	ctx := context.Background()
	payload := json.RawMessage(`{"status":"cancelled"}`)

	mockEntities.EXPECT().
		UpsertRecord(ctx, int64(42), models.EntityAppointment, models.EntityRecord{ID: "app-1", Payload: payload}).
		Return(models.EntityRecord{}, nil)

	err := svc.Apply(ctx, 42, models.EntityAppointment, models.ActionUpdate, "app-1", models.MutationRequest{Data: payload})
	require.NoError(t, err)
}

func TestEntityService_Apply_CreateWithoutPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestEntitySvc(t, ctrl)

	err := svc.Apply(context.Background(), 42, models.EntityChild, models.ActionCreate, "child-1", models.MutationRequest{})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestEntityService_Apply_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntities := newTestEntitySvc(t, ctrl)
	ctx := context.Background()

	mockEntities.EXPECT().MarkDeleted(ctx, int64(42), models.EntityMessage, "msg-1").Return(nil)

	err := svc.Apply(ctx, 42, models.EntityMessage, models.ActionDelete, "msg-1", models.MutationRequest{})
	require.NoError(t, err)
}

func TestEntityService_Apply_DeleteAbsentRecordSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntities := newTestEntitySvc(t, ctrl)
	ctx := context.Background()

	// at-least-once delivery: the retried delete finds nothing and still wins
	mockEntities.EXPECT().MarkDeleted(ctx, int64(42), models.EntityMessage, "msg-1").Return(store.ErrRecordNotFound)

	err := svc.Apply(ctx, 42, models.EntityMessage, models.ActionDelete, "msg-1", models.MutationRequest{})
	require.NoError(t, err)
}

func TestEntityService_Apply_UnknownAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestEntitySvc(t, ctrl)

	err := svc.Apply(context.Background(), 42, models.EntityChild, "merge", "child-1", models.MutationRequest{Data: json.RawMessage(`{}`)})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}
