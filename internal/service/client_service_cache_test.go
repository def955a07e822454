// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/skids-health/skids-sync/internal/crypto"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/mock"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCacheSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	cipher crypto.PayloadCipher,
) (
	*cacheService,
	*mock.MockCacheRepository,
	*mock.MockQueueRepository,
	*mock.MockMetadataRepository,
	*mock.MockConnectivityMonitor,
) {
	t.Helper()
	mockCache := mock.NewMockCacheRepository(ctrl)
	mockQueue := mock.NewMockQueueRepository(ctrl)
	mockMeta := mock.NewMockMetadataRepository(ctrl)
	mockMonitor := mock.NewMockConnectivityMonitor(ctrl)

	storages := &store.ClientStorages{Cache: mockCache, Queue: mockQueue, Metadata: mockMeta}
	svc := NewCacheService(storages, mockMonitor, cipher, logger.NewLogger("test")).(*cacheService)

	return svc, mockCache, mockQueue, mockMeta, mockMonitor
}

// ── SaveRecord ───────────────────────────────────────────────────────────────

func TestCacheService_SaveRecord_OnlineStampedSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, mockMonitor := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockMonitor.EXPECT().IsOnline().Return(true)
	mockCache.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CachedRecord) error {
			assert.NotNil(t, record.SyncedAt)
			return nil
		})

	record, err := svc.SaveRecord(ctx, models.EntityChild, "child-1", json.RawMessage(`{"name":"Asha"}`))
	require.NoError(t, err)
	assert.False(t, record.Unsynced())
}

func TestCacheService_SaveRecord_OfflineStaysUnsynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, mockMonitor := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockMonitor.EXPECT().IsOnline().Return(false)
	mockCache.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CachedRecord) error {
			assert.Nil(t, record.SyncedAt)
			return nil
		})

	record, err := svc.SaveRecord(ctx, models.EntityChild, "child-1", json.RawMessage(`{"name":"Asha"}`))
	require.NoError(t, err)
	assert.True(t, record.Unsynced())
}

func TestCacheService_SaveRecord_InvalidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, mockMonitor := newTestCacheSvc(t, ctrl, nil)

	mockMonitor.EXPECT().IsOnline().Return(true)

	_, err := svc.SaveRecord(context.Background(), models.EntityChild, "child-1", json.RawMessage(`{broken`))
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCacheService_SaveServerRecords_StampedWithPullTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()
	syncedAt := time.Now()

	records := []models.EntityRecord{
		{ID: "app-1", Payload: json.RawMessage(`{"status":"booked"}`)},
		{ID: "app-2", Payload: json.RawMessage(`{"status":"done"}`)},
	}

	mockCache.EXPECT().SaveRecord(ctx, gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, record models.CachedRecord) error {
			require.NotNil(t, record.SyncedAt)
			assert.True(t, record.SyncedAt.Equal(syncedAt))
			assert.Equal(t, models.EntityAppointment, record.Entity)
			return nil
		})

	err := svc.SaveServerRecords(ctx, models.EntityAppointment, records, syncedAt)
	require.NoError(t, err)
}

// ── Freshness ────────────────────────────────────────────────────────────────

func TestCacheService_IsDataFresh_EmptyCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	// no stale scan: an empty cache can never be fresh
	mockCache.EXPECT().CountRecords(ctx).Return(0, nil)

	fresh, err := svc.IsDataFresh(ctx, time.Hour)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestCacheService_IsDataFresh_AllRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockCache.EXPECT().CountRecords(ctx).Return(3, nil)
	mockCache.EXPECT().GetStaleRecords(ctx, gomock.Any()).Return(nil, nil)

	fresh, err := svc.IsDataFresh(ctx, time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestCacheService_IsDataFresh_StaleRecordPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockCache.EXPECT().CountRecords(ctx).Return(3, nil)
	mockCache.EXPECT().GetStaleRecords(ctx, gomock.Any()).
		Return([]models.CachedRecord{{Entity: models.EntityReport, RecordID: "rep-1"}}, nil)

	fresh, err := svc.IsDataFresh(ctx, time.Hour)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestCacheService_GetStaleItems_CutoffFromMaxAge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	stale := []models.CachedRecord{{Entity: models.EntityCampaign, RecordID: "cmp-1", Payload: json.RawMessage(`{}`)}}
	mockCache.EXPECT().GetStaleRecords(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, olderThan time.Time) ([]models.CachedRecord, error) {
			assert.WithinDuration(t, time.Now().Add(-time.Hour), olderThan, time.Minute)
			return stale, nil
		})

	got, err := svc.GetStaleItems(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, stale, got)
}

// ── DeleteRecord ─────────────────────────────────────────────────────────────

func TestCacheService_DeleteRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, _, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockCache.EXPECT().DeleteRecord(ctx, models.EntityAppointment, "app-1").Return(nil)

	require.NoError(t, svc.DeleteRecord(ctx, models.EntityAppointment, "app-1"))
}

// ── ClearAll ─────────────────────────────────────────────────────────────────

func TestCacheService_ClearAll_WipesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, mockQueue, mockMeta, _ := newTestCacheSvc(t, ctrl, nil)
	ctx := context.Background()

	mockCache.EXPECT().ClearAll(ctx).Return(nil)
	mockQueue.EXPECT().ClearAll(ctx).Return(nil)
	mockMeta.EXPECT().ClearAll(ctx).Return(nil)

	require.NoError(t, svc.ClearAll(ctx))
}

// ── Sealed message payloads ──────────────────────────────────────────────────

func TestCacheService_MessagePayloadSealedAtRest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cipher, err := crypto.NewPayloadCipher("family-passphrase")
	require.NoError(t, err)

	svc, mockCache, _, _, mockMonitor := newTestCacheSvc(t, ctrl, cipher)
	ctx := context.Background()
	plaintext := json.RawMessage(`{"sender":"clinic","body":"see you tomorrow"}`)

	var stored models.CachedRecord
	mockMonitor.EXPECT().IsOnline().Return(true)
	mockCache.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CachedRecord) error {
			stored = record
			return nil
		})

	_, err = svc.SaveRecord(ctx, models.EntityMessage, "msg-1", plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, stored.Payload, "message payload must not be cached in plaintext")

	mockCache.EXPECT().GetRecord(ctx, models.EntityMessage, "msg-1").Return(stored, nil)

	opened, err := svc.GetRecord(ctx, models.EntityMessage, "msg-1")
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened.Payload)
}

func TestCacheService_NonMessagePayloadStaysPlain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cipher, err := crypto.NewPayloadCipher("family-passphrase")
	require.NoError(t, err)

	svc, mockCache, _, _, mockMonitor := newTestCacheSvc(t, ctrl, cipher)
	ctx := context.Background()
	plaintext := json.RawMessage(`{"name":"Asha"}`)

	mockMonitor.EXPECT().IsOnline().Return(true)
	mockCache.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CachedRecord) error {
			assert.Equal(t, plaintext, record.Payload)
			return nil
		})

	_, err = svc.SaveRecord(ctx, models.EntityChild, "child-1", plaintext)
	require.NoError(t, err)
}
