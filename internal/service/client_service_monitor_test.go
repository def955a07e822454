// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"testing"
	"time"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/mock"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMonitor(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*connectivityMonitor,
	*mock.MockServerAdapter,
	*mock.MockQueueRepository,
	*mock.MockMetadataRepository,
) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockQueue := mock.NewMockQueueRepository(ctrl)
	mockMeta := mock.NewMockMetadataRepository(ctrl)

	storages := &store.ClientStorages{Queue: mockQueue, Metadata: mockMeta}
	m := NewConnectivityMonitor(mockAdapter, storages, logger.NewLogger("test")).(*connectivityMonitor)

	return m, mockAdapter, mockQueue, mockMeta
}

// ── SetOnline ────────────────────────────────────────────────────────────────

func TestConnectivityMonitor_StartsOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, _, _ := newTestMonitor(t, ctrl)
	assert.False(t, m.IsOnline())
}

func TestConnectivityMonitor_ReconnectFiresHookWhenMutationsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockQueue, mockMeta := newTestMonitor(t, ctrl)
	ctx := context.Background()

	fired := make(chan struct{})
	m.OnReconnect(func(ctx context.Context) { close(fired) })

	mockMeta.EXPECT().Set(ctx, models.MetaLastOnlineAt, gomock.Any()).Return(nil)
	mockQueue.EXPECT().CountPending(ctx).Return(2, nil)

	m.SetOnline(ctx, true)
	require.True(t, m.IsOnline())

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("reconnect hook was not fired")
	}
}

func TestConnectivityMonitor_ReconnectWithEmptyQueueSkipsHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockQueue, mockMeta := newTestMonitor(t, ctrl)
	ctx := context.Background()

	fired := make(chan struct{})
	m.OnReconnect(func(ctx context.Context) { close(fired) })

	mockMeta.EXPECT().Set(ctx, models.MetaLastOnlineAt, gomock.Any()).Return(nil)
	mockQueue.EXPECT().CountPending(ctx).Return(0, nil)

	m.SetOnline(ctx, true)

	select {
	case <-fired:
		t.Fatal("hook must not fire without pending mutations")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectivityMonitor_RepeatedSignalIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockQueue, mockMeta := newTestMonitor(t, ctrl)
	ctx := context.Background()

	// only the transition writes metadata
	mockMeta.EXPECT().Set(ctx, models.MetaLastOnlineAt, gomock.Any()).Return(nil).Times(1)
	mockQueue.EXPECT().CountPending(ctx).Return(0, nil).Times(1)

	m.SetOnline(ctx, true)
	m.SetOnline(ctx, true)
	assert.True(t, m.IsOnline())
}

func TestConnectivityMonitor_GoingOfflineWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockQueue, mockMeta := newTestMonitor(t, ctrl)
	ctx := context.Background()

	mockMeta.EXPECT().Set(ctx, models.MetaLastOnlineAt, gomock.Any()).Return(nil)
	mockQueue.EXPECT().CountPending(ctx).Return(0, nil)
	m.SetOnline(ctx, true)

	m.SetOnline(ctx, false)
	assert.False(t, m.IsOnline())
}

// ── Probe ────────────────────────────────────────────────────────────────────

func TestConnectivityMonitor_Probe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockQueue, mockMeta := newTestMonitor(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Ping(ctx).Return(nil)
	mockMeta.EXPECT().Set(ctx, models.MetaLastOnlineAt, gomock.Any()).Return(nil)
	mockQueue.EXPECT().CountPending(ctx).Return(0, nil)

	assert.True(t, m.Probe(ctx))
	assert.True(t, m.IsOnline())

	mockAdapter.EXPECT().Ping(ctx).Return(adapter.ErrUnavailable)

	assert.False(t, m.Probe(ctx))
	assert.False(t, m.IsOnline())
}
