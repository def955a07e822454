// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skids-health/skids-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyCoordinator counts RunCycle triggers without doing any work.
type spyCoordinator struct {
	calls atomic.Int64
}

func (s *spyCoordinator) RunCycle(_ context.Context) (models.SyncResult, error) {
	s.calls.Add(1)
	return models.SyncResult{}, nil
}

func (s *spyCoordinator) LastSyncAt(_ context.Context) (*time.Time, error) { return nil, nil }

func (s *spyCoordinator) InFlight() bool { return false }

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_TriggersCycles(t *testing.T) {
	spy := &spyCoordinator{}
	job := NewSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "expected several cycles, got %d", got)
}

func TestSyncJob_Stop_HaltsCycles(t *testing.T) {
	spy := &spyCoordinator{}
	job := NewSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	after := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load(), "no cycles may run after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyCoordinator{})
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyCoordinator{})
	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Restart_ReplacesRunningJob(t *testing.T) {
	spy := &spyCoordinator{}
	job := NewSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, time.Hour)
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	require.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}

func TestSyncJob_NonPositiveIntervalDefaults(t *testing.T) {
	spy := &spyCoordinator{}
	job := NewSyncJob(spy)

	// default interval is 5 minutes, so 20ms sees no ticks
	job.Start(context.Background(), 0)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestSyncJob_ContextCancelStopsCycles(t *testing.T) {
	spy := &spyCoordinator{}
	job := NewSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	after := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load())
	job.Stop()
}
