// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
)

// syncCoordinator implements [SyncCoordinator]. A cycle pulls every entity in
// [models.TrackedEntities] order, then drains the queue; per-entity and
// per-item failures are collected, never raised.
type syncCoordinator struct {
	cache    CacheService
	queue    QueueService
	adapter  adapter.ServerAdapter
	metadata store.MetadataRepository
	monitor  ConnectivityMonitor
	logger   *logger.Logger

	inFlight atomic.Bool
}

// NewSyncCoordinator constructs a [SyncCoordinator]. monitor may be nil, in
// which case cycles always run as if online.
func NewSyncCoordinator(cache CacheService, queue QueueService, serverAdapter adapter.ServerAdapter, metadata store.MetadataRepository, monitor ConnectivityMonitor, log *logger.Logger) SyncCoordinator {
	return &syncCoordinator{
		cache:    cache,
		queue:    queue,
		adapter:  serverAdapter,
		metadata: metadata,
		monitor:  monitor,
		logger:   log,
	}
}

func (c *syncCoordinator) RunCycle(ctx context.Context) (models.SyncResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return models.SyncResult{}, ErrSyncInFlight
	}
	defer c.inFlight.Store(false)

	log := logger.FromContext(ctx)

	if c.monitor != nil && !c.monitor.IsOnline() {
		pending, err := c.queue.PendingCount(ctx)
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("count pending mutations: %w", err)
		}
		return models.SyncResult{PendingChanges: pending, Errors: []string{"offline"}}, nil
	}

	var result models.SyncResult

	// pull phase: entities are independent, one failure leaves that entity's
	// cache untouched and the cycle moves on
	pulled := 0
	syncedAt := time.Now()
	for _, entity := range models.TrackedEntities {
		records, err := c.adapter.Pull(ctx, entity)
		if err != nil {
			log.Err(err).Str("func", "*syncCoordinator.RunCycle").
				Str("entity", string(entity)).Msg("pull failed")
			result.Errors = append(result.Errors, fmt.Sprintf("pull %s: %v", entity, err))
			continue
		}

		if err = c.cache.SaveServerRecords(ctx, entity, records, syncedAt); err != nil {
			return result, fmt.Errorf("store pulled %s records: %w", entity, err)
		}
		pulled++
	}

	result.PullSuccess = pulled > 0
	if result.PullSuccess {
		if err := c.metadata.Set(ctx, models.MetaLastSyncAt, syncedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return result, fmt.Errorf("record last sync time: %w", err)
		}
	}

	// push phase
	drain, err := c.queue.Drain(ctx)
	if err != nil {
		return result, fmt.Errorf("drain queue: %w", err)
	}
	result.ItemsSynced = drain.Processed
	result.Errors = append(result.Errors, drain.Errors...)

	pending, err := c.queue.PendingCount(ctx)
	if err != nil {
		return result, fmt.Errorf("count pending mutations: %w", err)
	}
	result.PendingChanges = pending

	log.Info().Str("func", "*syncCoordinator.RunCycle").
		Bool("pull_success", result.PullSuccess).
		Int("items_synced", result.ItemsSynced).
		Int("pending_changes", result.PendingChanges).
		Int("errors", len(result.Errors)).
		Msg("sync cycle finished")

	return result, nil
}

func (c *syncCoordinator) LastSyncAt(ctx context.Context) (*time.Time, error) {
	value, err := c.metadata.Get(ctx, models.MetaLastSyncAt)
	if err != nil {
		if errors.Is(err, store.ErrMetadataNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last sync time: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("parse last sync time %q: %w", value, err)
	}

	return &at, nil
}

func (c *syncCoordinator) InFlight() bool {
	return c.inFlight.Load()
}
