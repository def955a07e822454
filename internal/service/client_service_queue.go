// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/internal/validators"
	"github.com/skids-health/skids-sync/models"
)

// DefaultMaxRetries is the push retry budget applied when the configured
// value is not positive.
const DefaultMaxRetries = 3

// pushAttemptBackoff caps the in-drain transient retries of one push. These
// retries smooth over momentary transport hiccups; they do not consume the
// item's retry budget — one drain bumps retry_count at most once.
const (
	pushBackoffBase     = 200 * time.Millisecond
	pushBackoffAttempts = 2
)

// queueService implements [QueueService] on top of the durable SQLite queue.
type queueService struct {
	queue      store.QueueRepository
	adapter    adapter.ServerAdapter
	monitor    ConnectivityMonitor
	validator  validators.Validator
	maxRetries int
	logger     *logger.Logger
}

// NewQueueService constructs a [QueueService]. monitor may be nil, in which
// case Drain treats the agent as online.
func NewQueueService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, maxRetries int, log *logger.Logger) QueueService {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	return &queueService{
		queue:      storages.Queue,
		adapter:    serverAdapter,
		monitor:    monitor,
		validator:  validators.NewMutationValidator(),
		maxRetries: maxRetries,
		logger:     log,
	}
}

func (s *queueService) Enqueue(ctx context.Context, entity models.Entity, action models.SyncAction, entityID string, data json.RawMessage) (models.SyncQueueItem, error) {
	log := logger.FromContext(ctx)

	item := models.SyncQueueItem{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Data:      data,
		CreatedAt: time.Now(),
	}

	if err := s.validator.Validate(ctx, item); err != nil {
		log.Err(err).Str("func", "*queueService.Enqueue").
			Str("entity", string(entity)).Str("action", string(action)).
			Msg("mutation rejected by validation")
		return models.SyncQueueItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	// delete carries no payload on the wire but the queue column is NOT NULL
	if item.Data == nil {
		item.Data = json.RawMessage(`{}`)
	}

	saved, err := s.queue.Enqueue(ctx, item)
	if err != nil {
		return models.SyncQueueItem{}, fmt.Errorf("enqueue mutation: %w", err)
	}

	log.Debug().Str("func", "*queueService.Enqueue").
		Str("entity", string(entity)).Str("action", string(action)).Int64("item_id", saved.ID).
		Msg("mutation queued")
	return saved, nil
}

func (s *queueService) ListPending(ctx context.Context) ([]models.SyncQueueItem, error) {
	return s.queue.ListPending(ctx)
}

func (s *queueService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.CountPending(ctx)
}

// Drain replays the queue in enqueue order. The aggregate result carries all
// per-item failures; the returned error is non-nil only when the queue itself
// cannot be read.
func (s *queueService) Drain(ctx context.Context) (models.DrainResult, error) {
	log := logger.FromContext(ctx)

	if s.monitor != nil && !s.monitor.IsOnline() {
		// no transport calls while offline
		return models.DrainResult{Errors: []string{"offline"}}, nil
	}

	items, err := s.queue.ListPending(ctx)
	if err != nil {
		return models.DrainResult{}, fmt.Errorf("list pending mutations: %w", err)
	}

	var result models.DrainResult
	for _, item := range items {
		pushErr := s.pushWithBackoff(ctx, item)
		if pushErr == nil {
			if err = s.queue.Remove(ctx, item.ID); err != nil {
				return result, fmt.Errorf("remove confirmed mutation %d: %w", item.ID, err)
			}
			result.Processed++
			continue
		}

		result.Failed++

		if item.RetryCount+1 >= s.maxRetries {
			// budget exhausted: drop so one poisoned item cannot wedge the queue
			if err = s.queue.Remove(ctx, item.ID); err != nil {
				return result, fmt.Errorf("drop exhausted mutation %d: %w", item.ID, err)
			}
			log.Error().Str("func", "*queueService.Drain").
				Int64("item_id", item.ID).Str("entity", string(item.Entity)).Str("action", string(item.Action)).
				Int("retry_count", item.RetryCount+1).
				Msg("mutation dropped after exhausting retry budget")
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s %s %s: dropped after %d attempts: %v", item.Action, item.Entity, item.EntityID, item.RetryCount+1, pushErr))
			continue
		}

		if err = s.queue.IncrementRetry(ctx, item.ID); err != nil {
			return result, fmt.Errorf("increment retry for mutation %d: %w", item.ID, err)
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s %s %s: %v", item.Action, item.Entity, item.EntityID, pushErr))
	}

	return result, nil
}

// pushWithBackoff performs one logical push attempt. Transient transport
// failures are retried in place with a short jittered fibonacci backoff;
// anything else fails immediately.
func (s *queueService) pushWithBackoff(ctx context.Context, item models.SyncQueueItem) error {
	backoff := retry.WithMaxRetries(pushBackoffAttempts, retry.WithJitterPercent(10, retry.NewFibonacci(pushBackoffBase)))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.adapter.Push(ctx, item)
		if err != nil && errors.Is(err, adapter.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}
