// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/service"
	"github.com/skids-health/skids-sync/internal/utils"
	"github.com/skids-health/skids-sync/internal/workers"
	"github.com/skids-health/skids-sync/models"
)

// App is the headless sync agent. It owns the agent service graph and the
// background workers, and is the single entry point the host application
// uses for local-first reads and writes.
type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	uuid     *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewApp assembles the agent from an already wired service graph and worker
// pool.
func NewApp(services *service.ClientServices, workers *workers.Workers, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("no client services provided")
	}
	if workers == nil {
		return nil, errors.New("no workers provided")
	}

	return &App{
		services: services,
		workers:  workers,
		uuid:     utils.NewUUIDGenerator(),
		logger:   log,
	}, nil
}

// Run starts the background workers and blocks until the process receives a
// termination signal. Workers are stopped before Run returns.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.workers.Run()
	a.logger.Info().Str("func", "*App.Run").Msg("sync agent started")

	<-ctx.Done()

	a.workers.Stop()
	a.logger.Info().Str("func", "*App.Run").Msg("sync agent stopped")

	return nil
}

// ── session ──────────────────────────────────────────────────────────────────

// Register creates an account on the server and starts a session.
func (a *App) Register(ctx context.Context, user models.User) (models.Token, error) {
	return a.services.Auth.Register(ctx, user)
}

// Login authenticates against the server and starts a session.
func (a *App) Login(ctx context.Context, user models.User) (models.Token, error) {
	return a.services.Auth.Login(ctx, user)
}

// SignOut ends the session and wipes all local data.
func (a *App) SignOut(ctx context.Context) error {
	return a.services.Auth.EndSession(ctx)
}

// ── local-first writes ───────────────────────────────────────────────────────

// CreateRecord stores a new record locally under a generated ID and queues
// the create for push. The returned record carries the assigned ID.
func (a *App) CreateRecord(ctx context.Context, entity models.Entity, payload json.RawMessage) (models.CachedRecord, error) {
	recordID := a.uuid.Generate()

	record, err := a.services.Cache.SaveRecord(ctx, entity, recordID, payload)
	if err != nil {
		return models.CachedRecord{}, fmt.Errorf("cache create: %w", err)
	}
	if _, err = a.services.Queue.Enqueue(ctx, entity, models.ActionCreate, recordID, payload); err != nil {
		return models.CachedRecord{}, fmt.Errorf("queue create: %w", err)
	}

	return record, nil
}

// UpdateRecord overwrites a record locally and queues the update for push.
func (a *App) UpdateRecord(ctx context.Context, entity models.Entity, recordID string, payload json.RawMessage) (models.CachedRecord, error) {
	record, err := a.services.Cache.SaveRecord(ctx, entity, recordID, payload)
	if err != nil {
		return models.CachedRecord{}, fmt.Errorf("cache update: %w", err)
	}
	if _, err = a.services.Queue.Enqueue(ctx, entity, models.ActionUpdate, recordID, payload); err != nil {
		return models.CachedRecord{}, fmt.Errorf("queue update: %w", err)
	}

	return record, nil
}

// DeleteRecord removes a record locally and queues the delete for push.
func (a *App) DeleteRecord(ctx context.Context, entity models.Entity, recordID string) error {
	if err := a.services.Cache.DeleteRecord(ctx, entity, recordID); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	if _, err := a.services.Queue.Enqueue(ctx, entity, models.ActionDelete, recordID, nil); err != nil {
		return fmt.Errorf("queue delete: %w", err)
	}

	return nil
}

// ── cached reads ─────────────────────────────────────────────────────────────

// GetRecord returns a single cached record.
func (a *App) GetRecord(ctx context.Context, entity models.Entity, recordID string) (models.CachedRecord, error) {
	return a.services.Cache.GetRecord(ctx, entity, recordID)
}

// GetAllRecords returns every cached record of one entity.
func (a *App) GetAllRecords(ctx context.Context, entity models.Entity) ([]models.CachedRecord, error) {
	return a.services.Cache.GetAllRecords(ctx, entity)
}

// GetRecordsByIndex returns cached records of one entity whose payload field
// equals value, e.g. appointments for one child.
func (a *App) GetRecordsByIndex(ctx context.Context, entity models.Entity, field string, value any) ([]models.CachedRecord, error) {
	return a.services.Cache.GetRecordsByIndex(ctx, entity, field, value)
}

// ── sync status ──────────────────────────────────────────────────────────────

// SyncNow triggers one pull+push cycle immediately.
func (a *App) SyncNow(ctx context.Context) (models.SyncResult, error) {
	return a.services.Coordinator.RunCycle(ctx)
}

// IsOnline reports the current connectivity flag.
func (a *App) IsOnline() bool {
	return a.services.Monitor.IsOnline()
}

// IsDataFresh reports whether every cached record's confirmed sync is within
// maxAge.
func (a *App) IsDataFresh(ctx context.Context, maxAge time.Duration) (bool, error) {
	return a.services.Cache.IsDataFresh(ctx, maxAge)
}

// PendingCount returns the number of mutations waiting for push.
func (a *App) PendingCount(ctx context.Context) (int, error) {
	return a.services.Queue.PendingCount(ctx)
}

// LastSyncAt returns the time of the most recent successful pull cycle, or
// nil before the first one.
func (a *App) LastSyncAt(ctx context.Context) (*time.Time, error) {
	return a.services.Coordinator.LastSyncAt(ctx)
}
