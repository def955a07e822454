// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/models"
)

// connectivityMonitor implements [ConnectivityMonitor]. The flag starts
// offline; the first successful probe or explicit signal flips it.
type connectivityMonitor struct {
	adapter  adapter.ServerAdapter
	queue    store.QueueRepository
	metadata store.MetadataRepository
	logger   *logger.Logger

	online atomic.Bool

	mu   sync.RWMutex
	hook func(ctx context.Context)
}

// NewConnectivityMonitor constructs a [ConnectivityMonitor] that probes the
// server through serverAdapter's health endpoint.
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, storages *store.ClientStorages, log *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		adapter:  serverAdapter,
		queue:    storages.Queue,
		metadata: storages.Metadata,
		logger:   log,
	}
}

func (m *connectivityMonitor) IsOnline() bool {
	return m.online.Load()
}

func (m *connectivityMonitor) SetOnline(ctx context.Context, online bool) {
	was := m.online.Swap(online)
	if was == online {
		return
	}

	log := logger.FromContext(ctx)
	log.Info().Str("func", "*connectivityMonitor.SetOnline").Bool("online", online).
		Msg("connectivity changed")

	if !online {
		return
	}

	// reconnect transition
	if err := m.metadata.Set(ctx, models.MetaLastOnlineAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		log.Err(err).Str("func", "*connectivityMonitor.SetOnline").Msg("error recording reconnect time")
	}

	pending, err := m.queue.CountPending(ctx)
	if err != nil {
		log.Err(err).Str("func", "*connectivityMonitor.SetOnline").Msg("error counting pending mutations")
		return
	}
	if pending == 0 {
		return
	}

	m.mu.RLock()
	hook := m.hook
	m.mu.RUnlock()

	if hook != nil {
		log.Debug().Str("func", "*connectivityMonitor.SetOnline").Int("pending", pending).
			Msg("triggering sync after reconnect")
		go hook(context.WithoutCancel(ctx))
	}
}

func (m *connectivityMonitor) Probe(ctx context.Context) bool {
	err := m.adapter.Ping(ctx)
	m.SetOnline(ctx, err == nil)

	return err == nil
}

func (m *connectivityMonitor) OnReconnect(hook func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}
