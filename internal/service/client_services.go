package service

import (
	"context"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/crypto"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
)

// ClientServices groups the agent-side services behind one value.
type ClientServices struct {
	Cache       CacheService
	Queue       QueueService
	Coordinator SyncCoordinator
	Monitor     ConnectivityMonitor
	Auth        ClientAuthService
	SyncJob     SyncJob
}

// NewClientServices wires the agent service graph: the monitor feeds the
// cache and queue, the coordinator sits on top of both, and the monitor's
// reconnect hook triggers a cycle when buffered mutations exist.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientSync, cipher crypto.PayloadCipher, log *logger.Logger) *ClientServices {
	monitor := NewConnectivityMonitor(serverAdapter, storages, log)
	cacheSvc := NewCacheService(storages, monitor, cipher, log)
	queueSvc := NewQueueService(storages, serverAdapter, monitor, cfg.MaxRetries, log)
	coordinator := NewSyncCoordinator(cacheSvc, queueSvc, serverAdapter, storages.Metadata, monitor, log)

	monitor.OnReconnect(func(ctx context.Context) {
		_, _ = coordinator.RunCycle(ctx)
	})

	return &ClientServices{
		Cache:       cacheSvc,
		Queue:       queueSvc,
		Coordinator: coordinator,
		Monitor:     monitor,
		Auth:        NewClientAuthService(serverAdapter, cacheSvc, log),
		SyncJob:     NewSyncJob(coordinator),
	}
}
