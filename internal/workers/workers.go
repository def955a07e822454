package workers

import (
	"context"
	"sync"
	"time"

	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/service"
)

// DefaultProbeInterval is the connectivity probe cadence applied when the
// configured value is not positive.
const DefaultProbeInterval = 30 * time.Second

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the agent's background workers: the periodic sync job
// and the connectivity probe that flips the online flag.
func NewWorkers(services *service.ClientServices, cfg config.ClientSync, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			&syncWorker{job: services.SyncJob, interval: cfg.Interval},
			newProbeWorker(services.Monitor, cfg.ProbeInterval, log),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop halts every worker that supports stopping, in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		if stoppable, ok := w.workers[i].(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}

// syncWorker adapts the service-layer sync job to the Worker interface.
type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

func (s *syncWorker) Run() {
	s.job.Start(context.Background(), s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}

// probeWorker pings the server on a fixed cadence and feeds the outcome into
// the connectivity monitor. The first probe fires immediately so the agent
// knows its connectivity state right after startup.
type probeWorker struct {
	monitor  service.ConnectivityMonitor
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newProbeWorker(monitor service.ConnectivityMonitor, interval time.Duration, log *logger.Logger) *probeWorker {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	return &probeWorker{
		monitor:  monitor,
		interval: interval,
		logger:   log,
	}
}

func (p *probeWorker) Run() {
	p.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		p.monitor.Probe(ctx)

		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.monitor.Probe(ctx)
			}
		}
	}()
}

func (p *probeWorker) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
