package runtime

import (
	"context"
	"log/slog"
	"nutzy-site/contract"
	"nutzy-site/runtime/workers"
	"sync"
	"time"
)

// Orchestrator primes the content stores and keeps them fresh under supervision.
type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	supervisor      contract.ISupervisor
	loaders         []contract.Loader
	extra           []contract.Worker
	refreshInterval time.Duration
	cancel          context.CancelFunc
	done            chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, refreshInterval time.Duration, loaders ...contract.Loader) *Orchestrator {
	return &Orchestrator{
		log:             log,
		supervisor:      supervisor,
		loaders:         loaders,
		refreshInterval: refreshInterval,
	}
}

// Add registers additional workers started alongside the refresh worker.
func (o *Orchestrator) Add(worker ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extra = append(o.extra, worker...)
}

// Prime runs every loader once. A failing collection is served as unavailable
// until a later refresh succeeds; it never aborts startup.
func (o *Orchestrator) Prime(ctx context.Context) {
	workers.NewRefreshWorker(o.log, o.refreshInterval, o.loaders...).RefreshAll(ctx)
}

// Start launches the supervised workers and returns immediately.
func (o *Orchestrator) Start(ctx context.Context) {
	// 1. Preparation
	refresh := workers.NewRefreshWorker(o.log, o.refreshInterval, o.loaders...)

	// 2. Registration
	o.mu.Lock()
	o.supervisor.Add(refresh)
	o.supervisor.Add(o.extra...)
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.done = make(chan struct{})
	done := o.done
	o.mu.Unlock()

	// 3. Execution
	o.log.Info("Starting supervised workers", "refresh_interval", o.refreshInterval)
	go func() {
		defer close(done)
		o.supervisor.Run(runCtx)
	}()
}

// Stop cancels the workers and waits for them to return.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.supervisor.Stop()
	if done != nil {
		<-done
	}
}
