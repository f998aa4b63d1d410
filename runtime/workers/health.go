package workers

import (
	"context"
	"log/slog"
	"nutzy-site/observability"
	"sync/atomic"
	"time"
)

const DefaultHealthInterval = 15 * time.Second

// HealthWorker samples the process figures on an interval so health checks never
// wait on gopsutil.
type HealthWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
	latest   atomic.Pointer[observability.ProcessStats]
}

func NewHealthWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *HealthWorker {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthWorker{log: log, monitor: monitor, interval: interval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	w.sample()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

// Latest returns the last sample, false before the first one.
func (w *HealthWorker) Latest() (observability.ProcessStats, bool) {
	stats := w.latest.Load()
	if stats == nil {
		return observability.ProcessStats{}, false
	}
	return *stats, true
}

func (w *HealthWorker) sample() {
	stats := w.monitor.Snapshot()
	w.latest.Store(&stats)
	w.log.Debug("Process sampled",
		"status", stats.Status,
		"cpu", stats.CPUPercent,
		"mem", stats.MemPercent,
		"goroutines", stats.Goroutines,
	)
}
