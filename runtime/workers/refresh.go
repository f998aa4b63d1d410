package workers

import (
	"context"
	"log/slog"
	"nutzy-site/contract"
	"time"
)

const DefaultRefreshInterval = 5 * time.Minute

// RefreshWorker reloads every content collection on a fixed interval.
// A failing load is logged and retried at the next tick; the loader already
// swapped in an unavailable snapshot.
type RefreshWorker struct {
	log      *slog.Logger
	loaders  []contract.Loader
	interval time.Duration
}

func NewRefreshWorker(log *slog.Logger, interval time.Duration, loaders ...contract.Loader) *RefreshWorker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshWorker{log: log, loaders: loaders, interval: interval}
}

func (w *RefreshWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping content refresh")
			return nil
		case <-ticker.C:
			w.RefreshAll(ctx)
		}
	}
}

// RefreshAll runs every loader once, in order.
func (w *RefreshWorker) RefreshAll(ctx context.Context) {
	for _, l := range w.loaders {
		if ctx.Err() != nil {
			return
		}
		report, err := l.Load(ctx)
		if err != nil {
			w.log.Error("Content refresh failed", "loader", l.Name(), "error", err)
			continue
		}
		w.log.Info("Content refreshed",
			"loader", l.Name(),
			"loaded", report.Loaded,
			"skipped", report.Skipped,
			"changed", len(report.Changed),
			"removed", len(report.Removed),
		)
	}
}
