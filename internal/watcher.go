package internal

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/memewatch/config"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"github.com/vadiminshakov/memewatch/internal/services/signal"
	"go.uber.org/zap"
)

type rowSource interface {
	Rows(ctx context.Context) ([]domain.MarketRow, error)
	Invalidate(ctx context.Context) error
}

type alertNotifier interface {
	Enabled() bool
	Notify(ctx context.Context, row domain.MarketRow) error
}

// Watcher runs the refresh loop: aggregate the watch-list, publish the
// snapshot for the presentation layer, and dispatch alerts for priority
// signals. Alerts repeat every cycle while a condition holds.
type Watcher struct {
	source   rowSource
	notifier alertNotifier
	conf     config.Config
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot []domain.MarketRow
}

// NewWatcher creates a watcher instance.
func NewWatcher(source rowSource, notifier alertNotifier, conf config.Config, logger *zap.Logger) *Watcher {
	return &Watcher{
		source:   source,
		notifier: notifier,
		conf:     conf,
		logger:   logger,
	}
}

// Run executes the watch loop until ctx is cancelled. The first pass runs
// immediately; later passes follow the refresh interval.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("starting watch loop",
		zap.Strings("watch_list", w.conf.WatchList),
		zap.String("chain", w.conf.Chain.String()),
		zap.Duration("refresh_interval", w.conf.RefreshInterval),
		zap.Bool("alerts_enabled", w.notifier.Enabled()))

	if err := w.pass(ctx); err != nil {
		w.logger.Error("initial pass failed", zap.Error(err))
	}

	ticker := time.NewTicker(w.conf.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("context done, stopping watch loop")
			return ctx.Err()
		case <-ticker.C:
			if err := w.pass(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.Error("refresh pass failed", zap.Error(err))
			}
		}
	}
}

// Refresh invalidates the result cache and runs one pass immediately.
func (w *Watcher) Refresh(ctx context.Context) error {
	if err := w.source.Invalidate(ctx); err != nil {
		return errors.Wrap(err, "failed to invalidate cache")
	}

	return w.pass(ctx)
}

// Snapshot returns the rows produced by the latest completed pass.
func (w *Watcher) Snapshot() []domain.MarketRow {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.snapshot
}

func (w *Watcher) pass(ctx context.Context) error {
	rows, err := w.source.Rows(ctx)
	if err != nil {
		return errors.Wrap(err, "aggregation pass failed")
	}

	w.mu.Lock()
	w.snapshot = rows
	w.mu.Unlock()

	priority := signal.Prioritize(rows)
	if len(priority) == 0 {
		w.logger.Debug("no priority signals this pass", zap.Int("rows", len(rows)))
		return nil
	}

	for _, row := range priority {
		w.logger.Info("priority signal",
			zap.String("symbol", row.Symbol),
			zap.String("status", row.Signal.Status.String()),
			zap.Int("score", row.Signal.Score))

		// delivery failures are operator-visible only, they never fail the pass
		if err := w.notifier.Notify(ctx, row); err != nil {
			w.logger.Error("alert delivery failed", zap.String("symbol", row.Symbol), zap.Error(err))
		}
	}

	return nil
}
