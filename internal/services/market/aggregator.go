// Package market orchestrates the fetch -> select -> score pipeline across
// the whole watch-list.
package market

import (
	"context"
	"time"

	"github.com/vadiminshakov/memewatch/internal/cache"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"github.com/vadiminshakov/memewatch/internal/services/signal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

type pairFetcher interface {
	SearchPairs(ctx context.Context, symbol string) ([]domain.RawPair, error)
}

type pairSelector interface {
	Select(pairs []domain.RawPair) (domain.RawPair, error)
}

// Aggregator produces one MarketRow per admissible watch-list symbol.
//
// Failure policy: fetch failures and selection rejections drop the symbol
// for the pass; an unparseable price on a selected pair is surfaced as a
// DataError row so the operator can see the bad upstream data.
type Aggregator struct {
	fetcher  pairFetcher
	selector pairSelector
	cache    cache.ResultCache
	symbols  []string
	chain    domain.Chain
	workers  int
	logger   *zap.Logger
}

// NewAggregator creates an aggregator over the given watch-list. workers <= 0
// falls back to a small default pool.
func NewAggregator(fetcher pairFetcher, sel pairSelector, resultCache cache.ResultCache,
	symbols []string, chain domain.Chain, workers int, logger *zap.Logger) *Aggregator {

	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Aggregator{
		fetcher:  fetcher,
		selector: sel,
		cache:    resultCache,
		symbols:  symbols,
		chain:    chain,
		workers:  workers,
		logger:   logger,
	}
}

// Rows returns the current MarketRow collection in watch-list order. A fresh
// cached result is returned without touching the upstream; otherwise every
// symbol is fetched through a bounded worker pool and the completed pass is
// written back to the cache in one atomic replace.
func (a *Aggregator) Rows(ctx context.Context) ([]domain.MarketRow, error) {
	key := cache.Key(a.symbols, a.chain)

	if rows, err := a.cache.Get(ctx, key); err == nil {
		a.logger.Debug("serving rows from cache", zap.String("key", key))
		return rows, nil
	}

	results := make([]*domain.MarketRow, len(a.symbols))
	checkedAt := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, symbol := range a.symbols {
		g.Go(func() error {
			row, ok := a.collect(gctx, symbol, checkedAt)
			if ok {
				results[i] = &row
			}

			// per-symbol failures never abort the batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// aborted pass: do not write a partial result to the cache
		return nil, err
	}

	rows := make([]domain.MarketRow, 0, len(a.symbols))
	for _, row := range results {
		if row != nil {
			rows = append(rows, *row)
		}
	}

	if err := a.cache.Set(ctx, key, rows); err != nil {
		a.logger.Warn("failed to write result cache", zap.Error(err))
	}

	return rows, nil
}

// Invalidate drops the cached result so the next Rows call refetches.
func (a *Aggregator) Invalidate(ctx context.Context) error {
	return a.cache.Invalidate(ctx)
}

func (a *Aggregator) collect(ctx context.Context, symbol string, checkedAt time.Time) (domain.MarketRow, bool) {
	pairs, err := a.fetcher.SearchPairs(ctx, symbol)
	if err != nil {
		a.logger.Warn("skipping symbol, fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return domain.MarketRow{}, false
	}

	best, err := a.selector.Select(pairs)
	if err != nil {
		a.logger.Debug("skipping symbol, no admissible pair", zap.String("symbol", symbol), zap.Error(err))
		return domain.MarketRow{}, false
	}

	result, price := signal.Evaluate(best)

	return domain.MarketRow{
		Symbol:       best.BaseToken.Symbol,
		Price:        price,
		Change24h:    best.Change24h(),
		Volume24h:    best.Volume24h(),
		LiquidityUSD: best.LiquidityUSD(),
		Chain:        best.ChainID,
		Address:      best.BaseToken.Address,
		PairURL:      best.URL,
		Signal:       result,
		CheckedAt:    checkedAt,
	}, true
}
