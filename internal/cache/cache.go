// Package cache provides time-bounded memoization of aggregation results.
package cache

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/memewatch/internal/domain"
)

// ErrNotFound the key has no live entry (missing or expired).
var ErrNotFound = errors.New("cache entry not found")

// ResultCache memoizes whole aggregation passes. Writes replace the entry
// for a key atomically; partial results are never stored.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]domain.MarketRow, error)
	Set(ctx context.Context, key string, rows []domain.MarketRow) error
	// Invalidate drops every live entry.
	Invalidate(ctx context.Context) error
}

// Key builds the cache key for a watch-list and chain filter combination.
func Key(symbols []string, chain domain.Chain) string {
	return strings.Join(symbols, ",") + "|" + chain.String()
}
