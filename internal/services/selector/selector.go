// Package selector reduces a symbol's pair list to one representative pair.
package selector

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/memewatch/internal/domain"
)

var (
	// ErrNoPairs no pairs were reported upstream for the symbol.
	ErrNoPairs = errors.New("no pairs found")
	// ErrChainMismatch no pair survived the chain filter.
	ErrChainMismatch = errors.New("no pairs on the selected chain")
	// ErrLowLiquidity the best pair is below the admission threshold.
	ErrLowLiquidity = errors.New("liquidity below admission threshold")
)

// Selector picks the most liquid pair after chain filtering.
type Selector struct {
	chain           domain.Chain
	minLiquidityUSD float64
}

// New creates a Selector. minLiquidityUSD <= 0 disables the admission filter.
func New(chain domain.Chain, minLiquidityUSD float64) *Selector {
	return &Selector{chain: chain, minLiquidityUSD: minLiquidityUSD}
}

// Select applies the chain filter and returns the pair with the highest USD
// liquidity, first maximum winning on ties. Missing liquidity reads as 0.
func (s *Selector) Select(pairs []domain.RawPair) (domain.RawPair, error) {
	if len(pairs) == 0 {
		return domain.RawPair{}, ErrNoPairs
	}

	best := -1
	for i := range pairs {
		if !s.chain.Matches(pairs[i].ChainID) {
			continue
		}
		if best < 0 || pairs[i].LiquidityUSD() > pairs[best].LiquidityUSD() {
			best = i
		}
	}

	if best < 0 {
		return domain.RawPair{}, ErrChainMismatch
	}

	if s.minLiquidityUSD > 0 && pairs[best].LiquidityUSD() < s.minLiquidityUSD {
		return domain.RawPair{}, ErrLowLiquidity
	}

	return pairs[best], nil
}
