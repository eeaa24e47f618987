package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/memewatch/internal/domain"
)

func pairOn(chain string, liquidity float64) domain.RawPair {
	return domain.RawPair{
		ChainID:   chain,
		Liquidity: &domain.PairLiquidity{USD: liquidity},
	}
}

func TestSelectPicksHighestLiquidity(t *testing.T) {
	s := New(domain.ChainAll, 0)

	best, err := s.Select([]domain.RawPair{
		pairOn("solana", 500_000),
		pairOn("solana", 2_000_000),
		pairOn("ethereum", 1_000_000),
	})

	require.NoError(t, err)
	assert.Equal(t, 2_000_000.0, best.LiquidityUSD())
}

func TestSelectFirstMaximumWinsTies(t *testing.T) {
	s := New(domain.ChainAll, 0)

	first := pairOn("solana", 1_000_000)
	first.URL = "first"
	second := pairOn("base", 1_000_000)
	second.URL = "second"

	best, err := s.Select([]domain.RawPair{first, second})

	require.NoError(t, err)
	assert.Equal(t, "first", best.URL)
}

func TestSelectEmptyList(t *testing.T) {
	s := New(domain.ChainAll, 0)

	_, err := s.Select(nil)

	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestSelectChainFilterIsCaseInsensitive(t *testing.T) {
	s := New(domain.ChainSolana, 0)

	best, err := s.Select([]domain.RawPair{
		pairOn("Ethereum", 5_000_000),
		pairOn("SOLANA", 100_000),
	})

	require.NoError(t, err)
	assert.Equal(t, "SOLANA", best.ChainID)
}

func TestSelectChainMismatch(t *testing.T) {
	s := New(domain.ChainBase, 0)

	_, err := s.Select([]domain.RawPair{
		pairOn("solana", 1_000_000),
		pairOn("bsc", 1_000_000),
	})

	assert.ErrorIs(t, err, ErrChainMismatch)
}

func TestSelectMinLiquidityAdmission(t *testing.T) {
	t.Run("rejects below threshold", func(t *testing.T) {
		s := New(domain.ChainAll, 50_000)
		_, err := s.Select([]domain.RawPair{pairOn("solana", 10_000)})
		assert.ErrorIs(t, err, ErrLowLiquidity)
	})

	t.Run("admits at or above threshold", func(t *testing.T) {
		s := New(domain.ChainAll, 50_000)
		_, err := s.Select([]domain.RawPair{pairOn("solana", 50_000)})
		assert.NoError(t, err)
	})

	t.Run("zero threshold disables the filter", func(t *testing.T) {
		s := New(domain.ChainAll, 0)
		_, err := s.Select([]domain.RawPair{pairOn("solana", 1)})
		assert.NoError(t, err)
	})
}

func TestSelectMissingLiquidityReadsAsZero(t *testing.T) {
	s := New(domain.ChainAll, 0)

	withLiquidity := pairOn("solana", 100)
	noLiquidity := domain.RawPair{ChainID: "solana"}

	best, err := s.Select([]domain.RawPair{noLiquidity, withLiquidity})

	require.NoError(t, err)
	assert.Equal(t, 100.0, best.LiquidityUSD())
}
