// Package signal derives a heuristic trade signal and trust score from a
// pair's 24h change, volume and liquidity. The score is an explicit
// heuristic, not a prediction.
package signal

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memewatch/internal/domain"
)

const (
	baseScore = 50

	// volume above liquidity means the pool is turning over fast.
	volumeOverLiquidityBonus = 20

	// deep pools are harder to manipulate.
	liquidityFloorUSD   = 1_500_000
	liquidityFloorBonus = 20

	// accumulation-during-dip band: moderate drawdown with volume
	// outrunning liquidity by a clear multiple.
	dipLowerBound     = -15
	dipUpperBound     = -5
	dipVolumeMultiple = 1.5

	dangerChangeThreshold = 50
	neutralLowerBound     = -5
	neutralUpperBound     = 15
)

const dataErrorLabel = "DATA ERROR"

// Score maps a (24h change %, 24h volume, USD liquidity) triple to a signal.
// Pure and deterministic; the score is always clamped to [0,100].
func Score(change24h, volume24h, liquidityUSD float64) domain.ScoreResult {
	score := baseScore
	if volume24h > liquidityUSD {
		score += volumeOverLiquidityBonus
	}
	if liquidityUSD > liquidityFloorUSD {
		score += liquidityFloorBonus
	}
	score = clamp(score)

	switch {
	case change24h >= dipLowerBound && change24h <= dipUpperBound && volume24h > liquidityUSD*dipVolumeMultiple:
		return domain.ScoreResult{Label: "BUY: ACCUMULATION", Status: domain.StatusStrongBuy, Score: score}
	case change24h > dangerChangeThreshold:
		return domain.ScoreResult{Label: "SELL: TAKE PROFIT", Status: domain.StatusDangerZone, Score: score}
	case change24h > neutralLowerBound && change24h < neutralUpperBound:
		return domain.ScoreResult{Label: "HOLD: CONSOLIDATION", Status: domain.StatusNeutral, Score: score}
	default:
		return domain.ScoreResult{Label: "WAIT: VOLATILITY", Status: domain.StatusObserving, Score: score}
	}
}

// Evaluate scores a selected pair and parses its USD price. An unparseable
// price yields a DataError result with score 0 and a zero price; the error
// never propagates.
func Evaluate(pair domain.RawPair) (domain.ScoreResult, decimal.Decimal) {
	price, err := decimal.NewFromString(pair.PriceUsd)
	if err != nil {
		return domain.ScoreResult{Label: dataErrorLabel, Status: domain.StatusDataError, Score: 0}, decimal.Zero
	}

	return Score(pair.Change24h(), pair.Volume24h(), pair.LiquidityUSD()), price
}

// Prioritize returns the order-preserving subset of rows whose status
// warrants proactive notification.
func Prioritize(rows []domain.MarketRow) []domain.MarketRow {
	var priority []domain.MarketRow
	for _, row := range rows {
		if row.Signal.Status.Priority() {
			priority = append(priority, row)
		}
	}

	return priority
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}

	return score
}
