// Package domain defines core data structures used throughout the watcher.
package domain

// BaseToken token side of a trading pair as reported by DexScreener.
type BaseToken struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}

// PairVolume trading volume buckets. Only the 24h bucket is used.
type PairVolume struct {
	H24 float64 `json:"h24"`
}

// PairPriceChange price change percentage buckets.
type PairPriceChange struct {
	H24 float64 `json:"h24"`
}

// PairLiquidity liquidity backing a pair's market depth.
type PairLiquidity struct {
	USD float64 `json:"usd"`
}

// RawPair a single trading pair from the DexScreener search endpoint.
// Numeric sub-objects may be absent in the upstream payload; accessors
// below read them with a zero default.
type RawPair struct {
	ChainID     string           `json:"chainId"`
	URL         string           `json:"url"`
	BaseToken   BaseToken        `json:"baseToken"`
	PriceUsd    string           `json:"priceUsd"`
	PriceChange *PairPriceChange `json:"priceChange"`
	Volume      *PairVolume      `json:"volume"`
	Liquidity   *PairLiquidity   `json:"liquidity"`
}

// Change24h returns the 24h price change percent, 0 when absent.
func (p *RawPair) Change24h() float64 {
	if p.PriceChange == nil {
		return 0
	}

	return p.PriceChange.H24
}

// Volume24h returns the 24h volume in quote currency, 0 when absent.
func (p *RawPair) Volume24h() float64 {
	if p.Volume == nil {
		return 0
	}

	return p.Volume.H24
}

// LiquidityUSD returns the USD liquidity, 0 when absent.
func (p *RawPair) LiquidityUSD() float64 {
	if p.Liquidity == nil {
		return 0
	}

	return p.Liquidity.USD
}
