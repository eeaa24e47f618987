package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status coarse signal bucket driving alerting and display emphasis.
type Status string

const (
	StatusStrongBuy  Status = "Strong Buy"
	StatusDangerZone Status = "Danger Zone"
	StatusNeutral    Status = "Neutral"
	StatusObserving  Status = "Observing"
	StatusDataError  Status = "Data Error"
)

// Priority reports whether the status warrants proactive notification.
func (s Status) Priority() bool {
	return s == StatusStrongBuy || s == StatusDangerZone
}

func (s Status) String() string {
	return string(s)
}

// ScoreResult outcome of scoring a single pair. Score is always in [0,100].
type ScoreResult struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Score  int    `json:"score"`
}

// MarketRow per-symbol output of one aggregation pass. Rows are built
// fresh every pass and replaced wholesale, never mutated in place.
type MarketRow struct {
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
	Change24h    float64         `json:"change_24h"`
	Volume24h    float64         `json:"volume_24h"`
	LiquidityUSD float64         `json:"liquidity_usd"`
	Chain        string          `json:"chain"`
	Address      string          `json:"address"`
	PairURL      string          `json:"pair_url"`
	Signal       ScoreResult     `json:"signal"`
	CheckedAt    time.Time       `json:"checked_at"`
}

// PriceDisplay returns the price formatted for display, e.g. "$0.004217".
func (r MarketRow) PriceDisplay() string {
	return "$" + r.Price.StringFixed(6)
}

// ChangeDisplay returns the 24h change formatted for display, e.g. "-7.3%".
func (r MarketRow) ChangeDisplay() string {
	return fmt.Sprintf("%g%%", r.Change24h)
}

// VolumeDisplay returns the 24h volume formatted for display, e.g. "$2,000,000".
func (r MarketRow) VolumeDisplay() string {
	return "$" + groupThousands(r.Volume24h)
}

// LiquidityDisplay returns the liquidity formatted for display.
func (r MarketRow) LiquidityDisplay() string {
	return "$" + groupThousands(r.LiquidityUSD)
}

// RugCheckURL returns the RugCheck audit link for the row's contract.
func (r MarketRow) RugCheckURL() string {
	return "https://www.rugcheck.xyz/mainnet/token/" + r.Address
}

// BubbleMapsURL returns the BubbleMaps audit link for the row's contract.
func (r MarketRow) BubbleMapsURL() string {
	return "https://bubblemaps.io/token/" + r.Address
}

// groupThousands renders a non-negative value rounded to whole units with
// comma separators.
func groupThousands(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).String()

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out)
	}

	return string(out)
}
