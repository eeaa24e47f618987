package domain

import (
	"fmt"
	"strings"
)

// Chain blockchain network hosting a trading pair.
type Chain string

const (
	// ChainAll disables chain filtering.
	ChainAll      Chain = "all"
	ChainSolana   Chain = "solana"
	ChainEthereum Chain = "ethereum"
	ChainBSC      Chain = "bsc"
	ChainBase     Chain = "base"
	ChainArbitrum Chain = "arbitrum"
)

// Chains lists every supported chain filter value.
var Chains = []Chain{ChainAll, ChainSolana, ChainEthereum, ChainBSC, ChainBase, ChainArbitrum}

// ParseChain parses a chain filter value case-insensitively.
func ParseChain(s string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Chains {
		if c == known {
			return known, nil
		}
	}

	return "", fmt.Errorf("unsupported chain %q", s)
}

// Matches reports whether a pair's chainId passes this filter.
// Comparison is case-insensitive; ChainAll matches everything.
func (c Chain) Matches(chainID string) bool {
	if c == ChainAll {
		return true
	}

	return strings.EqualFold(string(c), chainID)
}

func (c Chain) String() string {
	return string(c)
}
