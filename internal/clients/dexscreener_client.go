// Package clients contains thin wrappers around external APIs.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.dexscreener.com/latest/dex/search"
	requestTimeout = 10 * time.Second

	// DexScreener is a public API without keys; stay well under its
	// documented 300 req/min limit.
	requestsPerSecond = 4
)

// DexScreenerClient queries the DexScreener search endpoint for trading pairs.
type DexScreenerClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type searchResponse struct {
	Pairs []domain.RawPair `json:"pairs"`
}

// NewDexScreenerClient creates a client with a bounded request timeout and
// a shared rate limiter across all symbols.
func NewDexScreenerClient() *DexScreenerClient {
	return &DexScreenerClient{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// NewDexScreenerClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at a fake upstream.
func NewDexScreenerClientWithBaseURL(baseURL string) *DexScreenerClient {
	c := NewDexScreenerClient()
	c.baseURL = baseURL

	return c
}

// SearchPairs returns all pairs known upstream for the symbol. An absent or
// empty "pairs" field is a valid zero-result answer, not an error.
func (c *DexScreenerClient) SearchPairs(ctx context.Context, symbol string) ([]domain.RawPair, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", symbol)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "dexscreener request failed for %s", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dexscreener returned status %d for %s", resp.StatusCode, symbol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dexscreener response for %s", symbol)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrapf(err, "malformed dexscreener response for %s", symbol)
	}

	return result.Pairs, nil
}
