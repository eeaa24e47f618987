package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"go.uber.org/zap"
)

type stubSnapshotSource struct {
	rows      []domain.MarketRow
	refreshed int
}

func (s *stubSnapshotSource) Snapshot() []domain.MarketRow { return s.rows }

func (s *stubSnapshotSource) Refresh(_ context.Context) error {
	s.refreshed++
	return nil
}

func TestHandleRows(t *testing.T) {
	source := &stubSnapshotSource{rows: []domain.MarketRow{
		{Symbol: "PEPE", Signal: domain.ScoreResult{Status: domain.StatusStrongBuy, Score: 70}},
	}}
	s := NewServer(":0", source, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleRows(rec, httptest.NewRequest(http.MethodGet, "/api/rows", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.MarketRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "PEPE", rows[0].Symbol)
}

func TestHandleRowsEmptySnapshot(t *testing.T) {
	s := NewServer(":0", &stubSnapshotSource{}, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleRows(rec, httptest.NewRequest(http.MethodGet, "/api/rows", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleIndexShowsNoDataState(t *testing.T) {
	s := NewServer(":0", &stubSnapshotSource{}, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data for this refresh cycle yet")
}

func TestHandleIndexRendersRows(t *testing.T) {
	source := &stubSnapshotSource{rows: []domain.MarketRow{
		{
			Symbol:  "PEPE",
			Address: "abc123",
			PairURL: "https://dexscreener.com/solana/abc123",
			Signal:  domain.ScoreResult{Label: "BUY: ACCUMULATION", Status: domain.StatusStrongBuy, Score: 70},
		},
	}}
	s := NewServer(":0", source, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "PEPE")
	assert.Contains(t, body, "BUY: ACCUMULATION")
	assert.Contains(t, body, "https://www.rugcheck.xyz/mainnet/token/abc123")
	assert.Contains(t, body, "https://bubblemaps.io/token/abc123")
}

func TestHandleRefresh(t *testing.T) {
	source := &stubSnapshotSource{}
	s := NewServer(":0", source, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, source.refreshed)
}

func TestHandleRefreshRejectsGet(t *testing.T) {
	source := &stubSnapshotSource{}
	s := NewServer(":0", source, zap.NewNop())

	rec := httptest.NewRecorder()
	s.handleRefresh(rec, httptest.NewRequest(http.MethodGet, "/api/refresh", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, source.refreshed)
}
