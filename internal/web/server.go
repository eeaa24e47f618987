// Package web serves the latest market snapshot over HTTP. It renders
// pipeline output only; no scoring or alerting logic lives here.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/vadiminshakov/memewatch/internal/domain"
	"go.uber.org/zap"
)

type snapshotSource interface {
	Snapshot() []domain.MarketRow
	Refresh(ctx context.Context) error
}

// Server exposes HTTP endpoints serving the HTML table and a JSON API.
type Server struct {
	Addr   string
	Source snapshotSource
	logger *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, source snapshotSource, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Source: source, logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/rows", s.handleRows)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.Source.Snapshot()); err != nil {
		s.logger.Error("failed to render index", zap.Error(err))
	}
}

func (s *Server) handleRows(w http.ResponseWriter, _ *http.Request) {
	rows := s.Source.Snapshot()
	if rows == nil {
		rows = []domain.MarketRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		s.logger.Error("failed to encode rows", zap.Error(err))
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.Source.Refresh(r.Context()); err != nil {
		s.logger.Error("forced refresh failed", zap.Error(err))
		http.Error(w, "refresh failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Meme-Watch</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #111; color: #eee; }
table { border-collapse: collapse; width: 100%; }
th, td { padding: 0.5rem 0.75rem; border-bottom: 1px solid #333; text-align: left; }
.priority { font-weight: bold; color: #ffc107; }
.muted { color: #888; }
</style>
</head>
<body>
<h1>Meme-Watch</h1>
<form method="POST" action="/api/refresh"><button type="submit">Force Refresh &amp; Scan</button></form>
{{if .}}
<table>
<tr><th>Token</th><th>Score</th><th>Signal</th><th>Status</th><th>Price</th><th>24h</th><th>Volume</th><th>Liquidity</th><th>Audit</th></tr>
{{range .}}
<tr{{if .Signal.Status.Priority}} class="priority"{{end}}>
<td><a href="{{.PairURL}}">{{.Symbol}}</a></td>
<td>{{.Signal.Score}}</td>
<td>{{.Signal.Label}}</td>
<td>{{.Signal.Status}}</td>
<td>{{.PriceDisplay}}</td>
<td>{{.ChangeDisplay}}</td>
<td>{{.VolumeDisplay}}</td>
<td>{{.LiquidityDisplay}}</td>
<td><a href="{{.RugCheckURL}}">RugCheck</a> | <a href="{{.BubbleMapsURL}}">BubbleMaps</a></td>
</tr>
{{end}}
</table>
{{else}}
<p class="muted">No data for this refresh cycle yet.</p>
{{end}}
<p class="muted">Disclaimer: not financial advice. Always DYOR.</p>
</body>
</html>
`))
