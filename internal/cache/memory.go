package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vadiminshakov/memewatch/internal/domain"
)

type memoryEntry struct {
	rows   []domain.MarketRow
	expiry time.Time
}

// MemoryCache in-process ResultCache with per-entry TTL. At most one live
// entry exists per key; Set replaces wholesale.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewMemoryCache creates an in-memory cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]domain.MarketRow, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().After(entry.expiry) {
		return nil, ErrNotFound
	}

	// copy so callers cannot mutate the cached slice
	return append([]domain.MarketRow(nil), entry.rows...), nil
}

func (m *MemoryCache) Set(_ context.Context, key string, rows []domain.MarketRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		rows:   append([]domain.MarketRow(nil), rows...),
		expiry: m.now().Add(m.ttl),
	}

	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)

	return nil
}
