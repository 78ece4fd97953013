package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/climawatch/news-service/app/news"
)

// Cache names. Each holds an independent TTL-bounded article set.
const (
	Primary   = "primary"
	Secondary = "secondary"
	Processed = "processed"
	Events    = "events"
)

// Names lists all cache names in a fixed order.
var Names = []string{Primary, Secondary, Processed, Events}

// FetchFunc produces a fresh article set for a cache.
type FetchFunc func(ctx context.Context) ([]news.Article, error)

type entry struct {
	data      []news.Article
	timestamp time.Time
	ttl       time.Duration
}

// valid reports whether the entry can be served. An empty entry is
// never valid regardless of age, so a source returning zero results
// never sticks as a cached empty state.
func (e *entry) valid(now time.Time) bool {
	return len(e.data) > 0 && now.Sub(e.timestamp) < e.ttl
}

// EntryStatus describes one cache for diagnostics.
type EntryStatus struct {
	Size       int     `json:"size"`
	Valid      bool    `json:"valid"`
	AgeSeconds float64 `json:"ageSeconds"`
	TTLSeconds float64 `json:"ttlSeconds"`
}

// Manager owns the four named caches. Refreshes run under singleflight
// keyed by cache name, so concurrent misses share one fetch.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
	now     func() time.Time
}

// NewManager creates a manager with the given TTL per cache name.
func NewManager(ttls map[string]time.Duration) *Manager {
	entries := make(map[string]*entry, len(ttls))
	for name, ttl := range ttls {
		entries[name] = &entry{ttl: ttl}
	}

	return &Manager{
		entries: entries,
		now:     time.Now,
	}
}

// GetOrFetch returns the cached article set for name, refreshing it
// via fetch when invalid. At most one fetch per name is in flight; the
// cache is replaced wholesale on success.
func (m *Manager) GetOrFetch(ctx context.Context, name string, fetch FetchFunc) ([]news.Article, error) {
	if data, ok := m.get(name); ok {
		return data, nil
	}

	result, err, _ := m.group.Do(name, func() (interface{}, error) {
		// A concurrent caller may have refreshed while this one waited
		// on the flight.
		if data, ok := m.get(name); ok {
			return data, nil
		}

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		m.set(name, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]news.Article), nil
}

// Invalidate clears one cache. Unknown names are ignored.
func (m *Manager) Invalidate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[name]; ok {
		e.data = nil
		e.timestamp = time.Time{}
	}
}

// InvalidateAll clears every cache.
func (m *Manager) InvalidateAll() {
	for _, name := range Names {
		m.Invalidate(name)
	}
}

// Status reports the state of every cache.
func (m *Manager) Status() map[string]EntryStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	status := make(map[string]EntryStatus, len(m.entries))
	for name, e := range m.entries {
		age := 0.0
		if !e.timestamp.IsZero() {
			age = now.Sub(e.timestamp).Seconds()
		}
		status[name] = EntryStatus{
			Size:       len(e.data),
			Valid:      e.valid(now),
			AgeSeconds: age,
			TTLSeconds: e.ttl.Seconds(),
		}
	}
	return status
}

// Has reports whether name is a known cache.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[name]
	return ok
}

func (m *Manager) get(name string) ([]news.Article, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok || !e.valid(m.now()) {
		return nil, false
	}
	return e.data, true
}

func (m *Manager) set(name string, data []news.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[name]; ok {
		e.data = data
		e.timestamp = m.now()
	}
}
