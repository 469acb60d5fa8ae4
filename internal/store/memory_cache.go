package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of shortener.Cache. Expired
// entries are dropped lazily on access. The clock is injectable so TTL expiry
// can be simulated in tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	clock   shortener.Clock
}

// NewMemoryCache creates an in-memory cache using the given clock.
func NewMemoryCache(clock shortener.Clock) *MemoryCache {
	if clock == nil {
		clock = shortener.RealClock{}
	}

	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		clock:   clock,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", shortener.ErrCacheMiss
	}

	if !entry.expiresAt.After(m.clock.Now()) {
		delete(m.entries, key)
		return "", shortener.ErrCacheMiss
	}

	return entry.value, nil
}

func (m *MemoryCache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = cacheEntry{
		value:     value,
		expiresAt: m.clock.Now().Add(ttl),
	}

	return nil
}

func (m *MemoryCache) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err != nil {
		return false, nil
	}

	return true, nil
}

// Compile-time check.
var _ shortener.Cache = (*MemoryCache)(nil)
