package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Store with the same
// semantics as the PostgreSQL store: unique codes, atomic click recording,
// bounded analytics.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	byCode map[string]*shortener.URL
	byID   map[int64]*shortener.URL
}

// NewMemoryStore creates an in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[string]*shortener.URL),
		byID:   make(map[int64]*shortener.URL),
	}
}

func (m *MemoryStore) Insert(_ context.Context, originalURL, code string) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[code]; exists {
		return nil, shortener.ErrCodeExists
	}

	m.nextID++
	now := time.Now()

	rec := &shortener.URL{
		ID:          m.nextID,
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.byCode[code] = rec
	m.byID[rec.ID] = rec

	return cloneURL(rec), nil
}

func (m *MemoryStore) FindByCode(_ context.Context, code string) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return cloneURL(rec), nil
}

func (m *MemoryStore) RecordClick(_ context.Context, id int64, event shortener.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return shortener.ErrNotFound
	}

	rec.Clicks++
	rec.Analytics = append(rec.Analytics, event)

	if overflow := len(rec.Analytics) - shortener.MaxClickEvents; overflow > 0 {
		rec.Analytics = append([]shortener.ClickEvent(nil), rec.Analytics[overflow:]...)
	}

	rec.UpdatedAt = time.Now()

	return nil
}

func cloneURL(rec *shortener.URL) *shortener.URL {
	clone := *rec
	clone.Analytics = append([]shortener.ClickEvent(nil), rec.Analytics...)

	return &clone
}

// Compile-time check.
var _ shortener.Store = (*MemoryStore)(nil)
