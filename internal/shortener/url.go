package shortener

import (
	"errors"
	"time"
)

// Defaults mirror the production configuration. Tests override them through
// Config and NewGenerator to force collisions or tiny TTLs.
const (
	DefaultMinCodeLength = 4
	DefaultMaxCodeLength = 6
	DefaultMaxRetries    = 10

	// DefaultCacheTTL is how long a permanent mapping stays warm in the cache.
	DefaultCacheTTL = 14 * 24 * time.Hour

	// MaxMinutes bounds ephemeral lifetimes to one non-leap year.
	MaxMinutes = 525960

	MaxURLLength = 2048

	// MaxClickEvents caps the per-record analytics ring buffer.
	MaxClickEvents = 100
)

var (
	// ErrNotFound is returned when a code exists in neither the cache nor the store.
	ErrNotFound = errors.New("short url not found")

	// ErrCodeExists signals a uniqueness violation on insert. The store maps
	// its driver-level constraint error to this sentinel.
	ErrCodeExists = errors.New("short code exists")

	// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	ErrInvalidURL    = errors.New("invalid url")
	ErrInvalidExpiry = errors.New("expiry minutes out of range")

	// ErrCodeSpaceExhausted is returned when every generation attempt collided.
	// It maps to a server error: the code space is under pressure, the input is fine.
	ErrCodeSpaceExhausted = errors.New("unable to allocate a unique short code")
)

// URL is a permanent short link record. OriginalURL and Code are immutable
// once created; only Clicks and Analytics change, and only through RecordClick.
type URL struct {
	ID          int64
	Code        string
	OriginalURL string
	Clicks      int64
	Analytics   []ClickEvent
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClickEvent is a single privacy-stripped click record. It carries the
// referer host and nothing else: no IP, no user agent, no full referer URL.
type ClickEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	RefererDomain *string   `json:"referer_domain"`
}

// CacheKey returns the cache key for a code. The format is a compatibility
// contract shared by the ephemeral and warm-permanent paths.
func CacheKey(code string) string {
	return "shortened_url:" + code
}
