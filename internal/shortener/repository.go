package shortener

import (
	"context"
	"time"
)

// Store persists permanent URL records. Implementations must enforce code
// uniqueness on insert and make RecordClick atomic: N concurrent redirects to
// the same code yield exactly N increments and N appended events.
type Store interface {
	// Insert creates a permanent record. Returns ErrCodeExists when the code
	// is already taken.
	Insert(ctx context.Context, originalURL, code string) (*URL, error)

	// FindByCode returns the record for a code, or ErrNotFound.
	FindByCode(ctx context.Context, code string) (*URL, error)

	// RecordClick increments the click counter and appends the event to the
	// analytics ring buffer in a single atomic operation, evicting the oldest
	// entries beyond MaxClickEvents.
	RecordClick(ctx context.Context, id int64, event ClickEvent) error
}

// Cache is a TTL key/value store. It accelerates permanent lookups and is the
// only storage for ephemeral mappings.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	Put(ctx context.Context, key, value string, ttl time.Duration) error

	Has(ctx context.Context, key string) (bool, error)
}

// ClickRecorder receives the outcome of resolutions. RecordRedirect must be
// backed by an atomic store update; RecordNotFound is observability only.
type ClickRecorder interface {
	RecordRedirect(ctx context.Context, rec *URL, meta RequestMeta) error
	RecordNotFound(ctx context.Context, code string, meta RequestMeta)
}
