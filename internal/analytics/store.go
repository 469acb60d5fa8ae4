package analytics

import "context"

// Store defines the interface for persisting analytics events from the
// stream. This is the separate analytics sink; it never touches the per-URL
// ring buffer.
type Store interface {
	SaveAccess(ctx context.Context, event *AccessEvent) error
	SaveLookupFailed(ctx context.Context, event *LookupFailedEvent) error
}
