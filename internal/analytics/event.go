package analytics

import "time"

// Topics for the analytics stream.
const (
	TopicURLAccessed  = "url.accessed"
	TopicLookupFailed = "url.lookup_failed"
)

// AccessEvent is emitted on every permanent redirect. It feeds the separate
// analytics table, not the per-record ring buffer, and carries only
// privacy-stripped fields: referer host and a coarse user-agent family.
// Client IPs and raw user agents never enter an event.
type AccessEvent struct {
	EventID         string    `json:"event_id"`
	Code            string    `json:"code"`
	RefererDomain   *string   `json:"referer_domain,omitempty"`
	UserAgentFamily string    `json:"user_agent_family,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// LookupFailedEvent is emitted when a code resolves to nothing: unknown,
// expired, or failing revalidation. Observability only; it has no effect on
// the resolution outcome.
type LookupFailedEvent struct {
	EventID    string    `json:"event_id"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}
