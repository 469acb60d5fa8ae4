package analytics

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Recorder attaches click analytics to permanent records and emits events for
// the separate analytics stream. The ring-buffer append and the counter
// increment go through the store in one atomic operation; stream publishing
// is best effort and never fails a redirect.
type Recorder struct {
	store           shortener.Store
	publishAccessed messaging.Publish[AccessEvent]
	publishFailed   messaging.Publish[LookupFailedEvent]
	clock           shortener.Clock
	logger          *zap.Logger
}

// NewRecorder creates a recorder. A nil clock falls back to system time.
func NewRecorder(
	store shortener.Store,
	publishAccessed messaging.Publish[AccessEvent],
	publishFailed messaging.Publish[LookupFailedEvent],
	clock shortener.Clock,
	logger *zap.Logger,
) *Recorder {
	if clock == nil {
		clock = shortener.RealClock{}
	}

	return &Recorder{
		store:           store,
		publishAccessed: publishAccessed,
		publishFailed:   publishFailed,
		clock:           clock,
		logger:          logger,
	}
}

// RecordRedirect appends a privacy-stripped click event to the record and
// increments its counter, then emits an AccessEvent to the stream.
func (r *Recorder) RecordRedirect(ctx context.Context, rec *shortener.URL, meta shortener.RequestMeta) error {
	event := shortener.ClickEvent{
		Timestamp:     r.clock.Now().UTC(),
		RefererDomain: RefererDomain(meta.Referer),
	}

	if err := r.store.RecordClick(ctx, rec.ID, event); err != nil {
		return fmt.Errorf("record click for %q: %w", rec.Code, err)
	}

	access := &AccessEvent{
		EventID:         uuid.NewString(),
		Code:            rec.Code,
		RefererDomain:   event.RefererDomain,
		UserAgentFamily: UserAgentFamily(meta.UserAgent),
		OccurredAt:      event.Timestamp,
	}

	if err := r.publishAccessed(access); err != nil {
		r.logger.Error("failed to publish access event",
			zap.String("code", rec.Code),
			zap.Error(err),
		)
	}

	return nil
}

// RecordNotFound emits a LookupFailedEvent for a code that resolved to
// nothing. Best effort.
func (r *Recorder) RecordNotFound(_ context.Context, code string, _ shortener.RequestMeta) {
	event := &LookupFailedEvent{
		EventID:    uuid.NewString(),
		Code:       code,
		OccurredAt: r.clock.Now().UTC(),
	}

	if err := r.publishFailed(event); err != nil {
		r.logger.Error("failed to publish lookup failure event",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}

// RefererDomain extracts only the host from a referer URL. The path, query
// and everything else is dropped. Returns nil when there is no usable host.
func RefererDomain(referer string) *string {
	referer = strings.TrimSpace(referer)
	if referer == "" {
		return nil
	}

	u, err := url.Parse(referer)
	if err != nil {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil
	}

	return &host
}

// Compile-time check.
var _ shortener.ClickRecorder = (*Recorder)(nil)
