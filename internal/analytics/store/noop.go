package store

import (
	"context"

	"github.com/serroba/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events. Used
// when no analytics database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveAccess(_ context.Context, event *analytics.AccessEvent) error {
	n.logger.Info("access event received",
		zap.String("code", event.Code),
		zap.String("user_agent_family", event.UserAgentFamily),
		zap.Time("occurred_at", event.OccurredAt),
	)

	return nil
}

func (n *Noop) SaveLookupFailed(_ context.Context, event *analytics.LookupFailedEvent) error {
	n.logger.Info("lookup failure event received",
		zap.String("code", event.Code),
		zap.Time("occurred_at", event.OccurredAt),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
