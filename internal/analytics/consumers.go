package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumerGroup wires one consumer per analytics topic, all persisting to
// the given store.
func NewConsumerGroup(subscriber message.Subscriber, store Store, logger *zap.Logger) *messaging.ConsumerGroup {
	group := messaging.NewConsumerGroup(subscriber, logger)

	group.Add(messaging.NewConsumer(subscriber, TopicURLAccessed,
		func(ctx context.Context, event *AccessEvent) error {
			return store.SaveAccess(ctx, event)
		},
		logger,
	))

	group.Add(messaging.NewConsumer(subscriber, TopicLookupFailed,
		func(ctx context.Context, event *LookupFailedEvent) error {
			return store.SaveLookupFailed(ctx, event)
		},
		logger,
	))

	return group
}
