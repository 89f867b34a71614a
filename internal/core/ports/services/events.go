package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// EventPublisher delivers marketplace events. Implementations must not block for long;
// callers treat delivery as best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventSubscriber lets live clients follow a stream of events.
type EventSubscriber interface {
	// Subscribe returns a channel of events for stream and a function that ends the subscription.
	Subscribe(stream string) (<-chan domain.Event, func())
}
