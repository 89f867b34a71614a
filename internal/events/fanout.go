package events

import (
	"context"
	"errors"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
)

// Fanout publishes every event to all of its publishers.
type Fanout []portssvc.EventPublisher

var _ portssvc.EventPublisher = Fanout(nil)

// Publish tries every publisher and joins their errors.
func (f Fanout) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
