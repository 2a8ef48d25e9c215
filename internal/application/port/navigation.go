package port

import (
	"context"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// NavigationEventHandler consumes events emitted by the navigation coordinator.
type NavigationEventHandler func(ctx context.Context, event entity.NavigationEvent) error

// NavigationSource produces navigation events, either from a recording or live.
type NavigationSource interface {
	// Events returns every event currently available, in emission order.
	Events(ctx context.Context) ([]entity.NavigationEvent, error)

	// Follow delivers existing and future events to fn until ctx is done.
	Follow(ctx context.Context, fn NavigationEventHandler) error
}
