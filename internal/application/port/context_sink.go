package port

import (
	"context"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// ContextSink receives the pages a user picked as chat context.
// The AI chat consumer behind it is outside the engine.
type ContextSink interface {
	// SendContext delivers a selection. Items are in forest pre-order.
	SendContext(ctx context.Context, selection *entity.ContextSelection) error
}
