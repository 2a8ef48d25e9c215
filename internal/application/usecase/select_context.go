package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/domain/url"
	"github.com/bnema/ctxtree/internal/logging"
)

// ErrNoSelection is returned when none of the picked URLs is tracked.
var ErrNoSelection = errors.New("no tracked page selected")

// SelectContextUseCase hands the pages picked in the context picker to the
// chat context consumer.
type SelectContextUseCase struct {
	tracker *TrackContextUseCase
	sink    port.ContextSink
}

// NewSelectContextUseCase creates a new SelectContextUseCase.
func NewSelectContextUseCase(tracker *TrackContextUseCase, sink port.ContextSink) *SelectContextUseCase {
	return &SelectContextUseCase{
		tracker: tracker,
		sink:    sink,
	}
}

// SelectContextInput contains the picked URLs in any order.
type SelectContextInput struct {
	URLs []string
}

// Execute resolves the picked URLs against the tree and sends them to the sink.
// Unknown URLs are skipped. Items come out in forest pre-order.
func (uc *SelectContextUseCase) Execute(ctx context.Context, input SelectContextInput) (*entity.ContextSelection, error) {
	log := logging.FromContext(ctx)

	selection, err := uc.Resolve(input)
	if err != nil {
		return nil, err
	}

	if uc.sink == nil {
		return nil, fmt.Errorf("context sink not available")
	}
	if err := uc.sink.SendContext(ctx, selection); err != nil {
		log.Error().Err(err).Str("selection_id", selection.ID).Msg("context: sink rejected selection")
		return nil, fmt.Errorf("send context: %w", err)
	}

	log.Info().
		Str("selection_id", selection.ID).
		Int("items", len(selection.Items)).
		Int("requested", len(input.URLs)).
		Msg("context: selection sent")

	return selection, nil
}

// Resolve builds a selection without sending it.
func (uc *SelectContextUseCase) Resolve(input SelectContextInput) (*entity.ContextSelection, error) {
	wanted := make(map[string]struct{}, len(input.URLs))
	for _, raw := range input.URLs {
		wanted[url.Normalize(raw)] = struct{}{}
	}

	selection := &entity.ContextSelection{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	for _, root := range uc.tracker.Roots() {
		root.Walk(func(n *entity.ContextNode, depth int) bool {
			if _, ok := wanted[n.URL]; ok {
				selection.Items = append(selection.Items, entity.ContextSelectionItem{
					URL:        n.URL,
					Title:      n.Title,
					FaviconURL: n.FaviconURL,
					VisitedAt:  n.VisitedAt,
					Depth:      depth,
				})
			}
			return true
		})
	}

	if len(selection.Items) == 0 {
		return nil, ErrNoSelection
	}
	return selection, nil
}
