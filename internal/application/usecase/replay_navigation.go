package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/logging"
)

// ReplayNavigationUseCase feeds coordinator events into the context tracker.
type ReplayNavigationUseCase struct {
	tracker *TrackContextUseCase
}

// NewReplayNavigationUseCase creates a new ReplayNavigationUseCase.
func NewReplayNavigationUseCase(tracker *TrackContextUseCase) *ReplayNavigationUseCase {
	return &ReplayNavigationUseCase{tracker: tracker}
}

// ReplayOutput counts what a replay did.
type ReplayOutput struct {
	Applied map[entity.NavigationEventKind]int
	Skipped int
	Stats   entity.ContextStats
}

// Execute applies events in order. Invalid events are skipped and counted,
// they never abort the replay.
func (uc *ReplayNavigationUseCase) Execute(ctx context.Context, events []entity.NavigationEvent) *ReplayOutput {
	log := logging.FromContext(ctx)
	out := &ReplayOutput{Applied: make(map[entity.NavigationEventKind]int)}

	for i := range events {
		if err := uc.Apply(ctx, events[i]); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("context: skipping event")
			out.Skipped++
			continue
		}
		out.Applied[events[i].Kind]++
	}

	out.Stats = uc.tracker.Stats()
	log.Debug().
		Int("events", len(events)).
		Int("skipped", out.Skipped).
		Int("nodes", out.Stats.Nodes).
		Int("roots", out.Stats.Roots).
		Msg("context: replay finished")
	return out
}

// Apply dispatches a single event. It matches port.NavigationEventHandler.
func (uc *ReplayNavigationUseCase) Apply(ctx context.Context, event entity.NavigationEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	switch event.Kind {
	case entity.NavigationEventNavigate:
		uc.tracker.RecordNavigation(ctx, NavigationInput{
			FromURL:    event.From,
			ToURL:      event.URL,
			Title:      event.Title,
			FaviconURL: event.FaviconURL,
		})
	case entity.NavigationEventTitle:
		uc.tracker.UpdateTitle(ctx, event.URL, event.Title)
	case entity.NavigationEventDelete:
		uc.tracker.Delete(ctx, event.URL)
	case entity.NavigationEventClear:
		uc.tracker.Clear(ctx)
	case entity.NavigationEventTracking:
		uc.tracker.SetTracking(ctx, *event.Enabled)
	default:
		return fmt.Errorf("unhandled event kind %q", event.Kind)
	}
	return nil
}
