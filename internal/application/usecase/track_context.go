package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/bnema/ctxtree/internal/domain/contexttree"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/logging"
)

// logURLMaxLen is the max length for URLs in log messages.
const logURLMaxLen = 60

// TrackContextUseCase records navigation into the context tree while context
// mode is on. Every call goes through one mutex because the tree invariants
// span the whole forest.
type TrackContextUseCase struct {
	mu           sync.Mutex
	builder      *contexttree.Builder
	tracking     bool
	defaultTitle string
}

// NewTrackContextUseCase creates a tracker.
// defaultTitle is recorded for navigations that arrive without a title.
func NewTrackContextUseCase(trackingEnabled bool, defaultTitle string) *TrackContextUseCase {
	return &TrackContextUseCase{
		builder:      contexttree.NewBuilder(),
		tracking:     trackingEnabled,
		defaultTitle: defaultTitle,
	}
}

// NavigationInput describes one observed page transition.
type NavigationInput struct {
	// FromURL is empty when the page was opened without a known origin.
	FromURL    string
	ToURL      string
	Title      string
	FaviconURL string
}

// RecordNavigation adds a transition to the tree.
// URLs are keyed exactly as given, so the same string reaches the page through
// UpdateTitle, Delete and Has. A whitespace-only origin counts as no origin.
// Returns PlacementIgnored when tracking is off, the destination is blank,
// or the destination is already tracked.
func (uc *TrackContextUseCase) RecordNavigation(ctx context.Context, input NavigationInput) contexttree.Placement {
	log := logging.FromContext(ctx)

	if strings.TrimSpace(input.ToURL) == "" {
		log.Debug().Msg("context: navigation without destination ignored")
		return contexttree.PlacementIgnored
	}

	title := input.Title
	if strings.TrimSpace(title) == "" {
		title = uc.defaultTitle
	}

	fromURL := input.FromURL
	if strings.TrimSpace(fromURL) == "" {
		fromURL = ""
	}

	uc.mu.Lock()
	if !uc.tracking {
		uc.mu.Unlock()
		return contexttree.PlacementIgnored
	}
	placement := uc.builder.AddNavigation(fromURL, input.ToURL, title, input.FaviconURL)
	uc.mu.Unlock()

	log.Debug().
		Str("from", logging.TruncateURL(fromURL, logURLMaxLen)).
		Str("to", logging.TruncateURL(input.ToURL, logURLMaxLen)).
		Stringer("placement", placement).
		Msg("context: navigation recorded")

	return placement
}

// UpdateTitle replaces the title of a tracked page once it resolves.
// Returns false when the page is not tracked.
func (uc *TrackContextUseCase) UpdateTitle(ctx context.Context, url, title string) bool {
	uc.mu.Lock()
	updated := uc.builder.UpdateNodeTitle(url, title)
	uc.mu.Unlock()

	if updated {
		logging.FromContext(ctx).Debug().
			Str("url", logging.TruncateURL(url, logURLMaxLen)).
			Str("title", title).
			Msg("context: title updated")
	}
	return updated
}

// Delete removes a page and everything reached from it.
// Returns the number of nodes removed.
func (uc *TrackContextUseCase) Delete(ctx context.Context, url string) int {
	uc.mu.Lock()
	removed := uc.builder.DeleteNode(url)
	uc.mu.Unlock()

	if removed > 0 {
		logging.FromContext(ctx).Info().
			Str("url", logging.TruncateURL(url, logURLMaxLen)).
			Int("removed", removed).
			Msg("context: subtree deleted")
	}
	return removed
}

// Clear discards the whole tree.
func (uc *TrackContextUseCase) Clear(ctx context.Context) {
	uc.mu.Lock()
	n := uc.builder.Len()
	uc.builder.Clear()
	uc.mu.Unlock()

	logging.FromContext(ctx).Info().Int("discarded", n).Msg("context: tree cleared")
}

// SetTracking flips context mode. Turning it off discards the tree so that
// turning it back on starts from an empty forest.
func (uc *TrackContextUseCase) SetTracking(ctx context.Context, enabled bool) {
	uc.mu.Lock()
	if uc.tracking == enabled {
		uc.mu.Unlock()
		return
	}
	uc.tracking = enabled
	discarded := 0
	if !enabled {
		discarded = uc.builder.Len()
		uc.builder.Clear()
	}
	uc.mu.Unlock()

	logging.FromContext(ctx).Info().
		Bool("enabled", enabled).
		Int("discarded", discarded).
		Msg("context: tracking toggled")
}

// IsTracking reports whether context mode is on.
func (uc *TrackContextUseCase) IsTracking() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.tracking
}

// Has reports whether the page is tracked.
func (uc *TrackContextUseCase) Has(url string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.builder.Node(url)
	return ok
}

// Node returns a deep copy of the tracked page and its subtree.
func (uc *TrackContextUseCase) Node(url string) (*entity.ContextNode, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	node, ok := uc.builder.Node(url)
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// Roots returns a deep copy of the forest roots.
func (uc *TrackContextUseCase) Roots() []*entity.ContextNode {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return cloneForest(uc.builder.Roots())
}

// AllNodes returns a deep copy of the forest flattened in pre-order.
func (uc *TrackContextUseCase) AllNodes() []*entity.ContextNode {
	roots := uc.Roots()
	nodes := make([]*entity.ContextNode, 0, len(roots))
	for _, root := range roots {
		root.Walk(func(n *entity.ContextNode, _ int) bool {
			nodes = append(nodes, n)
			return true
		})
	}
	return nodes
}

// Stats summarizes the current forest.
func (uc *TrackContextUseCase) Stats() entity.ContextStats {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.builder.Stats()
}

// Validate checks the tree invariants.
func (uc *TrackContextUseCase) Validate() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.builder.Validate()
}

func cloneForest(roots []*entity.ContextNode) []*entity.ContextNode {
	clones := make([]*entity.ContextNode, 0, len(roots))
	for _, root := range roots {
		clones = append(clones, root.Clone())
	}
	return clones
}
