package contexttree

import (
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/domain/url"
)

// Placement describes what AddNavigation did with a destination URL.
type Placement int

const (
	// PlacementIgnored means the destination was already tracked.
	PlacementIgnored Placement = iota
	// PlacementRoot means the destination became a new forest root.
	PlacementRoot
	// PlacementChild means the destination was attached under its origin.
	PlacementChild
)

// String implements fmt.Stringer.
func (p Placement) String() string {
	switch p {
	case PlacementRoot:
		return "root"
	case PlacementChild:
		return "child"
	default:
		return "ignored"
	}
}

// Builder ingests navigation events into a Store and serves read queries.
type Builder struct {
	store *Store
}

// NewBuilder creates a builder over an empty store.
func NewBuilder() *Builder {
	return &Builder{store: NewStore()}
}

// AddNavigation records a transition from fromURL to toURL.
//
// fromURL may be empty when the page was opened without a known origin.
// The destination becomes a child of the origin only when the origin is
// tracked and both URLs share a scheme://host domain key; otherwise it becomes
// a new root. A destination that is already tracked is left where it is.
func (b *Builder) AddNavigation(fromURL, toURL, toTitle, faviconURL string) Placement {
	to := url.Normalize(toURL)
	if b.store.Has(to) {
		return PlacementIgnored
	}

	node := entity.NewContextNode(to, toTitle, faviconURL)

	if fromURL != "" {
		from := url.Normalize(fromURL)
		if url.SameDomain(from, to) && b.store.Has(from) {
			if b.store.InsertChild(from, node) {
				return PlacementChild
			}
			return PlacementIgnored
		}
	}

	if b.store.InsertRoot(node) {
		return PlacementRoot
	}
	return PlacementIgnored
}

// UpdateNodeTitle overwrites the title of a tracked node.
// Returns false when the URL is unknown.
func (b *Builder) UpdateNodeTitle(rawURL, title string) bool {
	node, ok := b.store.Get(url.Normalize(rawURL))
	if !ok {
		return false
	}
	node.Title = title
	return true
}

// DeleteNode removes a node and its whole subtree.
// Returns the number of nodes removed, 0 when the URL is unknown.
func (b *Builder) DeleteNode(rawURL string) int {
	return b.store.Remove(url.Normalize(rawURL))
}

// Node looks a tracked node up by URL.
func (b *Builder) Node(rawURL string) (*entity.ContextNode, bool) {
	return b.store.Get(url.Normalize(rawURL))
}

// Roots returns the forest roots in insertion order.
func (b *Builder) Roots() []*entity.ContextNode {
	return b.store.Roots()
}

// AllNodes flattens the forest in pre-order: each root, then its children
// in insertion order, recursively.
func (b *Builder) AllNodes() []*entity.ContextNode {
	nodes := make([]*entity.ContextNode, 0, b.store.Len())
	for _, root := range b.store.roots {
		root.Walk(func(n *entity.ContextNode, _ int) bool {
			nodes = append(nodes, n)
			return true
		})
	}
	return nodes
}

// Len returns the number of tracked nodes.
func (b *Builder) Len() int {
	return b.store.Len()
}

// Stats summarizes the forest shape.
func (b *Builder) Stats() entity.ContextStats {
	stats := entity.ContextStats{Roots: len(b.store.roots)}
	for _, root := range b.store.roots {
		root.Walk(func(_ *entity.ContextNode, depth int) bool {
			stats.Nodes++
			if depth > stats.MaxDepth {
				stats.MaxDepth = depth
			}
			return true
		})
	}
	return stats
}

// Clear discards every node.
func (b *Builder) Clear() {
	b.store.Clear()
}
