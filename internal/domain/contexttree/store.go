// Package contexttree builds the forest of pages a user visited while context
// tracking is on. Nodes are keyed by normalized URL and attached under the
// page they were reached from when both share a domain.
//
// The package is not safe for concurrent use. Callers that mutate a Builder
// from several goroutines must serialize every call behind one lock.
package contexttree

import (
	"slices"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// Store owns the identity map and the ordered forest roots.
// The map is the single authority on node existence; roots and children
// index the same node instances.
type Store struct {
	nodes map[string]*entity.ContextNode
	// parents maps a node URL to its parent URL, "" for roots.
	// Non-owning index so removal does not have to search the forest.
	parents map[string]string
	roots   []*entity.ContextNode
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nodes:   make(map[string]*entity.ContextNode),
		parents: make(map[string]string),
	}
}

// Clear discards every node and resets to an empty forest.
func (s *Store) Clear() {
	s.nodes = make(map[string]*entity.ContextNode)
	s.parents = make(map[string]string)
	s.roots = nil
}

// Has reports whether a node exists for the normalized URL.
func (s *Store) Has(url string) bool {
	_, ok := s.nodes[url]
	return ok
}

// Get returns the node for the normalized URL.
func (s *Store) Get(url string) (*entity.ContextNode, bool) {
	node, ok := s.nodes[url]
	return node, ok
}

// Len returns the number of known nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Roots returns the forest roots in insertion order.
// The slice is a copy; the nodes are shared.
func (s *Store) Roots() []*entity.ContextNode {
	roots := make([]*entity.ContextNode, len(s.roots))
	copy(roots, s.roots)
	return roots
}

// ParentOf returns the parent URL of a node, or "" for roots.
// ok is false when the node is unknown.
func (s *Store) ParentOf(url string) (parent string, ok bool) {
	parent, ok = s.parents[url]
	return parent, ok
}

// InsertRoot appends a brand-new node as a forest root.
// Returns false without changes if the URL is already known.
func (s *Store) InsertRoot(node *entity.ContextNode) bool {
	if s.Has(node.URL) {
		return false
	}
	s.nodes[node.URL] = node
	s.parents[node.URL] = ""
	s.roots = append(s.roots, node)
	return true
}

// InsertChild appends a brand-new node as the last child of a known parent.
// Returns false without changes if the parent is unknown, the URL is already
// known, or the parent already holds a child with that URL.
func (s *Store) InsertChild(parentURL string, node *entity.ContextNode) bool {
	parent, ok := s.nodes[parentURL]
	if !ok || s.Has(node.URL) || parent.HasChild(node.URL) {
		return false
	}
	s.nodes[node.URL] = node
	s.parents[node.URL] = parentURL
	parent.Children = append(parent.Children, node)
	return true
}

// Remove detaches the node from wherever it is attached and forgets it
// together with its whole subtree. Returns the number of nodes removed.
func (s *Store) Remove(url string) int {
	node, ok := s.nodes[url]
	if !ok {
		return 0
	}

	parentURL, _ := s.ParentOf(url)
	if parentURL == "" {
		s.roots = removeNode(s.roots, url)
	} else if parent, ok := s.nodes[parentURL]; ok {
		parent.Children = removeNode(parent.Children, url)
	}

	removed := 0
	node.Walk(func(n *entity.ContextNode, _ int) bool {
		delete(s.nodes, n.URL)
		delete(s.parents, n.URL)
		removed++
		return true
	})
	return removed
}

func removeNode(nodes []*entity.ContextNode, url string) []*entity.ContextNode {
	return slices.DeleteFunc(nodes, func(n *entity.ContextNode) bool {
		return n.URL == url
	})
}
