package contexttree

import (
	"errors"
	"fmt"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// ErrInvariant is returned by Validate when the forest is inconsistent.
// It always points at an ingestion bug, never at bad input.
var ErrInvariant = errors.New("context tree invariant violated")

// Validate checks that the identity map and the forest agree: every tracked
// node is reachable exactly once from the roots, no node has two parents,
// and the parent index matches the tree shape.
func (b *Builder) Validate() error {
	return b.store.Validate()
}

// Validate checks the store invariants. See Builder.Validate.
func (s *Store) Validate() error {
	seen := make(map[*entity.ContextNode]bool, len(s.nodes))
	seenURL := make(map[string]bool, len(s.nodes))

	var check func(n *entity.ContextNode, parentURL string) error
	check = func(n *entity.ContextNode, parentURL string) error {
		if n == nil {
			return fmt.Errorf("%w: nil node under %q", ErrInvariant, parentURL)
		}
		if seen[n] {
			return fmt.Errorf("%w: node %q reachable twice", ErrInvariant, n.URL)
		}
		if seenURL[n.URL] {
			return fmt.Errorf("%w: duplicate nodes for %q", ErrInvariant, n.URL)
		}
		seen[n] = true
		seenURL[n.URL] = true

		if mapped, ok := s.nodes[n.URL]; !ok || mapped != n {
			return fmt.Errorf("%w: node %q reachable but not in identity map", ErrInvariant, n.URL)
		}
		if got, ok := s.parents[n.URL]; !ok || got != parentURL {
			return fmt.Errorf("%w: node %q indexed under %q, attached under %q", ErrInvariant, n.URL, got, parentURL)
		}
		for _, child := range n.Children {
			if err := check(child, n.URL); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range s.roots {
		if err := check(root, ""); err != nil {
			return err
		}
	}

	if len(seen) != len(s.nodes) {
		return fmt.Errorf("%w: %d nodes in identity map, %d reachable", ErrInvariant, len(s.nodes), len(seen))
	}
	if len(s.parents) != len(s.nodes) {
		return fmt.Errorf("%w: parent index holds %d entries for %d nodes", ErrInvariant, len(s.parents), len(s.nodes))
	}
	return nil
}
