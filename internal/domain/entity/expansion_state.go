package entity

// ExpansionState is the picker-owned disclosure state of context nodes, keyed
// by normalized URL. It is kept apart from ContextNode so the tree stays
// purely structural.
type ExpansionState struct {
	expanded map[string]bool
}

// NewExpansionState creates an empty expansion state where every node is collapsed.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(map[string]bool)}
}

// IsExpanded reports whether the node with url is expanded.
func (s *ExpansionState) IsExpanded(url string) bool {
	return s.expanded[url]
}

// SetExpanded sets the disclosure state of a node.
func (s *ExpansionState) SetExpanded(url string, expanded bool) {
	if expanded {
		s.expanded[url] = true
		return
	}
	delete(s.expanded, url)
}

// Toggle flips the disclosure state and returns the new value.
func (s *ExpansionState) Toggle(url string) bool {
	next := !s.expanded[url]
	s.SetExpanded(url, next)
	return next
}

// Prune drops state for URLs that are no longer present.
func (s *ExpansionState) Prune(keep func(url string) bool) {
	for url := range s.expanded {
		if !keep(url) {
			delete(s.expanded, url)
		}
	}
}

// Len returns the number of expanded nodes.
func (s *ExpansionState) Len() int {
	return len(s.expanded)
}
