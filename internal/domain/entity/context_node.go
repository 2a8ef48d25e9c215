package entity

import "time"

// ContextNode is one distinct page visited while context tracking is active.
// URL is the normalized identity key and is unique across the whole forest.
type ContextNode struct {
	URL        string         `json:"url"`
	Title      string         `json:"title"`
	FaviconURL string         `json:"favicon_url,omitempty"`
	VisitedAt  time.Time      `json:"visited_at"`
	Children   []*ContextNode `json:"children,omitempty"`
}

// NewContextNode creates a leaf node stamped with the current time.
func NewContextNode(url, title, faviconURL string) *ContextNode {
	return &ContextNode{
		URL:        url,
		Title:      title,
		FaviconURL: faviconURL,
		VisitedAt:  time.Now(),
	}
}

// HasChild reports whether a direct child with the given URL exists.
func (n *ContextNode) HasChild(url string) bool {
	for _, child := range n.Children {
		if child.URL == url {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in pre-order.
// depth is 0 for n itself. Returning false from fn stops the walk.
func (n *ContextNode) Walk(fn func(node *ContextNode, depth int) bool) bool {
	return n.walk(fn, 0)
}

func (n *ContextNode) walk(fn func(node *ContextNode, depth int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of n and its subtree.
func (n *ContextNode) Clone() *ContextNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = nil
	if len(n.Children) > 0 {
		c.Children = make([]*ContextNode, 0, len(n.Children))
		for _, child := range n.Children {
			c.Children = append(c.Children, child.Clone())
		}
	}
	return &c
}

// DisplayTitle returns the title, falling back to the URL.
func (n *ContextNode) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.URL
}

// ContextStats summarizes the shape of a context forest.
type ContextStats struct {
	Nodes    int `json:"nodes"`
	Roots    int `json:"roots"`
	MaxDepth int `json:"max_depth"`
}
