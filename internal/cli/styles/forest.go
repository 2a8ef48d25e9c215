package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/ctxtree/internal/application/usecase"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/domain/url"
)

// ForestRenderer prints a context forest for non-interactive output.
type ForestRenderer struct {
	theme    *Theme
	maxTitle int
}

// NewForestRenderer creates a renderer. Titles are cut at maxTitle runes
// when maxTitle is positive.
func NewForestRenderer(theme *Theme, maxTitle int) *ForestRenderer {
	return &ForestRenderer{theme: theme, maxTitle: maxTitle}
}

// Render draws every root with its descendants using tree guides.
func (r *ForestRenderer) Render(roots []*entity.ContextNode) string {
	t := r.theme
	if len(roots) == 0 {
		return t.Subtle.Render("  No pages tracked.") + "\n"
	}

	var b strings.Builder
	for _, root := range roots {
		fmt.Fprintf(&b, "%s %s\n", r.renderRootLabel(root), r.renderNode(root))
		r.renderChildren(&b, root.Children, "")
	}
	return b.String()
}

// RenderFlat draws one line per node in pre-order, indented by depth.
func (r *ForestRenderer) RenderFlat(roots []*entity.ContextNode) string {
	var b strings.Builder
	for _, root := range roots {
		root.Walk(func(n *entity.ContextNode, depth int) bool {
			fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", depth), r.renderNode(n))
			return true
		})
	}
	return b.String()
}

// RenderStats renders a one-line summary.
func (r *ForestRenderer) RenderStats(stats entity.ContextStats) string {
	return r.theme.Subtle.Render(fmt.Sprintf("%s %d pages  %d roots  depth %d",
		IconTree, stats.Nodes, stats.Roots, stats.MaxDepth))
}

func (r *ForestRenderer) renderChildren(b *strings.Builder, children []*entity.ContextNode, prefix string) {
	t := r.theme
	for i, child := range children {
		last := i == len(children)-1

		branch, next := TreeBranch, TreePipe
		if last {
			branch, next = TreeLast, TreeSpace
		}

		fmt.Fprintf(b, "%s%s\n", t.TreeGuide.Render(prefix+branch), r.renderNode(child))
		r.renderChildren(b, child.Children, prefix+next)
	}
}

// renderRootLabel prefixes a root with its host, or just the globe for
// host-less pages such as file:// or about:.
func (r *ForestRenderer) renderRootLabel(root *entity.ContextNode) string {
	label := IconGlobe
	if domain := url.ExtractDomain(root.URL); domain != "" {
		label += " " + domain
	}
	return r.theme.Highlight.Render(label)
}

func (r *ForestRenderer) renderNode(n *entity.ContextNode) string {
	t := r.theme
	title := Truncate(n.DisplayTitle(), r.maxTitle)
	line := t.NodeTitle.Render(title) + " " + t.NodeURL.Render(n.URL)
	if !n.VisitedAt.IsZero() {
		line += " " + t.Subtle.Render(usecase.GetRelativeTime(n.VisitedAt))
	}
	return line
}

// Truncate cuts s to maxLen runes with an ellipsis. maxLen <= 0 disables it.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
