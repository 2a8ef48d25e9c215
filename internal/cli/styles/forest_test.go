package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/infrastructure/config"
)

func testForest() []*entity.ContextNode {
	a := entity.NewContextNode("https://a.com", "A", "")
	x := entity.NewContextNode("https://a.com/x", "X", "")
	y := entity.NewContextNode("https://a.com/x/y", "Y", "")
	z := entity.NewContextNode("https://a.com/z", "", "")
	x.Children = []*entity.ContextNode{y}
	a.Children = []*entity.ContextNode{x, z}
	b := entity.NewContextNode("https://b.com", "B", "")
	for _, n := range []*entity.ContextNode{a, x, y, z, b} {
		n.VisitedAt = time.Time{}
	}
	return []*entity.ContextNode{a, b}
}

func TestForestRenderer_Render(t *testing.T) {
	r := NewForestRenderer(NewTheme(config.DefaultConfig()), 0)
	out := r.Render(testForest())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "https://a.com")
	assert.Contains(t, lines[1], TreeBranch)
	assert.Contains(t, lines[1], "https://a.com/x")
	assert.Contains(t, lines[2], TreePipe+TreeLast)
	assert.Contains(t, lines[2], "https://a.com/x/y")
	assert.Contains(t, lines[3], TreeLast)
	assert.Contains(t, lines[4], "https://b.com")
}

func TestForestRenderer_RootLabelShowsHost(t *testing.T) {
	r := NewForestRenderer(NewTheme(nil), 0)
	roots := []*entity.ContextNode{
		entity.NewContextNode("https://www.youtube.com/watch", "Video", ""),
		entity.NewContextNode("file:///docs/a", "Doc", ""),
	}

	lines := strings.Split(strings.TrimRight(r.Render(roots), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], IconGlobe+" youtube.com "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], IconGlobe+" Doc"), lines[1])
}

func TestForestRenderer_RenderEmpty(t *testing.T) {
	r := NewForestRenderer(NewTheme(nil), 0)
	assert.Contains(t, r.Render(nil), "No pages tracked")
}

func TestForestRenderer_RenderFlat(t *testing.T) {
	r := NewForestRenderer(NewTheme(nil), 0)
	lines := strings.Split(strings.TrimRight(r.RenderFlat(testForest()), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[2], "    "), "depth 2 is indented twice")
	assert.Contains(t, lines[3], "https://a.com/z")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 0))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "éé…", Truncate("ééééé", 3))
}
