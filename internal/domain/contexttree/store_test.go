package contexttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

func TestStore_InsertRootAndChild(t *testing.T) {
	s := NewStore()

	require.True(t, s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", "")))
	require.False(t, s.InsertRoot(entity.NewContextNode("https://a.com/1", "dup", "")))

	require.True(t, s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/2", "A2", "")))
	require.False(t, s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/2", "dup", "")))
	require.False(t, s.InsertChild("https://unknown.com", entity.NewContextNode("https://unknown.com/x", "X", "")))

	parent, ok := s.ParentOf("https://a.com/2")
	require.True(t, ok)
	assert.Equal(t, "https://a.com/1", parent)

	parent, ok = s.ParentOf("https://a.com/1")
	require.True(t, ok)
	assert.Empty(t, parent)

	assert.Equal(t, 2, s.Len())
	require.NoError(t, s.Validate())
}

func TestStore_RemoveNestedDetachesFromParent(t *testing.T) {
	s := NewStore()
	s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", ""))
	s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/2", "A2", ""))
	s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/3", "A3", ""))
	s.InsertChild("https://a.com/2", entity.NewContextNode("https://a.com/4", "A4", ""))

	assert.Equal(t, 2, s.Remove("https://a.com/2"))
	assert.Equal(t, 0, s.Remove("https://a.com/2"))

	root, ok := s.Get("https://a.com/1")
	require.True(t, ok)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "https://a.com/3", root.Children[0].URL)
	assert.False(t, s.Has("https://a.com/4"))
	require.NoError(t, s.Validate())
}

func TestStore_ValidateDetectsCorruption(t *testing.T) {
	t.Run("node with two parents", func(t *testing.T) {
		s := NewStore()
		s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", ""))
		s.InsertRoot(entity.NewContextNode("https://a.com/2", "A2", ""))
		s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/3", "A3", ""))

		a2, _ := s.Get("https://a.com/2")
		a3, _ := s.Get("https://a.com/3")
		a2.Children = append(a2.Children, a3)

		require.ErrorIs(t, s.Validate(), ErrInvariant)
	})

	t.Run("mapped node unreachable", func(t *testing.T) {
		s := NewStore()
		s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", ""))
		s.nodes["https://a.com/orphan"] = entity.NewContextNode("https://a.com/orphan", "O", "")
		s.parents["https://a.com/orphan"] = ""

		require.ErrorIs(t, s.Validate(), ErrInvariant)
	})

	t.Run("reachable node missing from map", func(t *testing.T) {
		s := NewStore()
		s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", ""))
		a1, _ := s.Get("https://a.com/1")
		a1.Children = append(a1.Children, entity.NewContextNode("https://a.com/ghost", "G", ""))

		require.ErrorIs(t, s.Validate(), ErrInvariant)
	})

	t.Run("cycle", func(t *testing.T) {
		s := NewStore()
		s.InsertRoot(entity.NewContextNode("https://a.com/1", "A1", ""))
		s.InsertChild("https://a.com/1", entity.NewContextNode("https://a.com/2", "A2", ""))
		a1, _ := s.Get("https://a.com/1")
		a2, _ := s.Get("https://a.com/2")
		a2.Children = append(a2.Children, a1)

		require.ErrorIs(t, s.Validate(), ErrInvariant)
	})
}
