package model

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ctxtree/internal/application/usecase"
	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/infrastructure/config"
	"github.com/bnema/ctxtree/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewWithWriter(logging.Config{Level: logging.ParseLevel("debug"), Format: "json"}, io.Discard)
	return logging.WithContext(context.Background(), logger)
}

// a.com
// ├── a.com/x
// │   └── a.com/x/y
// └── a.com/z
// b.com
func newTestPicker(t *testing.T) (ContextPickerModel, *usecase.TrackContextUseCase) {
	t.Helper()
	ctx := testContext()

	tracker := usecase.NewTrackContextUseCase(true, "Untitled")
	tracker.RecordNavigation(ctx, usecase.NavigationInput{ToURL: "https://a.com", Title: "A"})
	tracker.RecordNavigation(ctx, usecase.NavigationInput{FromURL: "https://a.com", ToURL: "https://a.com/x", Title: "X"})
	tracker.RecordNavigation(ctx, usecase.NavigationInput{FromURL: "https://a.com/x", ToURL: "https://a.com/x/y", Title: "Y"})
	tracker.RecordNavigation(ctx, usecase.NavigationInput{FromURL: "https://a.com", ToURL: "https://a.com/z", Title: "Z"})
	tracker.RecordNavigation(ctx, usecase.NavigationInput{ToURL: "https://b.com", Title: "B"})

	m := NewContextPickerModel(ctx, styles.NewTheme(config.DefaultConfig()), ContextPickerConfig{Tracker: tracker})
	m = update(t, m, m.Init()())
	return m, tracker
}

func update(t *testing.T, m ContextPickerModel, msg tea.Msg) ContextPickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	picker, ok := next.(ContextPickerModel)
	require.True(t, ok)
	return picker
}

func press(t *testing.T, m ContextPickerModel, keys ...string) ContextPickerModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = update(t, m, msg)
	}
	return m
}

func rowURLs(m ContextPickerModel) []string {
	urls := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		urls = append(urls, row.node.URL)
	}
	return urls
}

func TestContextPicker_LoadsExpandedTree(t *testing.T) {
	m, _ := newTestPicker(t)

	assert.Equal(t, []string{
		"https://a.com", "https://a.com/x", "https://a.com/x/y", "https://a.com/z", "https://b.com",
	}, rowURLs(m))
	assert.Equal(t, "", m.rows[0].guide)
	assert.Equal(t, styles.TreeBranch, m.rows[1].guide)
	assert.Equal(t, styles.TreePipe+styles.TreeLast, m.rows[2].guide)
	assert.Equal(t, styles.TreeLast, m.rows[3].guide)
	assert.Equal(t, 2, m.rows[2].depth)
}

func TestContextPicker_CollapseAndExpand(t *testing.T) {
	m, _ := newTestPicker(t)

	m = press(t, m, "j", "h")
	assert.Equal(t, []string{"https://a.com", "https://a.com/x", "https://a.com/z", "https://b.com"}, rowURLs(m))
	assert.Equal(t, 1, m.cursor)

	// Collapsing a collapsed node jumps to its parent.
	m = press(t, m, "h")
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, "h")
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, rowURLs(m))

	m = press(t, m, "l")
	assert.Len(t, m.rows, 4)

	// Expanding an expanded node steps into its first child.
	m = press(t, m, "l")
	assert.Equal(t, 1, m.cursor)
}

func TestContextPicker_SelectAndConfirm(t *testing.T) {
	m, _ := newTestPicker(t)

	m = press(t, m, "enter")
	assert.False(t, m.Confirmed())
	assert.Equal(t, "Nothing selected", m.statusMessage)

	m = press(t, m, "j", "j", "j", "j", "x", "k", "k", "k", "a")
	assert.Equal(t, []string{"https://a.com/x", "https://a.com/x/y", "https://b.com"}, m.Selected())

	// A fully selected subtree toggles off.
	m = press(t, m, "a")
	assert.Equal(t, []string{"https://b.com"}, m.Selected())

	m = press(t, m, "enter")
	assert.True(t, m.Confirmed())
	assert.False(t, m.Canceled())
}

func TestContextPicker_DeleteWithConfirm(t *testing.T) {
	m, tracker := newTestPicker(t)

	m = press(t, m, "j", "x", "d")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "1 page(s) below")

	m = press(t, m, "y", "enter")
	require.Nil(t, m.confirm)

	next, cmd := m.Update(nodeDeletedMsg{url: "https://a.com/x", removed: tracker.Delete(testContext(), "https://a.com/x")})
	m = next.(ContextPickerModel)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.False(t, tracker.Has("https://a.com/x/y"))
	assert.Equal(t, []string{"https://a.com", "https://a.com/z", "https://b.com"}, rowURLs(m))
	assert.Empty(t, m.Selected(), "selection of deleted pages is dropped")
	require.NoError(t, tracker.Validate())
}

func TestContextPicker_DeleteCanceled(t *testing.T) {
	m, tracker := newTestPicker(t)

	m = press(t, m, "d", "n", "enter")
	assert.Nil(t, m.confirm)
	assert.True(t, tracker.Has("https://a.com"))
}

func TestContextPicker_Quit(t *testing.T) {
	m, _ := newTestPicker(t)
	m = press(t, m, "q")
	assert.True(t, m.Canceled())
	assert.False(t, m.Confirmed())
}

func TestContextPicker_ViewKeepsCursorVisible(t *testing.T) {
	m, _ := newTestPicker(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: pickerChromeLines + 2})
	m = press(t, m, "j", "j", "j", "j")

	view := m.renderRows(2)
	assert.Contains(t, view, "https://b.com")
	assert.NotContains(t, view, "https://a.com/x/y")
}

func TestContextPicker_NoTracker(t *testing.T) {
	m := NewContextPickerModel(testContext(), styles.NewTheme(nil), ContextPickerConfig{})
	m = update(t, m, m.Init()())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "not available")
}
