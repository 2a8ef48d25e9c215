// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ctxtree/internal/application/usecase"
	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/logging"
)

const (
	defaultPickerWidth  = 80
	defaultPickerHeight = 24
	// header, status, blank lines and help
	pickerChromeLines = 6
)

// ContextPickerModel lets the user pick pages from the context tree.
type ContextPickerModel struct {
	// UI components
	help    help.Model
	keys    styles.PickerKeyMap
	confirm *styles.ConfirmModel

	// State
	roots         []*entity.ContextNode
	rows          []pickerRow
	expansion     *entity.ExpansionState
	selected      map[string]struct{}
	cursor        int
	width         int
	height        int
	err           error
	statusMessage string
	loaded        bool
	confirmed     bool
	canceled      bool

	// Config
	maxTitle int

	// Dependencies
	ctx     context.Context
	tracker *usecase.TrackContextUseCase
	copyURL *usecase.CopyURLUseCase
	theme   *styles.Theme
}

// pickerRow is one visible line of the flattened tree.
type pickerRow struct {
	node        *entity.ContextNode
	parentURL   string
	depth       int
	guide       string
	hasChildren bool
}

// ContextPickerConfig holds the picker dependencies.
type ContextPickerConfig struct {
	Tracker  *usecase.TrackContextUseCase
	CopyURL  *usecase.CopyURLUseCase
	MaxTitle int
}

// NewContextPickerModel creates a picker over the tracker's current forest.
func NewContextPickerModel(ctx context.Context, theme *styles.Theme, cfg ContextPickerConfig) ContextPickerModel {
	return ContextPickerModel{
		help:      styles.NewHelp(theme),
		keys:      styles.DefaultPickerKeyMap(),
		expansion: entity.NewExpansionState(),
		selected:  make(map[string]struct{}),
		width:     defaultPickerWidth,
		height:    defaultPickerHeight,
		maxTitle:  cfg.MaxTitle,
		ctx:       ctx,
		tracker:   cfg.Tracker,
		copyURL:   cfg.CopyURL,
		theme:     theme,
	}
}

// Init implements tea.Model.
func (m ContextPickerModel) Init() tea.Cmd {
	return m.loadTree
}

// treeLoadedMsg carries a fresh forest snapshot.
type treeLoadedMsg struct {
	roots []*entity.ContextNode
	err   error
}

// nodeDeletedMsg is sent when a subtree has been removed from the tracker.
type nodeDeletedMsg struct {
	url     string
	removed int
}

// urlCopiedMsg is sent when a URL copy completes.
type urlCopiedMsg struct {
	url string
	err error
}

func (m ContextPickerModel) loadTree() tea.Msg {
	if m.tracker == nil {
		return treeLoadedMsg{err: fmt.Errorf("context tracking not available")}
	}
	roots := m.tracker.Roots()
	logging.FromContext(m.ctx).Debug().Int("roots", len(roots)).Msg("picker: tree loaded")
	return treeLoadedMsg{roots: roots}
}

// Update implements tea.Model.
func (m ContextPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case treeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setRoots(msg.roots)
		return m, nil

	case nodeDeletedMsg:
		m.statusMessage = fmt.Sprintf("Removed %d page(s)", msg.removed)
		return m, m.loadTree

	case urlCopiedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("Copied %s", msg.url)
		}
		return m, nil
	}

	return m, nil
}

// setRoots installs a new snapshot, keeping expansion, selection and cursor
// for the pages that survived.
func (m *ContextPickerModel) setRoots(roots []*entity.ContextNode) {
	var cursorURL string
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		cursorURL = m.rows[m.cursor].node.URL
	}

	present := make(map[string]bool)
	for _, root := range roots {
		root.Walk(func(n *entity.ContextNode, _ int) bool {
			present[n.URL] = true
			if !m.loaded && len(n.Children) > 0 {
				m.expansion.SetExpanded(n.URL, true)
			}
			return true
		})
	}

	m.expansion.Prune(func(url string) bool { return present[url] })
	for url := range m.selected {
		if !present[url] {
			delete(m.selected, url)
		}
	}

	m.roots = roots
	m.loaded = true
	m.err = nil
	m.rebuildRows()
	m.moveCursorTo(cursorURL)
}

// rebuildRows flattens the visible part of the forest.
func (m *ContextPickerModel) rebuildRows() {
	m.rows = make([]pickerRow, 0, len(m.rows))
	for _, root := range m.roots {
		m.appendRows(root, "", 0, "", "")
	}
	m.clampCursor()
}

func (m *ContextPickerModel) appendRows(n *entity.ContextNode, parentURL string, depth int, prefix, branch string) {
	m.rows = append(m.rows, pickerRow{
		node:        n,
		parentURL:   parentURL,
		depth:       depth,
		guide:       prefix + branch,
		hasChildren: len(n.Children) > 0,
	})
	if !m.expansion.IsExpanded(n.URL) {
		return
	}

	switch branch {
	case styles.TreeBranch:
		prefix += styles.TreePipe
	case styles.TreeLast:
		prefix += styles.TreeSpace
	}
	for i, child := range n.Children {
		childBranch := styles.TreeBranch
		if i == len(n.Children)-1 {
			childBranch = styles.TreeLast
		}
		m.appendRows(child, n.URL, depth+1, prefix, childBranch)
	}
}

func (m *ContextPickerModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ContextPickerModel) moveCursorTo(url string) {
	if url == "" {
		return
	}
	for i, row := range m.rows {
		if row.node.URL == url {
			m.cursor = i
			return
		}
	}
}

func (m ContextPickerModel) current() (pickerRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return pickerRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m ContextPickerModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if m.confirm.Done() {
		if m.confirm.Result() {
			if row, ok := m.current(); ok {
				cmd = m.deleteNode(row.node.URL)
			}
		}
		m.confirm = nil
	}
	return m, cmd
}

func (m ContextPickerModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.canceled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		row, ok := m.current()
		if !ok || !row.hasChildren {
			return m, nil
		}
		if m.expansion.IsExpanded(row.node.URL) {
			m.cursor++
			return m, nil
		}
		m.expansion.SetExpanded(row.node.URL, true)
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		if row.hasChildren && m.expansion.IsExpanded(row.node.URL) {
			m.expansion.SetExpanded(row.node.URL, false)
			m.rebuildRows()
			return m, nil
		}
		m.moveCursorTo(row.parentURL)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.current(); ok {
			m.toggleSelected(row.node.URL)
		}
		return m, nil

	case key.Matches(msg, m.keys.All):
		if row, ok := m.current(); ok {
			m.toggleSubtree(row.node)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		count := 0
		row.node.Walk(func(*entity.ContextNode, int) bool { count++; return true })
		message := fmt.Sprintf("Remove %q?", styles.Truncate(row.node.DisplayTitle(), 40))
		if count > 1 {
			message = fmt.Sprintf("Remove %q and %d page(s) below it?", styles.Truncate(row.node.DisplayTitle(), 40), count-1)
		}
		confirm := styles.NewConfirm(m.theme, message)
		m.confirm = &confirm
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if row, ok := m.current(); ok {
			return m, m.copyNodeURL(row.node.URL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if len(m.selected) == 0 {
			m.statusMessage = "Nothing selected"
			return m, nil
		}
		m.confirmed = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m ContextPickerModel) toggleSelected(url string) {
	if _, ok := m.selected[url]; ok {
		delete(m.selected, url)
		return
	}
	m.selected[url] = struct{}{}
}

// toggleSubtree selects the node and all its descendants, or clears them
// when they are all selected already.
func (m ContextPickerModel) toggleSubtree(node *entity.ContextNode) {
	all := true
	node.Walk(func(n *entity.ContextNode, _ int) bool {
		if _, ok := m.selected[n.URL]; !ok {
			all = false
			return false
		}
		return true
	})

	node.Walk(func(n *entity.ContextNode, _ int) bool {
		if all {
			delete(m.selected, n.URL)
		} else {
			m.selected[n.URL] = struct{}{}
		}
		return true
	})
}

func (m ContextPickerModel) deleteNode(url string) tea.Cmd {
	return func() tea.Msg {
		removed := m.tracker.Delete(m.ctx, url)
		return nodeDeletedMsg{url: url, removed: removed}
	}
}

func (m ContextPickerModel) copyNodeURL(url string) tea.Cmd {
	return func() tea.Msg {
		if m.copyURL == nil {
			return urlCopiedMsg{url: url, err: fmt.Errorf("clipboard not available")}
		}
		return urlCopiedMsg{url: url, err: m.copyURL.Copy(m.ctx, url)}
	}
}

// Selected returns the picked URLs in forest pre-order.
func (m ContextPickerModel) Selected() []string {
	urls := make([]string, 0, len(m.selected))
	for _, root := range m.roots {
		root.Walk(func(n *entity.ContextNode, _ int) bool {
			if _, ok := m.selected[n.URL]; ok {
				urls = append(urls, n.URL)
			}
			return true
		})
	}
	return urls
}

// Confirmed reports whether the user sent the selection.
func (m ContextPickerModel) Confirmed() bool {
	return m.confirmed
}

// Canceled reports whether the user quit without sending.
func (m ContextPickerModel) Canceled() bool {
	return m.canceled
}

// View implements tea.Model.
func (m ContextPickerModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}

	if m.statusMessage != "" {
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(t.Subtle.Render("  No pages tracked."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows(m.height - pickerChromeLines))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m ContextPickerModel) renderHeader() string {
	t := m.theme

	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	icon := iconStyle.Render(styles.IconTree)
	title := t.Title.MarginLeft(1).Render("Context")

	pages := 0
	for _, root := range m.roots {
		root.Walk(func(*entity.ContextNode, int) bool { pages++; return true })
	}

	stats := t.Subtle.Render(fmt.Sprintf("  %d pages  %s %d selected",
		pages, styles.IconCheckboxChecked, len(m.selected)))

	return icon + title + stats
}

// renderRows renders at most maxLines rows, scrolled so the cursor is visible.
func (m ContextPickerModel) renderRows(maxLines int) string {
	if maxLines < 1 {
		maxLines = 1
	}

	start := 0
	if m.cursor >= maxLines {
		start = m.cursor - maxLines + 1
	}
	end := min(start+maxLines, len(m.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ContextPickerModel) renderRow(row pickerRow, isCursor bool) string {
	t := m.theme

	cursor := "  "
	if isCursor {
		cursor = t.Highlight.Render(styles.IconCursor + " ")
	}

	expandIcon := styles.IconLeaf
	if row.hasChildren {
		expandIcon = styles.IconExpand
		if m.expansion.IsExpanded(row.node.URL) {
			expandIcon = styles.IconCollapse
		}
	}

	checkbox := styles.IconCheckboxEmpty
	titleStyle := t.NodeTitle
	if _, ok := m.selected[row.node.URL]; ok {
		checkbox = styles.IconCheckboxChecked
		titleStyle = t.NodeSelected
	}
	if isCursor {
		titleStyle = titleStyle.Bold(true)
	}

	title := styles.Truncate(row.node.DisplayTitle(), m.maxTitle)
	age := t.Subtle.Render(fmt.Sprintf("%s %s", styles.IconClock, usecase.GetRelativeTime(row.node.VisitedAt)))

	return fmt.Sprintf("%s%s%s %s %s  %s  %s",
		cursor,
		t.TreeGuide.Render(row.guide),
		t.Subtle.Render(expandIcon),
		t.Highlight.Render(checkbox),
		titleStyle.Render(title),
		t.NodeURL.Render(row.node.URL),
		age,
	)
}

// Ensure interface compliance at compile time.
var _ tea.Model = (*ContextPickerModel)(nil)
