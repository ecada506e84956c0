package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// Model is the history sidebar. Entries are shown most recent first.
type Model struct {
	entries  []history.Entry
	filtered []history.Entry
	cursor   int
	offset   int

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	theme  theme.Theme
	styles theme.Styles
}

// New creates a new sidebar model.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		theme:       t,
		styles:      s,
		filterInput: ti,
	}
}

// SetTheme swaps the colors used to render the list.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// SetEntries replaces the displayed entries. entries must already be in
// display order. The cursor stays on the selected entry when it is still
// listed.
func (m *Model) SetEntries(entries []history.Entry) {
	prev, hadSelection := m.Selected()
	m.entries = entries
	m.applyFilter()
	if !hadSelection {
		return
	}
	for i, e := range m.filtered {
		if sameEntry(e, prev) {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
}

// Entries returns the entries currently visible after filtering.
func (m Model) Entries() []history.Entry {
	return m.filtered
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (history.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return history.Entry{}, false
	}
	return m.filtered[m.cursor], true
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.filtering
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.filterInput.Width = max(w-6, 1)
	m.scrollToCursor()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		return m, tea.Batch(
			m.filterInput.Focus(),
			func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeSearch} },
		)
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.filtered) - 1
	case "enter", "l":
		entry := m.filtered[m.cursor]
		return m, func() tea.Msg {
			return msgs.HistorySelectedMsg{Entry: entry}
		}
	}
	m.scrollToCursor()

	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if msg.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	m.filtered = history.Filter(m.entries, strings.TrimSpace(m.filterInput.Value()), 0)
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.scrollToCursor()
}

func sameEntry(a, b history.Entry) bool {
	return a.Timestamp == b.Timestamp && a.Method == b.Method && a.URL == b.URL
}

// listHeight is the number of rows available for entries.
func (m Model) listHeight() int {
	// border(2) + title + blank + detail line
	h := m.height - 5
	if m.filtering || m.filterInput.Value() != "" {
		h--
	}
	return max(h, 1)
}

func (m *Model) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	title := m.styles.Title.Render("History")
	if n := len(m.entries); n > 0 {
		title += m.styles.Muted.Render(fmt.Sprintf(" (%d)", n))
	}

	lines := []string{title, ""}

	switch {
	case len(m.entries) == 0:
		lines = append(lines, m.styles.Muted.Render("  No history yet"))
	case len(m.filtered) == 0:
		lines = append(lines, m.styles.Muted.Render("  No matches"))
	default:
		end := min(m.offset+m.listHeight(), len(m.filtered))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderEntry(m.filtered[i], i == m.cursor, innerW))
		}
	}

	content := fitHeight(strings.Join(lines, "\n"), innerH-1-m.filterLines())
	content += "\n" + m.detailLine()
	if m.filterLines() > 0 {
		content += "\n" + m.filterInput.View()
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) filterLines() int {
	if m.filtering || m.filterInput.Value() != "" {
		return 1
	}
	return 0
}

func (m Model) renderEntry(e history.Entry, isCursor bool, maxWidth int) string {
	if isCursor && m.focused {
		return m.styles.Cursor.Width(maxWidth).Render(stripForWidth(e.Label(), maxWidth))
	}

	clock := m.styles.Muted.Render("[" + e.Clock() + "]")
	method := lipgloss.NewStyle().Foreground(m.theme.MethodColor(e.Method)).Bold(true).Render(e.Method)
	prefix := clock + " " + method + " → "
	room := maxWidth - lipgloss.Width(prefix)
	if room < 1 {
		return stripForWidth(e.Label(), maxWidth)
	}
	return prefix + stripForWidth(e.URL, room)
}

// detailLine describes the selected entry: status and age.
func (m Model) detailLine() string {
	e, ok := m.Selected()
	if !ok {
		return ""
	}
	status := e.Response().Kind.String()
	if e.StatusCode > 0 {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	parts := []string{lipgloss.NewStyle().Foreground(m.theme.StatusColor(e.StatusCode)).Render(status)}
	if at, ok := e.Time(); ok {
		parts = append(parts, m.styles.Muted.Render(humanize.Time(at)))
	}
	return strings.Join(parts, " · ")
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	h = max(h, 0)
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// stripForWidth truncates s by runes until it fits in w cells.
func stripForWidth(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
