package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coreresp "github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// Model is the response pane. It shows the combined status, headers and
// body block with syntax highlighting.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model

	resp    coreresp.Response
	text    string
	hasResp bool

	th      theme.Theme
	styles  theme.Styles
	focused bool
	loading bool
	wrap    bool
	width   int
	height  int
}

// New creates a new response panel model.
func New(t theme.Theme, s theme.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	return Model{
		viewport: viewport.New(0, 0),
		spinner:  sp,
		th:       t,
		styles:   s,
	}
}

// SetTheme swaps colors and re-renders the current response.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.th = t
	m.styles = s
	m.spinner.Style = lipgloss.NewStyle().Foreground(t.Accent)
	m.render()
}

// SetResponse shows r and leaves the loading state.
func (m *Model) SetResponse(r coreresp.Response) {
	m.loading = false
	m.resp = r
	m.text = coreresp.Format(r)
	m.hasResp = true
	m.render()
	m.viewport.GotoTop()
}

// Text returns the plain combined text, as written by export. It is empty
// when nothing has been received.
func (m Model) Text() string {
	if !m.hasResp {
		return ""
	}
	return m.text
}

// HasResponse reports whether a response is shown.
func (m Model) HasResponse() bool {
	return m.hasResp
}

// Clear empties the pane.
func (m *Model) Clear() {
	m.resp = coreresp.Response{}
	m.text = ""
	m.hasResp = false
	m.loading = false
	m.viewport.SetContent("")
}

// SetLoading puts the panel into loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Loading reports whether a request is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	// border(2) + title line
	m.viewport.Width = max(w-4, 0)
	m.viewport.Height = max(h-3, 0)
	m.render()
}

func (m *Model) render() {
	if !m.hasResp {
		return
	}
	content := m.renderResponse()
	if m.wrap && m.viewport.Width > 0 {
		content = wrapText(content, m.viewport.Width)
	}
	m.viewport.SetContent(content)
}

func (m Model) renderResponse() string {
	r := m.resp
	section := m.styles.Muted

	status := lipgloss.NewStyle().
		Foreground(m.th.StatusColor(r.StatusCode)).
		Bold(true).
		Render(fmt.Sprintf("Status: %d", r.StatusCode))

	headers := highlight(coreresp.FormatHeaders(r.Headers), "json", m.th.Syntax)

	body := r.Body
	if r.Failed() {
		body = m.styles.Error.Render(body)
	} else {
		body = highlight(body, detectLexer(body, r.ContentType), m.th.Syntax)
	}

	return status + "\n\n" +
		section.Render("--- Headers ---") + "\n" + headers + "\n\n" +
		section.Render("--- Body ---") + "\n" + body
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "w":
			m.wrap = !m.wrap
			m.render()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 0)
	innerH := max(m.height-2, 0)

	title := m.styles.Title.Render("Response")
	if m.wrap {
		title += " " + m.styles.Hint.Render("(wrap)")
	}

	var content string
	switch {
	case m.loading:
		content = lipgloss.Place(innerW, max(innerH-1, 0), lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("%s Sending request...", m.spinner.View()))
	case !m.hasResp:
		content = lipgloss.Place(innerW, max(innerH-1, 0), lipgloss.Center, lipgloss.Center,
			m.styles.Muted.Render("Send a request to see the response"))
	default:
		content = m.viewport.View()
	}

	return border.Width(innerW).Height(innerH).Render(strings.Join([]string{title, content}, "\n"))
}
