package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// Prompt asks for a single line of text, such as an export path.
type Prompt struct {
	Visible  bool
	Title    string
	input    textinput.Model
	onSubmit func(string) tea.Msg
	theme    theme.Theme
	styles   theme.Styles
}

// NewPrompt creates a new prompt.
func NewPrompt(t theme.Theme, s theme.Styles) Prompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 48
	return Prompt{
		input:  ti,
		theme:  t,
		styles: s,
	}
}

// SetTheme swaps the colors used to render the prompt.
func (m *Prompt) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Open shows the prompt with an initial value. onSubmit builds the message
// sent when the user confirms a non-blank value.
func (m *Prompt) Open(title, placeholder, value string, onSubmit func(string) tea.Msg) tea.Cmd {
	m.Visible = true
	m.Title = title
	m.onSubmit = onSubmit
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Close hides the prompt without submitting.
func (m *Prompt) Close() {
	m.Visible = false
	m.input.Blur()
}

// Value returns the current input text.
func (m Prompt) Value() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m Prompt) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Close()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			m.Close()
			setMode := func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
			if m.onSubmit == nil {
				return m, setMode
			}
			submit := m.onSubmit
			return m, tea.Batch(setMode, func() tea.Msg { return submit(value) })
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt box.
func (m Prompt) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 56

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4)

	hint := m.styles.Hint.Render("enter: confirm  esc: cancel")

	content := titleStyle.Render(m.Title) + "\n\n" +
		m.input.View() + "\n\n" +
		hint

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
