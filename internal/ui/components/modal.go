package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// Modal is a message dialog dismissed with enter or esc.
type Modal struct {
	Visible bool
	Title   string
	Message string
	isError bool
	theme   theme.Theme
	styles  theme.Styles
}

// NewModal creates a new modal dialog.
func NewModal(t theme.Theme, s theme.Styles) Modal {
	return Modal{
		theme:  t,
		styles: s,
	}
}

// SetTheme swaps the colors used to render the dialog.
func (m *Modal) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Show displays an informational dialog.
func (m *Modal) Show(title, message string) {
	m.Visible = true
	m.Title = title
	m.Message = message
	m.isError = false
}

// ShowError displays an error dialog.
func (m *Modal) ShowError(title, message string) {
	m.Show(title, message)
	m.isError = true
}

// IsError reports whether the dialog shows an error.
func (m Modal) IsError() bool {
	return m.isError
}

// Init implements tea.Model.
func (m Modal) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", " ":
			m.Visible = false
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
	}

	return m, nil
}

// View renders the modal dialog.
func (m Modal) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 56

	accent := m.theme.Accent
	if m.isError {
		accent = m.theme.Red
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center)

	messageStyle := lipgloss.NewStyle().
		Foreground(m.theme.Subtext).
		Width(boxWidth - 4).
		Align(lipgloss.Center)

	okStyle := lipgloss.NewStyle().
		Padding(0, 3).
		Background(accent).
		Foreground(m.theme.Base).
		Bold(true)

	buttonsRow := lipgloss.NewStyle().
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render(okStyle.Render("OK"))

	content := titleStyle.Render(m.Title) + "\n\n" +
		messageStyle.Render(m.Message) + "\n\n" +
		buttonsRow

	box := lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(content)

	return box
}
