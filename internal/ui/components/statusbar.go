package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	statusCode  int
	failure     string
	duration    time.Duration
	size        int64
	contentType string
	mode        msgs.AppMode
	width       int
	theme       theme.Theme
	styles      theme.Styles
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme, s theme.Styles) StatusBar {
	return StatusBar{
		theme:  t,
		styles: s,
		mode:   msgs.ModeNormal,
	}
}

// SetTheme swaps the colors used to render the bar.
func (m *StatusBar) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// SetStatus sets the response status info.
func (m *StatusBar) SetStatus(code int, duration time.Duration, size int64, contentType string) {
	m.statusCode = code
	m.failure = ""
	m.duration = duration
	m.size = size
	m.contentType = contentType
}

// SetFailure records a send that produced no HTTP response.
func (m *StatusBar) SetFailure(kind string) {
	m.Reset()
	m.failure = kind
}

// Reset clears the response info.
func (m *StatusBar) Reset() {
	m.statusCode = 0
	m.failure = ""
	m.duration = 0
	m.size = 0
	m.contentType = ""
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)

	segment := func(fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(fg).Background(m.theme.Surface)
	}

	// Left section: status code, duration, size, content-type
	var leftParts []string

	switch {
	case m.failure != "":
		leftParts = append(leftParts, segment(m.theme.Red).Bold(true).Render("ERR "+m.failure))
	default:
		if m.statusCode > 0 {
			leftParts = append(leftParts, segment(m.theme.StatusColor(m.statusCode)).
				Bold(true).
				Render(fmt.Sprintf("%d", m.statusCode)))
		}
		if m.duration > 0 {
			leftParts = append(leftParts, segment(m.theme.Subtext).Render(formatDuration(m.duration)))
		}
		if m.size > 0 {
			leftParts = append(leftParts, segment(m.theme.Subtext).Render(humanize.IBytes(uint64(m.size))))
		}
		if m.contentType != "" {
			leftParts = append(leftParts, segment(m.theme.Muted).Render(m.contentType))
		}
	}

	left := strings.Join(leftParts, " │ ")

	// Center: mode indicator
	modeStr := segment(m.theme.Accent).
		Bold(true).
		Render("[" + m.mode.String() + "]")

	// Right: theme + hints
	themeStr := segment(m.theme.Teal).Bold(true).Render("[" + m.theme.Name + "]")
	hint := themeStr + " " + segment(m.theme.Muted).Render("?:help  ctrl+r:send")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(modeStr)
	rightWidth := lipgloss.Width(hint)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.width {
		line := " " + left + " " + modeStr + " " + hint
		return barStyle.Render(line)
	}

	remaining := m.width - totalContent - 2 // padding
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
