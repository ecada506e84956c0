package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"

	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/protocol"
	"github.com/sadopc/kapi/internal/runner"
	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// Field identifies the focused input inside the editor.
type Field int

const (
	FieldMethod Field = iota
	FieldURL
	FieldHeaders
	FieldBody
)

var fieldLabels = []string{"Method", "URL", "Headers", "Body (JSON)"}

var bodyIndent = &pretty.Options{Width: 0, Indent: "  "}

// Model is the request editor: method selector, URL, headers and body.
type Model struct {
	Method      string
	methodIndex int

	url     textinput.Model
	headers textarea.Model
	body    textarea.Model

	field   Field
	focused bool

	width  int
	height int
	styles theme.Styles
}

// New creates a new editor panel.
func New(styles theme.Styles) Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://api.example.com/resource"
	urlInput.CharLimit = 2048
	urlInput.Width = 40

	headers := newArea(`{"Authorization": "Bearer ..."}`)
	body := newArea(`{"key": "value"}`)

	return Model{
		Method:  protocol.Methods[0],
		url:     urlInput,
		headers: headers,
		body:    body,
		field:   FieldURL,
		styles:  styles,
		width:   60,
		height:  20,
	}
}

func newArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(3)
	return ta
}

// SetStyles swaps the styles used to render the panel.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}

// SetFocused sets whether the editor panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	m.syncFocus()
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	innerW := w - 4
	if innerW < 10 {
		innerW = 10
	}
	urlW := innerW - 10 // method badge + padding
	if urlW < 10 {
		urlW = 10
	}
	m.url.Width = urlW

	// border(2) + url line + blank + two labels
	areaH := (h - 2 - 4) / 2
	if areaH < 1 {
		areaH = 1
	}
	m.headers.SetWidth(innerW)
	m.headers.SetHeight(areaH)
	m.body.SetWidth(innerW)
	m.body.SetHeight(areaH)
}

// Field returns the focused input.
func (m Model) Field() Field {
	return m.field
}

// FocusField moves focus to f.
func (m *Model) FocusField(f Field) tea.Cmd {
	m.field = f
	return m.syncFocus()
}

// NextField advances focus. It reports false, leaving focus unchanged,
// when the last field is already focused.
func (m *Model) NextField() bool {
	if m.field == FieldBody {
		return false
	}
	m.field++
	m.syncFocus()
	return true
}

// PrevField moves focus back. It reports false on the first field.
func (m *Model) PrevField() bool {
	if m.field == FieldMethod {
		return false
	}
	m.field--
	m.syncFocus()
	return true
}

// Editing reports whether a text input currently receives keystrokes.
func (m Model) Editing() bool {
	return m.focused && m.field != FieldMethod
}

// Input returns the raw editor contents.
func (m Model) Input() runner.Input {
	return runner.Input{
		Method:  m.Method,
		URL:     m.url.Value(),
		Headers: m.headers.Value(),
		Body:    m.body.Value(),
	}
}

// SetMethod selects method if it is supported.
func (m *Model) SetMethod(method string) {
	for i, candidate := range protocol.Methods {
		if candidate == strings.ToUpper(method) {
			m.methodIndex = i
			m.Method = candidate
			return
		}
	}
}

// SetURL replaces the URL text.
func (m *Model) SetURL(url string) {
	m.url.SetValue(url)
	m.url.CursorEnd()
}

// SetHeaders replaces the headers text.
func (m *Model) SetHeaders(text string) {
	m.headers.SetValue(text)
}

// SetBody replaces the body text.
func (m *Model) SetBody(text string) {
	m.body.SetValue(text)
}

// Clear empties the URL, headers and body. The method is kept.
func (m *Model) Clear() {
	m.url.SetValue("")
	m.headers.Reset()
	m.body.Reset()
	m.field = FieldURL
	m.syncFocus()
}

// LoadEntry fills the editor from a history entry.
func (m *Model) LoadEntry(e history.Entry) {
	m.SetMethod(e.Method)
	m.SetURL(e.URL)

	headers := ""
	if len(e.RequestHeaders) > 0 {
		headers = response.FormatHeaders(e.RequestHeaders)
	}
	m.headers.SetValue(headers)

	body := ""
	if e.HasRequestBody() {
		body = strings.TrimSuffix(string(pretty.PrettyOptions(e.RequestBody, bodyIndent)), "\n")
	}
	m.body.SetValue(body)

	m.field = FieldURL
	m.syncFocus()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && m.field == FieldMethod {
		switch key.String() {
		case " ", "enter", "right", "l":
			m.cycleMethod(1)
		case "left", "h":
			m.cycleMethod(-1)
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, m.FocusField(FieldMethod)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.field == FieldURL {
		return m, func() tea.Msg { return msgs.SendRequestMsg{} }
	}

	var cmd tea.Cmd
	switch m.field {
	case FieldURL:
		m.url, cmd = m.url.Update(msg)
	case FieldHeaders:
		m.headers, cmd = m.headers.Update(msg)
	case FieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleMethod(step int) {
	n := len(protocol.Methods)
	m.methodIndex = (m.methodIndex + step + n) % n
	m.Method = protocol.Methods[m.methodIndex]
}

func (m *Model) syncFocus() tea.Cmd {
	m.url.Blur()
	m.headers.Blur()
	m.body.Blur()
	if !m.focused {
		return nil
	}
	switch m.field {
	case FieldURL:
		return m.url.Focus()
	case FieldHeaders:
		return m.headers.Focus()
	case FieldBody:
		return m.body.Focus()
	}
	return nil
}

// View renders the editor panel.
func (m Model) View() string {
	var b strings.Builder

	// URL bar: [METHOD] url-input
	methodLabel := m.styles.MethodStyle(m.Method).Render(padMethod(m.Method))
	if m.focused && m.field == FieldMethod {
		methodLabel = m.styles.Cursor.Render(padMethod(m.Method))
	}
	b.WriteString(methodLabel + " " + m.url.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(FieldHeaders) + "\n")
	b.WriteString(m.headers.View())
	b.WriteString("\n")
	b.WriteString(m.label(FieldBody) + "\n")
	b.WriteString(m.body.View())

	var borderStyle lipgloss.Style
	if m.focused {
		borderStyle = m.styles.FocusedBorder
	} else {
		borderStyle = m.styles.UnfocusedBorder
	}
	borderStyle = borderStyle.Width(max(m.width-2, 1)).Height(max(m.height-2, 1))

	return borderStyle.Render(b.String())
}

func (m Model) label(f Field) string {
	if m.focused && m.field == f {
		return m.styles.Key.Render(fieldLabels[f])
	}
	return m.styles.Label.Render(fieldLabels[f])
}

// padMethod pads an HTTP method to 6 chars.
func padMethod(method string) string {
	if len(method) >= 6 {
		return method[:6]
	}
	return method + strings.Repeat(" ", 6-len(method))
}
