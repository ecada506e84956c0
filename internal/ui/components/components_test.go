package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// helpers

func testStyles() theme.Styles {
	return theme.NewStyles(theme.Light)
}

func testTheme() theme.Theme {
	return theme.Light
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func specialKeyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func expectSetMode(t *testing.T, cmd tea.Cmd, want msgs.AppMode) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected SetModeMsg cmd")
	}
	msg := cmd()
	setMode, ok := msg.(msgs.SetModeMsg)
	if !ok {
		t.Fatalf("expected SetModeMsg, got %T", msg)
	}
	if setMode.Mode != want {
		t.Fatalf("expected mode %v, got %v", want, setMode.Mode)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusBar tests
// ─────────────────────────────────────────────────────────────────────────────

func TestStatusBar_NewDefault(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	if sb.mode != msgs.ModeNormal {
		t.Fatalf("expected initial mode ModeNormal, got %d", sb.mode)
	}
}

func TestStatusBar_SetStatus(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetFailure("timeout")
	sb.SetStatus(200, 150*time.Millisecond, 1024, "application/json")

	if sb.statusCode != 200 {
		t.Fatalf("expected statusCode 200, got %d", sb.statusCode)
	}
	if sb.failure != "" {
		t.Fatalf("SetStatus should clear failure, got %q", sb.failure)
	}
	if sb.duration != 150*time.Millisecond {
		t.Fatalf("expected duration 150ms, got %v", sb.duration)
	}
	if sb.size != 1024 {
		t.Fatalf("expected size 1024, got %d", sb.size)
	}
	if sb.contentType != "application/json" {
		t.Fatalf("expected contentType application/json, got %s", sb.contentType)
	}
}

func TestStatusBar_View_ShowsStatusAndSize(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetWidth(160)
	sb.SetStatus(201, 150*time.Millisecond, 2048, "application/json")

	view := sb.View()
	for _, want := range []string{"201", "150ms", "2.0 KiB", "application/json"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q: %s", want, view)
		}
	}
}

func TestStatusBar_View_ShowsFailure(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetWidth(120)
	sb.SetStatus(200, time.Second, 10, "")
	sb.SetFailure("connection")

	view := sb.View()
	if !strings.Contains(view, "ERR connection") {
		t.Errorf("view should contain failure label: %s", view)
	}
	if strings.Contains(view, "200") {
		t.Error("failure should replace the previous status")
	}
}

func TestStatusBar_SetMode(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetMode(msgs.ModeInsert)
	if sb.mode != msgs.ModeInsert {
		t.Fatalf("expected ModeInsert, got %d", sb.mode)
	}
}

func TestStatusBar_View_ContainsModeIndicator(t *testing.T) {
	tests := []struct {
		mode     msgs.AppMode
		expected string
	}{
		{msgs.ModeNormal, "NORMAL"},
		{msgs.ModeInsert, "INSERT"},
		{msgs.ModeSending, "SENDING"},
		{msgs.ModePrompt, "PROMPT"},
		{msgs.ModeSearch, "SEARCH"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			sb := NewStatusBar(testTheme(), testStyles())
			sb.SetMode(tt.mode)
			sb.SetWidth(120)

			view := sb.View()
			if !strings.Contains(view, tt.expected) {
				t.Errorf("view should contain mode indicator '%s'", tt.expected)
			}
		})
	}
}

func TestStatusBar_View_ContainsThemeAndHint(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetWidth(120)
	if view := sb.View(); !strings.Contains(view, "[Light]") || !strings.Contains(view, "?:help") {
		t.Errorf("view should contain theme name and help hint: %s", view)
	}

	sb.SetTheme(theme.Dark, theme.NewStyles(theme.Dark))
	if view := sb.View(); !strings.Contains(view, "[Dark]") {
		t.Errorf("view should reflect the new theme: %s", view)
	}
}

func TestStatusBar_ResetClearsResponseInfo(t *testing.T) {
	sb := NewStatusBar(testTheme(), testStyles())
	sb.SetWidth(120)
	sb.SetFailure("timeout")
	sb.Reset()

	if sb.failure != "" || sb.statusCode != 0 {
		t.Fatalf("Reset left failure=%q status=%d", sb.failure, sb.statusCode)
	}
	if strings.Contains(sb.View(), "ERR") {
		t.Error("view should not show a failure after Reset")
	}

	sb.SetStatus(404, time.Second, 0, "")
	sb.Reset()
	if strings.Contains(sb.View(), "404") {
		t.Error("view should not show the status after Reset")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Toast tests
// ─────────────────────────────────────────────────────────────────────────────

func TestToast_NewDefault(t *testing.T) {
	toast := NewToast(testTheme(), testStyles())
	if toast.Visible {
		t.Fatal("toast should start hidden")
	}
}

func TestToast_Show(t *testing.T) {
	toast := NewToast(testTheme(), testStyles())
	cmd := toast.Show("Copied as cURL", false, time.Second)

	if !toast.Visible {
		t.Fatal("toast should be visible after Show")
	}
	if toast.Text() != "Copied as cURL" {
		t.Fatalf("text = %q", toast.Text())
	}
	if cmd == nil {
		t.Fatal("Show should return a dismiss cmd")
	}
	if !strings.Contains(toast.View(), "Copied as cURL") {
		t.Error("view should contain the toast text")
	}
}

func TestToast_DismissOnlyMatchingShow(t *testing.T) {
	toast := NewToast(testTheme(), testStyles())
	toast.Show("first", false, time.Second)
	staleID := toast.id
	toast.Show("second", true, time.Second)

	toast, _ = toast.Update(toastDismissMsg{id: staleID})
	if !toast.Visible {
		t.Fatal("a stale dismiss should not hide the newer toast")
	}

	toast, _ = toast.Update(toastDismissMsg{id: toast.id})
	if toast.Visible {
		t.Fatal("toast should be hidden after its own dismiss")
	}
	if toast.View() != "" {
		t.Error("hidden toast should render empty")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Modal tests
// ─────────────────────────────────────────────────────────────────────────────

func TestModal_NewDefault(t *testing.T) {
	m := NewModal(testTheme(), testStyles())
	if m.Visible {
		t.Fatal("modal should start hidden")
	}
	if m.View() != "" {
		t.Fatal("hidden modal should render empty")
	}
}

func TestModal_ShowError(t *testing.T) {
	m := NewModal(testTheme(), testStyles())
	m.ShowError("Error", "Please enter a URL")

	if !m.Visible || !m.IsError() {
		t.Fatal("modal should be visible in error state")
	}
	view := m.View()
	if !strings.Contains(view, "Please enter a URL") {
		t.Errorf("view should contain message: %s", view)
	}
	if !strings.Contains(view, "OK") {
		t.Error("view should contain OK button")
	}

	m.Show("Export", "Response saved")
	if m.IsError() {
		t.Fatal("Show should reset the error state")
	}
}

func TestModal_Dismiss(t *testing.T) {
	for _, k := range []tea.KeyMsg{specialKeyMsg(tea.KeyEscape), specialKeyMsg(tea.KeyEnter)} {
		m := NewModal(testTheme(), testStyles())
		m.ShowError("Error", "boom")

		m, cmd := m.Update(k)
		if m.Visible {
			t.Fatalf("modal should close on %s", k.String())
		}
		expectSetMode(t, cmd, msgs.ModeNormal)
	}
}

func TestModal_IgnoresInputWhenHidden(t *testing.T) {
	m := NewModal(testTheme(), testStyles())
	_, cmd := m.Update(specialKeyMsg(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("hidden modal should not produce cmds")
	}
}

func TestModal_IgnoresOtherKeys(t *testing.T) {
	m := NewModal(testTheme(), testStyles())
	m.ShowError("Error", "boom")
	m, cmd := m.Update(keyMsg("x"))
	if !m.Visible || cmd != nil {
		t.Fatal("other keys should not close the modal")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Prompt tests
// ─────────────────────────────────────────────────────────────────────────────

type submittedMsg struct{ value string }

func TestPrompt_SubmitTrimmedValue(t *testing.T) {
	p := NewPrompt(testTheme(), testStyles())
	p.Open("Export response", "path", "  out", func(v string) tea.Msg { return submittedMsg{v} })
	if !p.Visible {
		t.Fatal("prompt should be visible after Open")
	}

	p, _ = p.Update(keyMsg("x"))
	if p.Value() != "  outx" {
		t.Fatalf("value = %q, want %q", p.Value(), "  outx")
	}

	p, cmd := p.Update(specialKeyMsg(tea.KeyEnter))
	if p.Visible {
		t.Fatal("prompt should close on enter")
	}
	if cmd == nil {
		t.Fatal("enter should produce a cmd")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	var got []tea.Msg
	for _, c := range batch {
		if c != nil {
			got = append(got, c())
		}
	}
	found := false
	for _, m := range got {
		if s, ok := m.(submittedMsg); ok {
			found = true
			if s.value != "outx" {
				t.Errorf("submitted %q, want outx", s.value)
			}
		}
	}
	if !found {
		t.Fatalf("submit message not found in %v", got)
	}
}

func TestPrompt_BlankEnterKeepsOpen(t *testing.T) {
	p := NewPrompt(testTheme(), testStyles())
	p.Open("Export response", "path", "   ", func(v string) tea.Msg { return submittedMsg{v} })

	p, cmd := p.Update(specialKeyMsg(tea.KeyEnter))
	if !p.Visible {
		t.Fatal("blank value should keep the prompt open")
	}
	if cmd != nil {
		t.Fatal("blank value should not submit")
	}
}

func TestPrompt_EscCancels(t *testing.T) {
	p := NewPrompt(testTheme(), testStyles())
	p.Open("Export response", "path", "out.json", nil)

	p, cmd := p.Update(specialKeyMsg(tea.KeyEscape))
	if p.Visible {
		t.Fatal("esc should close the prompt")
	}
	expectSetMode(t, cmd, msgs.ModeNormal)
}

func TestPrompt_View(t *testing.T) {
	p := NewPrompt(testTheme(), testStyles())
	if p.View() != "" {
		t.Fatal("hidden prompt should render empty")
	}
	p.Open("Export response", "path", "", nil)
	if !strings.Contains(p.View(), "Export response") {
		t.Error("view should contain the title")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Help tests
// ─────────────────────────────────────────────────────────────────────────────

func TestHelp_Toggle(t *testing.T) {
	h := NewHelp(testTheme(), testStyles())
	h.SetSize(120, 40)

	h.Toggle()
	if !h.Visible {
		t.Fatal("should be visible after first toggle")
	}

	h.Toggle()
	if h.Visible {
		t.Fatal("should be hidden after second toggle")
	}
}

func TestHelp_Esc_Closes(t *testing.T) {
	h := NewHelp(testTheme(), testStyles())
	h.SetSize(120, 40)
	h.Toggle()

	h, cmd := h.Update(specialKeyMsg(tea.KeyEscape))
	if h.Visible {
		t.Fatal("help should close on esc")
	}
	expectSetMode(t, cmd, msgs.ModeNormal)
}

func TestHelp_IgnoresInputWhenHidden(t *testing.T) {
	h := NewHelp(testTheme(), testStyles())
	_, cmd := h.Update(specialKeyMsg(tea.KeyEscape))
	if cmd != nil {
		t.Fatal("hidden help should not produce cmds")
	}
}

func TestHelp_View_WhenVisible(t *testing.T) {
	h := NewHelp(testTheme(), testStyles())
	h.SetSize(120, 60)
	h.Toggle()

	view := h.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("help view should contain 'Keyboard Shortcuts' title")
	}
	for _, section := range []string{"General", "History", "Editor"} {
		if !strings.Contains(view, section) {
			t.Errorf("help view should contain %q section", section)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// formatDuration tests (StatusBar helper)
// ─────────────────────────────────────────────────────────────────────────────

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		dur      time.Duration
		expected string
	}{
		{"microseconds", 500 * time.Microsecond, "500µs"},
		{"milliseconds", 150 * time.Millisecond, "150ms"},
		{"seconds", 2500 * time.Millisecond, "2.50s"},
		{"exactly 1ms", time.Millisecond, "1ms"},
		{"exactly 1s", time.Second, "1.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.dur)
			if got != tt.expected {
				t.Fatalf("formatDuration(%v) = %q, want %q", tt.dur, got, tt.expected)
			}
		})
	}
}
