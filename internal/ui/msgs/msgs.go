package msgs

import (
	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/runner"
)

// Panel focus targets
type PanelFocus int

const (
	FocusHistory PanelFocus = iota
	FocusEditor
	FocusResponse
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeSending
	ModeModal
	ModePrompt
	ModeSearch
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeSending:
		return "SENDING"
	case ModeModal:
		return "MODAL"
	case ModePrompt:
		return "PROMPT"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

// SendRequestMsg triggers sending the current request.
type SendRequestMsg struct{}

// RequestSentMsg is emitted when a send completes, including transport
// failures.
type RequestSentMsg struct {
	Outcome *runner.Outcome
}

// ExportMsg writes the current response text to Path.
type ExportMsg struct {
	Path string
}

// ImportCurlMsg loads a pasted curl command into the editor.
type ImportCurlMsg struct {
	Command string
}

// HistorySelectedMsg loads a history entry back into the editor.
type HistorySelectedMsg struct {
	Entry history.Entry
}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}
