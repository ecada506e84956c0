package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/panels/editor"
)

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	// Overlays capture all input while visible.
	if a.modal.Visible {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}
	if a.prompt.Visible {
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	if a.help.Visible {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}

	// The history filter owns the keyboard until it is closed.
	if a.focus == msgs.FocusHistory && a.sidebar.Filtering() {
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}

	if handled, m, cmd := a.handleGlobalKey(msg); handled {
		return m, cmd
	}

	return a.updateFocused(msg)
}

// handleGlobalKey processes bindings that work regardless of focus.
func (a App) handleGlobalKey(msg tea.KeyMsg) (bool, App, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return true, a, tea.Quit

	case key.Matches(msg, a.keys.Send):
		m, cmd := a.sendRequest()
		return true, m, cmd

	case key.Matches(msg, a.keys.Clear):
		return true, a.clear(), nil

	case key.Matches(msg, a.keys.Export):
		m, cmd := a.openExportPrompt()
		return true, m, cmd

	case key.Matches(msg, a.keys.CopyCurl):
		m, cmd := a.copyAsCurl()
		return true, m, cmd

	case key.Matches(msg, a.keys.ImportCurl):
		m, cmd := a.openImportPrompt()
		return true, m, cmd

	case key.Matches(msg, a.keys.ToggleDark):
		m, cmd := a.toggleDarkMode()
		return true, m, cmd

	case key.Matches(msg, a.keys.NextField):
		return true, a.cycleFocus(true), nil

	case key.Matches(msg, a.keys.PrevField):
		return true, a.cycleFocus(false), nil
	}

	// Plain keys are text while an input is focused.
	if a.focus == msgs.FocusEditor && a.editor.Editing() {
		return false, a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return true, a, nil
	case msg.String() == "q":
		return true, a, tea.Quit
	}
	return false, a, nil
}

func (a App) updateFocused(msg tea.KeyMsg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusHistory:
		a.sidebar, cmd = a.sidebar.Update(msg)
	case msgs.FocusEditor:
		a.editor, cmd = a.editor.Update(msg)
	case msgs.FocusResponse:
		a.response, cmd = a.response.Update(msg)
	}
	return a, cmd
}

// cycleFocus walks the focus ring: history, the editor fields in order,
// then the response pane. The history panel is skipped while hidden.
func (a App) cycleFocus(forward bool) App {
	historyShown := a.layout.SidebarVisible || !a.ready

	if forward {
		switch a.focus {
		case msgs.FocusHistory:
			a.focus = msgs.FocusEditor
			a.editor.FocusField(editor.FieldMethod)
		case msgs.FocusEditor:
			if !a.editor.NextField() {
				a.focus = msgs.FocusResponse
			}
		case msgs.FocusResponse:
			if historyShown {
				a.focus = msgs.FocusHistory
			} else {
				a.focus = msgs.FocusEditor
				a.editor.FocusField(editor.FieldMethod)
			}
		}
	} else {
		switch a.focus {
		case msgs.FocusHistory:
			a.focus = msgs.FocusResponse
		case msgs.FocusEditor:
			if !a.editor.PrevField() {
				if historyShown {
					a.focus = msgs.FocusHistory
				} else {
					a.focus = msgs.FocusResponse
				}
			}
		case msgs.FocusResponse:
			a.focus = msgs.FocusEditor
			a.editor.FocusField(editor.FieldBody)
		}
	}

	a.updateFocus()
	return a
}

func (a *App) updateFocus() {
	a.sidebar.SetFocused(a.focus == msgs.FocusHistory)
	a.editor.SetFocused(a.focus == msgs.FocusEditor)
	a.response.SetFocused(a.focus == msgs.FocusResponse)
}
