package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/kapi/internal/config"
	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/runner"
	"github.com/sadopc/kapi/internal/ui/components"
	"github.com/sadopc/kapi/internal/ui/layout"
	"github.com/sadopc/kapi/internal/ui/msgs"
	"github.com/sadopc/kapi/internal/ui/panels/editor"
	"github.com/sadopc/kapi/internal/ui/panels/response"
	"github.com/sadopc/kapi/internal/ui/panels/sidebar"
	"github.com/sadopc/kapi/internal/ui/theme"
)

// App is the root Bubble Tea model.
type App struct {
	sidebar  sidebar.Model
	editor   editor.Model
	response response.Model

	statusBar components.StatusBar
	help      components.Help
	toast     components.Toast
	modal     components.Modal
	prompt    components.Prompt

	runner  *runner.Runner
	history *history.Store
	cfg     config.Config
	log     *zap.Logger

	mode    msgs.AppMode
	focus   msgs.PanelFocus
	sending bool
	layout  layout.PanelLayout
	keys    KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the root model. store may be nil when history is disabled.
func New(cfg config.Config, r *runner.Runner, store *history.Store, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	t := theme.For(cfg.DarkMode)
	s := theme.NewStyles(t)

	a := App{
		sidebar:  sidebar.New(t, s),
		editor:   editor.New(s),
		response: response.New(t, s),

		statusBar: components.NewStatusBar(t, s),
		help:      components.NewHelp(t, s),
		toast:     components.NewToast(t, s),
		modal:     components.NewModal(t, s),
		prompt:    components.NewPrompt(t, s),

		runner:  r,
		history: store,
		cfg:     cfg,
		log:     log,

		mode:  msgs.ModeNormal,
		focus: msgs.FocusEditor,
		keys:  DefaultKeyMap(),

		theme:  t,
		styles: s,
	}

	a.loadHistory()
	a.updateFocus()
	a.syncMode()
	return a
}

func (a App) Init() tea.Cmd {
	return a.response.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.update(msg)
	m.syncMode()
	return m, cmd
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, true)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.SendRequestMsg:
		return a.sendRequest()

	case msgs.RequestSentMsg:
		return a.handleRequestSent(msg)

	case msgs.ExportMsg:
		return a.exportResponse(msg.Path)

	case msgs.ImportCurlMsg:
		return a.importCurl(msg.Command)

	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)

	case msgs.SetModeMsg:
		// Mode is derived from component state in syncMode.
		return a, nil
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.response, cmd = a.response.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.prompt.Visible {
		a.prompt, cmd = a.prompt.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.focus == msgs.FocusEditor {
		// Cursor blink and other input messages.
		a.editor, cmd = a.editor.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// syncMode derives the status bar mode from the current state.
func (a *App) syncMode() {
	switch {
	case a.modal.Visible || a.help.Visible:
		a.mode = msgs.ModeModal
	case a.prompt.Visible:
		a.mode = msgs.ModePrompt
	case a.sending:
		a.mode = msgs.ModeSending
	case a.focus == msgs.FocusHistory && a.sidebar.Filtering():
		a.mode = msgs.ModeSearch
	case a.focus == msgs.FocusEditor && a.editor.Editing():
		a.mode = msgs.ModeInsert
	default:
		a.mode = msgs.ModeNormal
	}
	a.statusBar.SetMode(a.mode)
}

func (a *App) resizePanels() {
	l := a.layout
	a.sidebar.SetSize(l.SidebarWidth, l.ContentHeight)
	a.editor.SetSize(l.MainWidth, l.EditorHeight)
	a.response.SetSize(l.MainWidth, l.ResponseHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	if !l.SidebarVisible && a.focus == msgs.FocusHistory {
		a.focus = msgs.FocusEditor
	}
	a.updateFocus()
}

// applyTheme pushes the current theme into every component.
func (a *App) applyTheme() {
	a.styles = theme.NewStyles(a.theme)
	a.sidebar.SetTheme(a.theme, a.styles)
	a.editor.SetStyles(a.styles)
	a.response.SetTheme(a.theme, a.styles)
	a.statusBar.SetTheme(a.theme, a.styles)
	a.help.SetTheme(a.theme, a.styles)
	a.toast.SetTheme(a.theme, a.styles)
	a.modal.SetTheme(a.theme, a.styles)
	a.prompt.SetTheme(a.theme, a.styles)
}

func (a App) toggleDarkMode() (App, tea.Cmd) {
	a.theme = a.theme.Toggle()
	a.applyTheme()
	label := "Dark mode off"
	if a.theme.Dark {
		label = "Dark mode on"
	}
	return a, a.toast.Show(label, false, 2*time.Second)
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := a.renderTitle()

	var panels string
	if a.layout.SinglePanel {
		switch a.focus {
		case msgs.FocusHistory:
			panels = a.sidebar.View()
		case msgs.FocusEditor:
			panels = a.editor.View()
		case msgs.FocusResponse:
			panels = a.response.View()
		}
	} else {
		main := lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), a.response.View())
		if a.layout.SidebarVisible {
			panels = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), main)
		} else {
			panels = main
		}
	}

	statusBar := a.statusBar.View()
	screen := lipgloss.JoinVertical(lipgloss.Left, title, panels, statusBar)

	if a.help.Visible {
		screen = a.overlayCenter(a.help.View())
	}
	if a.prompt.Visible {
		screen = a.overlayCenter(a.prompt.View())
	}
	if a.modal.Visible {
		screen = a.overlayCenter(a.modal.View())
	}
	if a.toast.Visible {
		screen = overlayTopRight(screen, a.toast.View(), a.width)
	}

	return screen
}

func (a App) renderTitle() string {
	name := a.styles.Title.Render(" kapi ")
	hint := a.styles.Hint.Render("ctrl+r send  ctrl+l clear  ctrl+s export  ctrl+y curl  ctrl+t theme")
	gap := a.width - lipgloss.Width(name) - lipgloss.Width(hint) - 1
	if gap < 1 {
		return name
	}
	return name + lipgloss.NewStyle().Width(gap).Render("") + hint
}

func (a App) overlayCenter(overlay string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(a.theme.Base),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	overlayWidth := lipgloss.Width(overlay)
	gap := width - overlayWidth - 2
	if gap < 0 {
		gap = 0
	}
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
