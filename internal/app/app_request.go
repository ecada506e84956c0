package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/kapi/internal/core/request"
	coreresp "github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/ui/msgs"
)

// sendRequest validates the editor contents and starts the request in the
// background. Only one request runs at a time.
func (a App) sendRequest() (App, tea.Cmd) {
	if a.sending {
		return a, a.toast.Show("A request is already in progress", false, 2*time.Second)
	}

	in := a.editor.Input()
	req, err := request.Build(in.Method, in.URL, in.Headers, in.Body)
	if err != nil {
		a.log.Info("request rejected", zap.Stringer("kind", request.KindOf(err)), zap.Error(err))
		a.modal.ShowError("Error", err.Error())
		return a, nil
	}

	a.sending = true
	a.response.SetLoading(true)
	a.statusBar.Reset()

	r := a.runner
	timeout := a.cfg.DefaultTimeout
	return a, func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			// The adapter has its own timeout; this bounds a stuck send.
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout+time.Second)
			defer cancel()
		}
		return msgs.RequestSentMsg{Outcome: r.SendRequest(ctx, req)}
	}
}

func (a App) handleRequestSent(msg msgs.RequestSentMsg) (App, tea.Cmd) {
	a.sending = false
	a.response.SetLoading(false)

	out := msg.Outcome
	if out == nil {
		return a, nil
	}

	a.showResponse(out.Response)
	a.log.Debug("request completed",
		zap.String("method", out.Request.Method),
		zap.String("url", out.Request.URL),
		zap.Int("status", out.Response.StatusCode),
		zap.Stringer("kind", out.Response.Kind),
	)

	if out.HistoryErr != nil {
		a.log.Warn("history not saved", zap.Error(out.HistoryErr))
		a.modal.ShowError("History Error", out.HistoryErr.Error())
		return a, nil
	}
	a.loadHistory()
	return a, nil
}

func (a *App) showResponse(r coreresp.Response) {
	a.response.SetResponse(r)
	if r.Failed() {
		a.statusBar.SetFailure(r.Kind.String())
		return
	}
	a.statusBar.SetStatus(r.StatusCode, r.Duration, r.Size, r.ContentType)
}

// loadHistory refreshes the sidebar from the history file, newest first.
func (a *App) loadHistory() {
	if a.history == nil {
		return
	}
	a.sidebar.SetEntries(a.history.Recent(0))
}

// handleHistorySelected restores a past request into the editor and shows
// the response that was recorded with it.
func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (App, tea.Cmd) {
	a.editor.LoadEntry(msg.Entry)
	a.showResponse(msg.Entry.Response())
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, a.toast.Show("Loaded "+msg.Entry.Label(), false, 2*time.Second)
}
