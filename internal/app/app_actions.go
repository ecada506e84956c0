package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/sadopc/kapi/internal/core/request"
	coreresp "github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/export"
	"github.com/sadopc/kapi/internal/ui/msgs"
)

const defaultExportName = "response" + export.DefaultExtension

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// clear empties the editor and the response pane. The method is kept.
func (a App) clear() App {
	a.editor.Clear()
	a.response.Clear()
	a.statusBar.Reset()
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a
}

func (a App) openExportPrompt() (App, tea.Cmd) {
	if a.response.Text() == "" {
		a.modal.Show("Warning", "No response to save")
		return a, nil
	}
	cmd := a.prompt.Open("Export response", "path/to/response.json", defaultExportName,
		func(path string) tea.Msg { return msgs.ExportMsg{Path: path} })
	return a, cmd
}

func (a App) exportResponse(path string) (App, tea.Cmd) {
	written, err := export.WriteResponse(path, a.response.Text())
	if errors.Is(err, export.ErrNothingToExport) {
		a.modal.Show("Warning", "No response to save")
		return a, nil
	}
	if err != nil {
		a.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		a.modal.ShowError("Error", fmt.Sprintf("Failed to save file: %v", err))
		return a, nil
	}
	a.log.Info("response exported", zap.String("path", written))
	return a, a.toast.Show("Response saved to "+written, false, 3*time.Second)
}

func (a App) copyAsCurl() (App, tea.Cmd) {
	in := a.editor.Input()
	req, err := request.Build(in.Method, in.URL, in.Headers, in.Body)
	if err != nil {
		a.modal.ShowError("Error", err.Error())
		return a, nil
	}
	if err := writeClipboard(export.AsCurl(req)); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied as cURL", false, 2*time.Second)
}

func (a App) openImportPrompt() (App, tea.Cmd) {
	cmd := a.prompt.Open("Import cURL", "curl -X POST -d '{...}' https://...", "",
		func(command string) tea.Msg { return msgs.ImportCurlMsg{Command: command} })
	return a, cmd
}

// importCurl replaces the editor contents with a parsed curl command.
func (a App) importCurl(command string) (App, tea.Cmd) {
	parsed, err := export.ParseCurl(command)
	if err != nil {
		a.modal.ShowError("Error", fmt.Sprintf("Could not import cURL command: %v", err))
		return a, nil
	}
	if !request.ValidMethod(parsed.Method) {
		a.modal.ShowError("Error", fmt.Sprintf("Unsupported method %s", parsed.Method))
		return a, nil
	}

	a.editor.SetMethod(parsed.Method)
	a.editor.SetURL(parsed.URL)
	headers := ""
	if len(parsed.Headers) > 0 {
		headers = coreresp.FormatHeaders(parsed.Headers)
	}
	a.editor.SetHeaders(headers)
	a.editor.SetBody(importBody(parsed.Body))

	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, a.toast.Show("Imported cURL command", false, 2*time.Second)
}

// importBody indents a JSON body and keeps anything else as typed.
func importBody(body string) string {
	if !gjson.Valid(body) {
		return body
	}
	return strings.TrimSuffix(string(pretty.PrettyOptions([]byte(body), &pretty.Options{Indent: "  "})), "\n")
}
