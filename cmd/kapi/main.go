package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/kapi/internal/app"
	"github.com/sadopc/kapi/internal/config"
	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/logger"
	httpclient "github.com/sadopc/kapi/internal/protocol/http"
	"github.com/sadopc/kapi/internal/runner"
	"github.com/sadopc/kapi/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "send":
			os.Exit(sendCmd(os.Args[2:], os.Stdout, os.Stderr))
		case "history":
			os.Exit(historyCmd(os.Args[2:], os.Stdout, os.Stderr))
		case "version", "--version":
			printVersion(os.Stdout)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "kapi %s (%s) built %s\n", version.Version, version.Commit, version.Date)
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `kapi - compose and send HTTP requests from the terminal

Usage:
  kapi                             Launch TUI (interactive mode)
  kapi <command> [args] [flags]    Run a subcommand

Commands:
  send      Send a single request and print the response
  history   List recorded requests, most recent first
  version   Print version information
  help      Show this help message

Configuration is read from ~/.config/kapi/config.yaml.

Run 'kapi <command> --help' for more information about a command.
`)
}

// env bundles what every command needs to send requests.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	closeLog func() error
	client   *httpclient.Client
	store    *history.Store
}

// setup loads config, opens the log and prepares the HTTP client. An empty
// historyPath uses the configured location; noHistory disables recording.
func setup(historyPath string, noHistory, headless bool) (*env, error) {
	cfg := config.Load()
	log, closeLog := newLogger(cfg, headless)

	client := httpclient.New(log)
	client.SetTimeout(cfg.DefaultTimeout)
	if err := client.SetProxy(cfg.Proxy, cfg.NoProxy); err != nil {
		closeLog()
		return nil, fmt.Errorf("configuring proxy: %w", err)
	}
	if err := client.SetTLS(httpclient.TLSOptions(cfg.TLS.Resolve())); err != nil {
		closeLog()
		return nil, fmt.Errorf("configuring TLS: %w", err)
	}

	e := &env{cfg: cfg, log: log, closeLog: closeLog, client: client}

	if !noHistory {
		if historyPath == "" {
			historyPath = cfg.ResolveHistoryPath()
		}
		e.store = history.NewStore(historyPath, log)
		if err := e.store.Init(); err != nil {
			// Sends still work; each append will report its own failure.
			log.Warn("history unavailable", zap.String("path", historyPath), zap.Error(err))
		}
	}
	return e, nil
}

func newLogger(cfg config.Config, headless bool) (*zap.Logger, func() error) {
	log, closeLog, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		File:   cfg.ResolveLogFile(),
		Stderr: headless,
	})
	if err != nil {
		// Logging is best effort; a read-only state dir must not block sends.
		return zap.NewNop(), func() error { return nil }
	}
	return log, closeLog
}

func tuiCmd() {
	e, err := setup("", false, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.closeLog()

	e.log.Info("starting kapi", zap.String("version", version.Version))
	model := app.New(e.cfg, runner.New(e.client, e.store, e.log), e.store, e.log)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		e.closeLog()
		os.Exit(1)
	}
}
