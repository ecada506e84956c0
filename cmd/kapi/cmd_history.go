package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/sadopc/kapi/internal/config"
	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/runner"
)

func historyCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limitFlag := fs.Int("limit", 20, "Maximum number of entries to show (0 for all)")
	searchFlag := fs.String("search", "", "Fuzzy filter over entry labels")
	jsonFlag := fs.Bool("json", false, "Print entries as a JSON array")
	historyFlag := fs.String("history", "", "Path to the history file")
	verboseFlag := fs.Bool("v", false, "Show full timestamps")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kapi history [flags]\n\n")
		fmt.Fprintf(stderr, "List recorded requests, most recent first.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  kapi history --limit 5\n")
		fmt.Fprintf(stderr, "  kapi history --search users --json\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected argument %q\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	cfg := config.Load()
	log, closeLog := newLogger(cfg, true)
	defer closeLog()

	// Listing only reads; a missing file is an empty history and is not created.
	path := *historyFlag
	if path == "" {
		path = cfg.ResolveHistoryPath()
	}
	store := history.NewStore(path, log)

	return listHistory(store, *searchFlag, *limitFlag, *jsonFlag, *verboseFlag, stdout, stderr)
}

func listHistory(store *history.Store, query string, limit int, asJSON, verbose bool, stdout, stderr io.Writer) int {
	entries := store.Search(query, limit)
	if asJSON {
		if err := runner.PrintHistoryJSON(stdout, entries); err != nil {
			fmt.Fprintf(stderr, "Error writing JSON: %v\n", err)
			return 1
		}
		return 0
	}
	runner.PrintHistoryText(stdout, entries, verbose)
	return 0
}
