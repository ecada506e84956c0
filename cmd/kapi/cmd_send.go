package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sadopc/kapi/internal/core/request"
	"github.com/sadopc/kapi/internal/runner"
)

func sendCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(stderr)
	methodFlag := fs.String("X", "GET", "HTTP method: GET, POST, PUT or DELETE")
	headersFlag := fs.String("H", "", "Request headers as a JSON object")
	bodyFlag := fs.String("d", "", "Request body as JSON")
	timeoutFlag := fs.Duration("timeout", 0, "Request timeout (default from config, 30s)")
	historyFlag := fs.String("history", "", "Path to the history file")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the request")
	verboseFlag := fs.Bool("v", false, "Print a summary line after the response")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kapi send [flags] <url>\n\n")
		fmt.Fprintf(stderr, "Send a single request and print the response.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  kapi send https://httpbin.org/get\n")
		fmt.Fprintf(stderr, "  kapi send -X POST -d '{\"name\":\"ada\"}' https://httpbin.org/post\n")
		fmt.Fprintf(stderr, "  kapi send -H '{\"Authorization\":\"Bearer t\"}' --no-history https://api.example.com/me\n")
		fmt.Fprintf(stderr, "\nExit codes:\n")
		fmt.Fprintf(stderr, "  0  A response was received (any status)\n")
		fmt.Fprintf(stderr, "  1  The request failed in transit\n")
		fmt.Fprintf(stderr, "  2  Invalid input\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one URL is required\n\n")
		fs.Usage()
		return 2
	}

	method, err := request.ParseMethod(*methodFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	e, err := setup(*historyFlag, *noHistoryFlag, true)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer e.closeLog()
	if *timeoutFlag > 0 {
		e.client.SetTimeout(*timeoutFlag)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	r := runner.New(e.client, e.store, e.log)
	return send(ctx, r, runner.Input{
		Method:  method,
		URL:     fs.Arg(0),
		Headers: *headersFlag,
		Body:    *bodyFlag,
	}, *verboseFlag, stdout, stderr)
}

// send runs one request and prints the outcome, returning the exit code.
func send(ctx context.Context, r *runner.Runner, in runner.Input, verbose bool, stdout, stderr io.Writer) int {
	start := time.Now()
	out, err := r.Send(ctx, in)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	runner.PrintOutcome(stdout, out, verbose)
	if out.HistoryErr != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", out.HistoryErr)
	}
	if verbose {
		fmt.Fprintf(stderr, "Completed in %s\n", time.Since(start).Round(time.Millisecond))
	}
	return runner.ExitCode(out)
}
