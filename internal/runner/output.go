package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/core/response"
)

// PrintOutcome writes the display block followed by a one-line summary on
// a verbose run.
func PrintOutcome(w io.Writer, o *Outcome, verbose bool) {
	fmt.Fprintln(w, o.Display)
	if !verbose {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s  %s  %s  %s\n",
		o.Request.Method, o.Request.URL,
		statusLabel(o.Response),
		formatDuration(o.Response.Duration),
		humanize.Bytes(uint64(o.Response.Size)),
	)
}

// PrintHistoryText lists entries one per line using their labels.
func PrintHistoryText(w io.Writer, entries []history.Entry, verbose bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-60s  %s\n", truncate(e.Label(), 60), statusLabel(e.Response()))
		if verbose {
			fmt.Fprintf(w, "  %s\n", e.Timestamp)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Entries: %d\n", len(entries))
}

// PrintHistoryJSON writes entries as an indented JSON array.
func PrintHistoryJSON(w io.Writer, entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func statusLabel(r response.Response) string {
	if r.Failed() {
		return "ERR " + r.Kind.String()
	}
	if text := http.StatusText(r.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", r.StatusCode, text)
	}
	return fmt.Sprintf("%d", r.StatusCode)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
