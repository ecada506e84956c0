// Package response turns adapter results into display-ready responses.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/sadopc/kapi/internal/protocol"
)

// EmptyBody replaces a blank response body.
const EmptyBody = "Empty response"

// Fixed bodies for transport failures.
const (
	ConnectionErrorBody = "Connection Error: Could not connect to the server"
	TimeoutErrorBody    = "Timeout Error: Request took too long"
	requestErrorPrefix  = "Request Error: "
	unexpectedPrefix    = "Unexpected Error: "
)

// indentOptions expands every array and object, matching a plain 2-space
// JSON indenter. Width 0 turns off single-line arrays.
var indentOptions = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

// Response is what the user sees and what history records.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string

	// Display-only metadata, not persisted.
	Kind        protocol.FailureKind
	ContentType string
	Duration    time.Duration
	Size        int64
}

// Failed reports whether no HTTP response was received.
func (r Response) Failed() bool {
	return r.StatusCode == 0
}

// Interpret converts an adapter result. A nil result is treated as an
// unexpected failure.
func Interpret(res *protocol.Result) Response {
	if res == nil {
		return failure(protocol.Unexpected, "no result")
	}
	if res.Kind != protocol.OK {
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
		}
		return failure(res.Kind, msg)
	}

	headers := res.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return Response{
		StatusCode:  res.StatusCode,
		Headers:     headers,
		Body:        FormatBody(res.Body),
		Kind:        protocol.OK,
		ContentType: res.ContentType,
		Duration:    res.Duration,
		Size:        int64(len(res.Body)),
	}
}

// Unexpected builds the response for a failure outside the adapter's
// classification, such as a recovered panic.
func Unexpected(err error) Response {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return failure(protocol.Unexpected, msg)
}

func failure(kind protocol.FailureKind, msg string) Response {
	var body string
	switch kind {
	case protocol.ConnectionFailure:
		body = ConnectionErrorBody
	case protocol.Timeout:
		body = TimeoutErrorBody
	case protocol.RequestFailure:
		body = requestErrorPrefix + msg
	default:
		kind = protocol.Unexpected
		body = unexpectedPrefix + msg
	}
	return Response{
		StatusCode: 0,
		Headers:    map[string]string{},
		Body:       body,
		Kind:       kind,
	}
}

// FormatBody pretty-prints JSON with a 2-space indent, passes other text
// through unchanged, and substitutes EmptyBody for blank input.
func FormatBody(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return EmptyBody
	}
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}
	out := pretty.PrettyOptions(raw, indentOptions)
	return strings.TrimRight(string(out), "\n")
}

// Format renders the combined text block shown in the response pane and
// written by export.
func Format(r Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %d\n\n", r.StatusCode)
	b.WriteString("--- Headers ---\n")
	b.WriteString(FormatHeaders(r.Headers))
	b.WriteString("\n\n--- Body ---\n")
	b.WriteString(r.Body)
	return b.String()
}

// FormatHeaders renders headers as 2-space indented JSON with sorted keys.
func FormatHeaders(h map[string]string) string {
	if len(h) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
