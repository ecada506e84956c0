package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/protocol"
)

// TimestampLayout is local time with microseconds and no zone, the same
// shape other tools write into the file.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Entry represents a single history entry. Entries are never modified once
// written.
type Entry struct {
	Timestamp       string          `json:"timestamp"`
	Method          string          `json:"method"`
	URL             string          `json:"url"`
	RequestHeaders  Headers         `json:"request_headers"`
	RequestBody     json.RawMessage `json:"request_body"`
	StatusCode      int             `json:"response_status_code"`
	ResponseHeaders Headers         `json:"response_headers"`
	ResponseBody    string          `json:"response_body"`
}

// NewEntry records one completed send.
func NewEntry(at time.Time, req *protocol.Request, resp response.Response) Entry {
	e := Entry{
		Timestamp:       FormatTimestamp(at),
		Method:          req.Method,
		URL:             req.URL,
		RequestHeaders:  copyHeaders(req.Headers),
		StatusCode:      resp.StatusCode,
		ResponseHeaders: copyHeaders(resp.Headers),
		ResponseBody:    resp.Body,
	}
	if req.HasBody() {
		e.RequestBody = append(json.RawMessage(nil), req.Body...)
	}
	return e
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Time parses the entry timestamp. Zoned RFC 3339 values are accepted too.
func (e Entry) Time() (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", e.Timestamp, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, e.Timestamp); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Clock returns the HH:MM:SS part of the timestamp.
func (e Entry) Clock() string {
	i := strings.IndexByte(e.Timestamp, 'T')
	if i < 0 {
		return e.Timestamp
	}
	rest := e.Timestamp[i+1:]
	if len(rest) > 8 {
		rest = rest[:8]
	}
	return rest
}

// Label renders the list form "[HH:MM:SS] METHOD → URL".
func (e Entry) Label() string {
	return "[" + e.Clock() + "] " + e.Method + " → " + e.URL
}

// HasRequestBody reports whether a payload was sent.
func (e Entry) HasRequestBody() bool {
	return len(e.RequestBody) > 0 && string(e.RequestBody) != "null"
}

// Request rebuilds the request that produced this entry.
func (e Entry) Request() *protocol.Request {
	req := &protocol.Request{
		Method:  e.Method,
		URL:     e.URL,
		Headers: copyHeaders(e.RequestHeaders),
	}
	if e.HasRequestBody() {
		req.Body = append(json.RawMessage(nil), e.RequestBody...)
	}
	return req
}

// Response rebuilds the recorded response.
func (e Entry) Response() response.Response {
	kind := protocol.OK
	if e.StatusCode == 0 {
		kind = protocol.Unexpected
		switch {
		case e.ResponseBody == response.ConnectionErrorBody:
			kind = protocol.ConnectionFailure
		case e.ResponseBody == response.TimeoutErrorBody:
			kind = protocol.Timeout
		case strings.HasPrefix(e.ResponseBody, "Request Error: "):
			kind = protocol.RequestFailure
		}
	}
	return response.Response{
		StatusCode: e.StatusCode,
		Headers:    copyHeaders(e.ResponseHeaders),
		Body:       e.ResponseBody,
		Kind:       kind,
	}
}

// normalize compacts the stored body and fills nil header maps so loaded
// entries compare equal to freshly built ones.
func (e *Entry) normalize() {
	if !e.HasRequestBody() {
		e.RequestBody = nil
	} else {
		e.RequestBody = json.RawMessage(pretty.Ugly(e.RequestBody))
	}
	if e.RequestHeaders == nil {
		e.RequestHeaders = Headers{}
	}
	if e.ResponseHeaders == nil {
		e.ResponseHeaders = Headers{}
	}
}

// Headers is a string map that also decodes files where header values were
// stored as numbers or booleans.
type Headers map[string]string

// UnmarshalJSON accepts an object with scalar values, or null.
func (h *Headers) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	out := Headers{}
	if parsed.Type == gjson.Null {
		*h = out
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("headers: expected JSON object, got %s", parsed.Type)
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			out[key.String()] = value.String()
		} else {
			out[key.String()] = value.Raw
		}
		return true
	})
	*h = out
	return nil
}

func copyHeaders(src map[string]string) Headers {
	out := make(Headers, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
