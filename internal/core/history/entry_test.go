package history

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/protocol"
)

func TestNewEntry(t *testing.T) {
	at := time.Date(2024, 6, 7, 23, 59, 58, 999999999, time.Local)
	req := &protocol.Request{Method: "GET", URL: "https://example.com", Headers: map[string]string{"A": "1"}}
	resp := response.Response{StatusCode: 0, Headers: map[string]string{}, Body: response.ConnectionErrorBody}

	e := NewEntry(at, req, resp)
	if e.Timestamp != "2024-06-07T23:59:58.999999" {
		t.Errorf("Timestamp = %q", e.Timestamp)
	}
	if e.RequestBody != nil {
		t.Errorf("RequestBody = %s, want nil", e.RequestBody)
	}
	if e.StatusCode != 0 || e.ResponseBody != response.ConnectionErrorBody {
		t.Errorf("unexpected response fields: %+v", e)
	}

	req.Headers["A"] = "changed"
	if e.RequestHeaders["A"] != "1" {
		t.Error("entry must not share the request's header map")
	}
}

func TestEntry_Label(t *testing.T) {
	tests := []struct {
		ts   string
		want string
	}{
		{"2024-01-02T15:04:05.123456", "[15:04:05] PUT → https://x.test"},
		{"2024-01-02T15:04:05", "[15:04:05] PUT → https://x.test"},
		{"2024-01-02T15:04", "[15:04] PUT → https://x.test"},
		{"garbage", "[garbage] PUT → https://x.test"},
	}
	for _, tt := range tests {
		e := Entry{Timestamp: tt.ts, Method: "PUT", URL: "https://x.test"}
		if got := e.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.ts, got, tt.want)
		}
	}
}

func TestEntry_Time(t *testing.T) {
	e := Entry{Timestamp: "2024-01-02T15:04:05.123456"}
	got, ok := e.Time()
	if !ok {
		t.Fatal("Time() failed to parse")
	}
	if got.Hour() != 15 || got.Nanosecond() != 123456000 {
		t.Errorf("Time() = %v", got)
	}
	if _, ok := (Entry{Timestamp: "2024-01-02T15:04:05Z"}).Time(); !ok {
		t.Error("RFC3339 timestamp should parse")
	}
	if _, ok := (Entry{Timestamp: "yesterday"}).Time(); ok {
		t.Error("garbage timestamp should not parse")
	}
}

func TestEntry_RequestReplay(t *testing.T) {
	e := Entry{
		Method:         "POST",
		URL:            "https://example.com",
		RequestHeaders: Headers{"X": "y"},
		RequestBody:    json.RawMessage(`{"a":1}`),
	}
	req := e.Request()
	if req.Method != "POST" || req.URL != "https://example.com" || req.Headers["X"] != "y" {
		t.Errorf("Request() = %+v", req)
	}
	if string(req.Body) != `{"a":1}` {
		t.Errorf("Body = %s", req.Body)
	}

	e.RequestBody = json.RawMessage("null")
	if e.Request().HasBody() {
		t.Error("null request body should replay as no body")
	}
}

func TestHeaders_UnmarshalJSON(t *testing.T) {
	var h Headers
	if err := json.Unmarshal([]byte(`null`), &h); err != nil || h == nil || len(h) != 0 {
		t.Errorf("null → %v, %v", h, err)
	}
	if err := json.Unmarshal([]byte(`{"a":"b","n":1.5}`), &h); err != nil {
		t.Fatal(err)
	}
	if h["a"] != "b" || h["n"] != "1.5" {
		t.Errorf("got %v", h)
	}
	if err := json.Unmarshal([]byte(`["a"]`), &h); err == nil {
		t.Error("expected error for array headers")
	}
}
