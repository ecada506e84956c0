package export

import (
	"strings"
	"testing"

	"github.com/sadopc/kapi/internal/protocol"
)

func TestAsCurl_GET(t *testing.T) {
	req := &protocol.Request{
		Method:  "GET",
		URL:     "https://api.example.com/users",
		Headers: map[string]string{"Accept": "application/json"},
	}

	result := AsCurl(req)
	if !strings.HasPrefix(result, "curl") {
		t.Error("should start with 'curl'")
	}
	if strings.Contains(result, "-X") {
		t.Error("GET should not have -X flag")
	}
	if !strings.Contains(result, "Accept: application/json") {
		t.Error("should contain Accept header")
	}
	if !strings.HasSuffix(result, "'https://api.example.com/users'") {
		t.Errorf("should end with quoted URL, got: %s", result)
	}
}

func TestAsCurl_POST(t *testing.T) {
	req := &protocol.Request{
		Method:  "POST",
		URL:     "https://api.example.com/users",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{"name":"test"}`),
	}

	result := AsCurl(req)
	if !strings.Contains(result, "-X POST") {
		t.Error("should have -X POST")
	}
	if !strings.Contains(result, `-d '{"name":"test"}'`) {
		t.Errorf("should contain body data, got: %s", result)
	}
}

func TestAsCurl_SortedHeaders(t *testing.T) {
	req := &protocol.Request{
		Method:  "DELETE",
		URL:     "https://api.example.com/users/1",
		Headers: map[string]string{"X-B": "2", "X-A": "1", "Accept": "*/*"},
	}

	want := `curl -X DELETE -H 'Accept: */*' -H 'X-A: 1' -H 'X-B: 2' 'https://api.example.com/users/1'`
	if got := AsCurl(req); got != want {
		t.Errorf("AsCurl() =\n%s\nwant\n%s", got, want)
	}
}

func TestAsCurl_EscapesSingleQuotes(t *testing.T) {
	req := &protocol.Request{
		Method: "PUT",
		URL:    "https://api.example.com/notes",
		Body:   []byte(`{"text":"it's"}`),
	}

	result := AsCurl(req)
	if !strings.Contains(result, `-d '{"text":"it'\''s"}'`) {
		t.Errorf("single quote not escaped, got: %s", result)
	}
}

func TestAsCurl_Nil(t *testing.T) {
	if got := AsCurl(nil); got != "" {
		t.Errorf("AsCurl(nil) = %q", got)
	}
}
