package request

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuild_ValidRequest(t *testing.T) {
	req, err := Build("POST", "  https://api.example.com/users  ", `{"Authorization": "Bearer x", "X-Count": 3, "X-Flag": true}`, `{ "name": "test", "tags": [1, 2] }`)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if req.Method != "POST" {
		t.Errorf("Method = %q", req.Method)
	}
	if req.URL != "https://api.example.com/users" {
		t.Errorf("URL not trimmed: %q", req.URL)
	}
	want := map[string]string{"Authorization": "Bearer x", "X-Count": "3", "X-Flag": "true"}
	if !reflect.DeepEqual(req.Headers, want) {
		t.Errorf("Headers = %v, want %v", req.Headers, want)
	}
	if string(req.Body) != `{"name":"test","tags":[1,2]}` {
		t.Errorf("Body = %s", req.Body)
	}
}

func TestBuild_HeadersWithEmptyBody(t *testing.T) {
	objects := []struct {
		text string
		want map[string]string
	}{
		{`{}`, map[string]string{}},
		{`{"Accept":"application/json"}`, map[string]string{"Accept": "application/json"}},
		{"\n  {\"A\": \"1\", \"B\": \"two words\"}\n", map[string]string{"A": "1", "B": "two words"}},
		{`{"X-Unicode":"héllo"}`, map[string]string{"X-Unicode": "héllo"}},
	}
	for _, tt := range objects {
		req, err := Build("GET", "https://example.com", tt.text, "")
		if err != nil {
			t.Fatalf("Build(%q) error: %v", tt.text, err)
		}
		if !reflect.DeepEqual(req.Headers, tt.want) {
			t.Errorf("Build(%q) headers = %v, want %v", tt.text, req.Headers, tt.want)
		}
		if req.HasBody() {
			t.Errorf("Build(%q) body should be absent, got %s", tt.text, req.Body)
		}
	}
}

func TestBuild_BlankHeadersAreEmptyMap(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		req, err := Build("GET", "https://example.com", text, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if req.Headers == nil {
			t.Fatalf("headers for %q are nil, want empty map", text)
		}
		if len(req.Headers) != 0 {
			t.Errorf("headers for %q = %v, want empty", text, req.Headers)
		}
	}
}

func TestBuild_MissingURL(t *testing.T) {
	for _, u := range []string{"", "   ", "\t\n"} {
		_, err := Build("GET", u, "", "")
		if !errors.Is(err, ErrMissingURL) {
			t.Errorf("Build(url=%q) error = %v, want ErrMissingURL", u, err)
		}
		if KindOf(err) != MissingURL {
			t.Errorf("KindOf = %v, want MissingURL", KindOf(err))
		}
	}
}

func TestBuild_InvalidMethod(t *testing.T) {
	for _, m := range []string{"PATCH", "get", "", "HEAD"} {
		_, err := Build(m, "https://example.com", "", "")
		if !errors.Is(err, ErrInvalidMethod) {
			t.Errorf("Build(method=%q) error = %v, want ErrInvalidMethod", m, err)
		}
	}
}

func TestBuild_InvalidMethodCheckedBeforeURL(t *testing.T) {
	_, err := Build("TRACE", "", "", "")
	if KindOf(err) != InvalidMethod {
		t.Errorf("KindOf = %v, want InvalidMethod", KindOf(err))
	}
}

func TestBuild_HeaderParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"malformed", `{"a": }`, "invalid character"},
		{"array", `["a", "b"]`, "got array"},
		{"string", `"Accept"`, "got string"},
		{"number", `42`, "got number"},
		{"null", `null`, "got null"},
		{"nested value", `{"a": {"b": "c"}}`, `header "a"`},
		{"null value", `{"a": null}`, `got null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("GET", "https://example.com", tt.text, "")
			if !errors.Is(err, ErrHeaderParse) {
				t.Fatalf("error = %v, want ErrHeaderParse", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestBuild_BodyParseError(t *testing.T) {
	for _, text := range []string{"not json", `{"a":1`, `{'a': 1}`, "[1,]"} {
		_, err := Build("POST", "https://example.com", "", text)
		if !errors.Is(err, ErrBodyParse) {
			t.Errorf("Build(body=%q) error = %v, want ErrBodyParse", text, err)
		}
		var be *Error
		if !errors.As(err, &be) || be.Err == nil {
			t.Errorf("Build(body=%q) should carry the parser error", text)
		}
	}
}

func TestBuild_BodyAnyJSONType(t *testing.T) {
	tests := map[string]string{
		`"text"`:      `"text"`,
		`  12.5 `:     `12.5`,
		`true`:        `true`,
		"[1, 2,\n 3]": `[1,2,3]`,
	}
	for in, want := range tests {
		req, err := Build("PUT", "https://example.com", "", in)
		if err != nil {
			t.Fatalf("Build(body=%q) error: %v", in, err)
		}
		if !req.HasBody() {
			t.Fatalf("Build(body=%q) body absent", in)
		}
		if string(req.Body) != want {
			t.Errorf("Build(body=%q) = %s, want %s", in, req.Body, want)
		}
	}
}

func TestBuild_NullBodyIsAbsent(t *testing.T) {
	for _, in := range []string{"null", "  null\n"} {
		req, err := Build("POST", "https://example.com", "", in)
		if err != nil {
			t.Fatalf("Build(body=%q) error: %v", in, err)
		}
		if req.HasBody() {
			t.Errorf("Build(body=%q) should carry no payload, got %s", in, req.Body)
		}
	}
}

func TestBuild_HeaderErrorReportedBeforeBody(t *testing.T) {
	_, err := Build("POST", "https://example.com", "[", "also bad")
	if KindOf(err) != HeaderParseError {
		t.Errorf("KindOf = %v, want HeaderParseError", KindOf(err))
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]string{"get": "GET", " Post ": "POST", "PUT": "PUT", "delete": "DELETE"} {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMethod("patch"); !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("ParseMethod(patch) error = %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := Build("GET", "", "", "")
	if err.Error() != "Please enter a URL" {
		t.Errorf("MissingURL message = %q", err.Error())
	}
	_, err = Build("GET", "https://x", "", "nope")
	if !strings.HasPrefix(err.Error(), "JSON parsing error in body: ") {
		t.Errorf("BodyParseError message = %q", err.Error())
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf(plain error) should be 0")
	}
}
