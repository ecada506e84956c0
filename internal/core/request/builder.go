// Package request turns the raw editor fields into a protocol.Request.
package request

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/sadopc/kapi/internal/protocol"
)

// Build validates the four user-entered fields and assembles a request.
// It performs no I/O. Any returned error is an *Error.
func Build(method, urlText, headersText, bodyText string) (*protocol.Request, error) {
	if !ValidMethod(method) {
		return nil, &Error{Kind: InvalidMethod, Err: fmt.Errorf("%q is not one of %s", method, strings.Join(protocol.Methods, ", "))}
	}

	url := strings.TrimSpace(urlText)
	if url == "" {
		return nil, &Error{Kind: MissingURL, Err: ErrMissingURL}
	}

	headers, err := ParseHeaders(headersText)
	if err != nil {
		return nil, err
	}

	body, err := ParseBody(bodyText)
	if err != nil {
		return nil, err
	}

	return &protocol.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
	}, nil
}

// ValidMethod reports whether method is one of the supported methods.
func ValidMethod(method string) bool {
	return slices.Contains(protocol.Methods, method)
}

// ParseMethod normalizes CLI input such as "post" to a supported method.
func ParseMethod(s string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(s))
	if !ValidMethod(m) {
		return "", &Error{Kind: InvalidMethod, Err: fmt.Errorf("%q is not one of %s", s, strings.Join(protocol.Methods, ", "))}
	}
	return m, nil
}

// ParseHeaders decodes a JSON object of header names to values. Blank input
// yields an empty, non-nil map. String values are used verbatim, numbers and
// booleans keep their JSON text.
func ParseHeaders(text string) (map[string]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]string{}, nil
	}
	if err := syntaxCheck(trimmed); err != nil {
		return nil, &Error{Kind: HeaderParseError, Err: err}
	}

	parsed := gjson.Parse(trimmed)
	if !parsed.IsObject() {
		return nil, &Error{Kind: HeaderParseError, Err: fmt.Errorf("headers must be a JSON object, got %s", typeName(parsed))}
	}

	headers := make(map[string]string)
	var valueErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			headers[key.String()] = value.String()
		case gjson.Number, gjson.True, gjson.False:
			headers[key.String()] = value.Raw
		default:
			valueErr = fmt.Errorf("header %q must be a string, number or boolean, got %s", key.String(), typeName(value))
			return false
		}
		return true
	})
	if valueErr != nil {
		return nil, &Error{Kind: HeaderParseError, Err: valueErr}
	}
	return headers, nil
}

// ParseBody validates a JSON payload of any type. Blank input and a bare
// null yield nil, meaning the request carries no payload. The result is
// compacted.
func ParseBody(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if err := syntaxCheck(trimmed); err != nil {
		return nil, &Error{Kind: BodyParseError, Err: err}
	}
	body := pretty.Ugly([]byte(trimmed))
	if string(body) == "null" {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// syntaxCheck returns the decoder's own message so users see where the
// input went wrong.
func syntaxCheck(s string) error {
	var v any
	return json.Unmarshal([]byte(s), &v)
}

func typeName(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
