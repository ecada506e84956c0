package protocol

import (
	"context"
	"encoding/json"
	"time"
)

// Supported request methods.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Methods lists the supported methods in display order.
var Methods = []string{MethodGet, MethodPost, MethodPut, MethodDelete}

// Executor performs a single request. Implementations never return a nil
// Result; transport problems are reported through Result.Kind.
type Executor interface {
	Execute(ctx context.Context, req *Request) *Result
}

// Request is a validated request ready to be sent.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body holds compact JSON. Nil means no payload at all.
	Body json.RawMessage
}

// HasBody reports whether the request carries a JSON payload.
func (r *Request) HasBody() bool {
	return r != nil && r.Body != nil
}

// FailureKind classifies the outcome of an Execute call.
type FailureKind int

const (
	// OK means an HTTP response was received, whatever its status code.
	OK FailureKind = iota
	ConnectionFailure
	Timeout
	RequestFailure
	Unexpected
)

func (k FailureKind) String() string {
	switch k {
	case OK:
		return "ok"
	case ConnectionFailure:
		return "connection"
	case Timeout:
		return "timeout"
	case RequestFailure:
		return "request"
	case Unexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a send. When Kind is not OK only Err is
// meaningful.
type Result struct {
	Kind        FailureKind
	Err         error
	StatusCode  int
	Headers     map[string]string
	Body        []byte
	ContentType string
	Duration    time.Duration
}

// Failed builds a non-OK result.
func Failed(kind FailureKind, err error) *Result {
	return &Result{Kind: kind, Err: err}
}
