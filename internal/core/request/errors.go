package request

import (
	"errors"
	"fmt"
)

// Kind identifies why a request could not be built.
type Kind int

const (
	MissingURL Kind = iota + 1
	InvalidMethod
	HeaderParseError
	BodyParseError
)

func (k Kind) String() string {
	switch k {
	case MissingURL:
		return "missing URL"
	case InvalidMethod:
		return "invalid method"
	case HeaderParseError:
		return "header parse error"
	case BodyParseError:
		return "body parse error"
	default:
		return fmt.Sprintf("unknown build error %d", int(k))
	}
}

// Sentinels for errors.Is checks against an *Error.
var (
	ErrMissingURL    = errors.New("URL is required")
	ErrInvalidMethod = errors.New("invalid method")
	ErrHeaderParse   = errors.New("invalid headers JSON")
	ErrBodyParse     = errors.New("invalid body JSON")
)

// Error is returned by Build. Err carries the parser message for the two
// parse kinds.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingURL:
		return "Please enter a URL"
	case InvalidMethod:
		return fmt.Sprintf("Invalid method: %v", e.Err)
	case HeaderParseError:
		return fmt.Sprintf("JSON parsing error in headers: %v", e.Err)
	case BodyParseError:
		return fmt.Sprintf("JSON parsing error in body: %v", e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMissingURL:
		return e.Kind == MissingURL
	case ErrInvalidMethod:
		return e.Kind == InvalidMethod
	case ErrHeaderParse:
		return e.Kind == HeaderParseError
	case ErrBodyParse:
		return e.Kind == BodyParseError
	}
	return false
}

// KindOf returns the build error kind of err, or 0 if err is not a build error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}
