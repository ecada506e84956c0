package export

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/sadopc/kapi/internal/protocol"
)

// CurlCommand is a request recovered from a curl command line. Body is the
// raw -d text and is not validated.
type CurlCommand struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

var (
	ErrEmptyCommand = errors.New("empty curl command")
	ErrNoURL        = errors.New("no URL found in curl command")
)

// ParseCurl reads the subset of curl flags that AsCurl writes, plus the
// common ones browsers put in "copy as cURL".
func ParseCurl(input string) (*CurlCommand, error) {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\\\r\n", " ")
	input = strings.ReplaceAll(input, "\\\n", " ")

	args := tokenize(input)
	if len(args) > 0 && strings.EqualFold(args[0], "curl") {
		args = args[1:]
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := &CurlCommand{
		Method:  protocol.MethodGet,
		Headers: make(map[string]string),
	}
	explicitMethod := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() (string, bool) {
			if i+1 >= len(args) {
				return "", false
			}
			i++
			return args[i], true
		}

		switch arg {
		case "-X", "--request":
			if v, ok := next(); ok {
				cmd.Method = strings.ToUpper(v)
				explicitMethod = true
			}
		case "-H", "--header":
			if v, ok := next(); ok {
				if key, val := parseHeader(v); key != "" {
					cmd.Headers[key] = val
				}
			}
		case "-d", "--data", "--data-raw", "--data-binary":
			if v, ok := next(); ok {
				cmd.Body = v
				if !explicitMethod {
					cmd.Method = protocol.MethodPost
				}
			}
		case "-u", "--user":
			if v, ok := next(); ok {
				cmd.Headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(v))
			}
		case "-A", "--user-agent":
			if v, ok := next(); ok {
				cmd.Headers["User-Agent"] = v
			}
		case "-o", "--output":
			next()
		default:
			if !strings.HasPrefix(arg, "-") && cmd.URL == "" {
				cmd.URL = arg
			}
		}
	}

	if cmd.URL == "" {
		return nil, ErrNoURL
	}
	return cmd, nil
}

// tokenize splits a shell command into words, honoring single and double
// quotes and backslash escapes outside single quotes.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inSingle, inDouble, escaped, started := false, false, false, false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			started = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case (r == ' ' || r == '\t' || r == '\n') && !inSingle && !inDouble:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if started {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// parseHeader splits "Key: Value".
func parseHeader(s string) (string, string) {
	key, val, ok := strings.Cut(s, ":")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(key), strings.TrimSpace(val)
}
