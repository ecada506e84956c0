package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sadopc/kapi/internal/protocol"
)

// AsCurl converts a request to a curl command string. Headers are emitted
// in sorted order so the output is stable.
func AsCurl(req *protocol.Request) string {
	if req == nil {
		return ""
	}
	var parts []string
	parts = append(parts, "curl")

	// Method
	if req.Method != protocol.MethodGet {
		parts = append(parts, "-X", req.Method)
	}

	// Headers
	keys := make([]string, 0, len(req.Headers))
	for k := range req.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, "-H", shellQuote(fmt.Sprintf("%s: %s", k, req.Headers[k])))
	}

	// Body
	if req.HasBody() {
		parts = append(parts, "-d", shellQuote(string(req.Body)))
	}

	parts = append(parts, shellQuote(req.URL))
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
