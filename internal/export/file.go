package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to export paths that have none.
const DefaultExtension = ".json"

// ErrNothingToExport is returned when there is no response text to write.
var ErrNothingToExport = errors.New("no response to export")

// WriteResponse writes the combined response text to path verbatim and
// returns the path actually written. Parent directories must exist.
func WriteResponse(path, text string) (string, error) {
	if text == "" {
		return "", ErrNothingToExport
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("export path is empty")
	}
	if filepath.Ext(path) == "" {
		path += DefaultExtension
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
