package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// Store persists history as a single JSON array, oldest entry first. Every
// append rereads and rewrites the whole file; concurrent writers are not
// coordinated and the last one wins.
type Store struct {
	path string
	log  *zap.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Init creates the parent directories and an empty history file if none
// exists yet. An existing file is never touched.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking history file: %w", err)
	}
	if err := s.write([]Entry{}); err != nil {
		return err
	}
	return nil
}

// Load returns all entries, oldest first. A missing file yields no entries.
// An unreadable or undecodable file is logged and also yields no entries;
// the file itself is left as it is.
func (s *Store) Load() []Entry {
	entries, err := s.read()
	if err != nil {
		s.log.Warn("could not decode history file, starting with empty history",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return []Entry{}
	}
	return entries
}

// Append adds e to the end of the history and rewrites the file.
func (s *Store) Append(e Entry) error {
	entries := s.Load()
	entries = append(entries, e)
	if err := s.write(entries); err != nil {
		s.log.Error("failed to save history", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.log.Debug("history entry appended",
		zap.String("method", e.Method),
		zap.String("url", e.URL),
		zap.Int("status", e.StatusCode),
		zap.Int("entries", len(entries)),
	)
	return nil
}

// Recent returns up to limit entries, most recent first. A non-positive
// limit returns everything.
func (s *Store) Recent(limit int) []Entry {
	return Reverse(s.Load(), limit)
}

// Search fuzzy-matches query against entry labels and returns the best
// matches first. An empty query behaves like Recent.
func (s *Store) Search(query string, limit int) []Entry {
	return Filter(s.Recent(0), query, limit)
}

// Reverse returns entries newest first, capped at limit when limit > 0.
func Reverse(entries []Entry, limit int) []Entry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}

// Filter fuzzy-matches query against the labels of entries, keeping the
// best matches first. The input order breaks ties.
func Filter(entries []Entry, query string, limit int) []Entry {
	if query == "" {
		if limit > 0 && limit < len(entries) {
			return entries[:limit]
		}
		return entries
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label()
	}
	matches := fuzzy.Find(query, labels)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *Store) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	for i := range entries {
		entries[i].normalize()
	}
	return entries, nil
}

// write replaces the file through a temp file in the same directory so a
// failed write never leaves a truncated history behind.
func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
