package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from ~/.config/kapi/config.yaml.
func Load() Config {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}

	path := filepath.Join(home, ".config", "kapi", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	// Decode into a copy so a half-parsed file never leaks partial values.
	parsed := cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}
	if parsed.DefaultTimeout <= 0 {
		parsed.DefaultTimeout = cfg.DefaultTimeout
	}
	return parsed
}

// DataDir returns the directory kapi keeps its history in.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "kapi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", "kapi")
}

// StateDir returns the directory kapi writes its log file to.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "kapi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "state", "kapi")
}

// ResolveHistoryPath returns the configured history file, or the default
// location under DataDir.
func (c Config) ResolveHistoryPath() string {
	if c.HistoryPath != "" {
		return expandHome(c.HistoryPath)
	}
	return filepath.Join(DataDir(), "history.json")
}

// ResolveLogFile returns the configured log file, or the default location
// under StateDir.
func (c Config) ResolveLogFile() string {
	if c.LogFile != "" {
		return expandHome(c.LogFile)
	}
	return filepath.Join(StateDir(), "kapi.log")
}

// Resolve expands a leading ~/ in the certificate paths.
func (t TLSConfig) Resolve() TLSConfig {
	t.CertFile = expandHome(t.CertFile)
	t.KeyFile = expandHome(t.KeyFile)
	t.CAFile = expandHome(t.CAFile)
	return t
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
