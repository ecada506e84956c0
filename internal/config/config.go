package config

import "time"

// Config holds the application configuration.
type Config struct {
	DarkMode       bool          `yaml:"dark_mode"`
	DefaultTimeout time.Duration `yaml:"default_timeout"`
	HistoryPath    string        `yaml:"history_path"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	Proxy          string        `yaml:"proxy"`
	NoProxy        string        `yaml:"no_proxy"`
	TLS            TLSConfig     `yaml:"tls"`
}

// TLSConfig holds certificate settings for HTTPS requests.
type TLSConfig struct {
	CertFile           string `yaml:"cert_file"`
	KeyFile            string `yaml:"key_file"`
	CAFile             string `yaml:"ca_file"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DarkMode:       false,
		DefaultTimeout: 30 * time.Second,
		HistoryPath:    "",
		LogLevel:       "info",
		LogFile:        "",
		Proxy:          "",
		NoProxy:        "",
	}
}
