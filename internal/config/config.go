// Package config loads urlcheck settings from a YAML file, environment
// variables and command-line flags, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProviderKind   = "http"
	DefaultEndpoint       = "https://mocki.io/v1/ef956329-cea3-4f6c-94bb-dd42b3bed68c"
	DefaultTimeoutSeconds = 10
	DefaultDebounceMS     = 1000
	DefaultUserAgent      = "urlcheck"

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultMaxLogSizeMB  = 10
	DefaultMaxLogBackups = 3
)

// Config is the full application configuration.
type Config struct {
	Provider   ProviderConfig `yaml:"provider"`
	DebounceMS int            `yaml:"debounce_ms" validate:"min=0,max=10000"`
	Log        LogConfig      `yaml:"log"`
}

// ProviderConfig selects and tunes the known-URL provider.
type ProviderConfig struct {
	// Kind: http | file | sample
	Kind           string `yaml:"kind" validate:"required,oneof=http file sample"`
	Endpoint       string `yaml:"endpoint" validate:"required_if=Kind http,omitempty,url"`
	File           string `yaml:"file" validate:"required_if=Kind file"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"min=1,max=300"`
	HTTP2          bool   `yaml:"http2"`
	UserAgent      string `yaml:"user_agent"`
}

// LogConfig defines configuration for logging.
type LogConfig struct {
	LogFile       string `yaml:"log_file,omitempty"`
	LogFormat     string `yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogLevel      string `yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	MaxLogBackups int    `yaml:"max_log_backups,omitempty" validate:"min=0"`
	MaxLogSizeMB  int    `yaml:"max_log_size_mb,omitempty" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Kind:           DefaultProviderKind,
			Endpoint:       DefaultEndpoint,
			TimeoutSeconds: DefaultTimeoutSeconds,
			UserAgent:      DefaultUserAgent,
		},
		DebounceMS: DefaultDebounceMS,
		Log: LogConfig{
			LogFile:       filepath.Join(Dir(), "urlcheck.log"),
			LogFormat:     DefaultLogFormat,
			LogLevel:      DefaultLogLevel,
			MaxLogBackups: DefaultMaxLogBackups,
			MaxLogSizeMB:  DefaultMaxLogSizeMB,
		},
	}
}

// Debounce returns the quiet window before an existence lookup.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Timeout returns the provider request timeout.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

var (
	// ErrReadConfig - error reading config file.
	ErrReadConfig = errors.New("reading config")
	// ErrParseConfig - error parsing config file or an environment override.
	ErrParseConfig = errors.New("parse config")
)

// Dir returns the per-user urlcheck directory.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "urlcheck")
	}
	h, _ := os.UserHomeDir()
	if h == "" {
		h = "."
	}
	return filepath.Join(h, ".config", "urlcheck")
}

// Path determines which config file to read.
// Priority: flag, URLCHECK_CONFIG, ./urlcheck.yaml, <Dir>/config.yaml.
// An explicit flag value is returned even if missing so Load can report it.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv("URLCHECK_CONFIG"); env != "" {
		return env
	}
	for _, p := range []string{"urlcheck.yaml", filepath.Join(Dir(), "config.yaml")} {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Load builds the configuration: defaults, then the file at path (if any),
// then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(c *Config) error {
	if val, ok := os.LookupEnv("URLCHECK_PROVIDER"); ok {
		c.Provider.Kind = val
	}
	if val, ok := os.LookupEnv("URLCHECK_ENDPOINT"); ok {
		c.Provider.Endpoint = val
	}
	if val, ok := os.LookupEnv("URLCHECK_FILE"); ok {
		c.Provider.File = val
	}
	if val, ok := os.LookupEnv("URLCHECK_DEBOUNCE_MS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%w: URLCHECK_DEBOUNCE_MS: %v", ErrParseConfig, err)
		}
		c.DebounceMS = n
	}
	if val, ok := os.LookupEnv("URLCHECK_LOG_LEVEL"); ok {
		c.Log.LogLevel = val
	}
	return nil
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
