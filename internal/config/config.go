// Package config provides centralized configuration management for the tool.
// It loads configuration from environment variables with sensible defaults
// and validates all settings on startup to fail fast on misconfiguration.
// Command-line flags override environment values.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	NetBox  NetBoxConfig
	Data    DataConfig
	Source  SourceConfig
	Logging LoggingConfig
}

// NetBoxConfig holds target NetBox API settings.
type NetBoxConfig struct {
	// URL is the base URL of the target NetBox instance (default: http://localhost:8001)
	URL string `env:"NETBOX_URL" default:"http://localhost:8001"`

	// Token is the API bearer token. Required for populate runs.
	Token string `env:"NETBOX_TOKEN"`

	// RequestTimeout is the per-request timeout (default: 30s)
	RequestTimeout time.Duration `env:"NETBOX_REQUEST_TIMEOUT" default:"30s"`

	// RetryMax is the number of retries for transient failures (default: 3)
	RetryMax int `env:"NETBOX_RETRY_MAX" default:"3"`

	// RetryBaseDelay is the initial backoff delay (default: 500ms)
	RetryBaseDelay time.Duration `env:"NETBOX_RETRY_BASE_DELAY" default:"500ms"`

	// RetryMaxDelay caps the backoff delay (default: 8s)
	RetryMaxDelay time.Duration `env:"NETBOX_RETRY_MAX_DELAY" default:"8s"`
}

// DataConfig holds input data settings.
type DataConfig struct {
	// Dir is the directory holding the extracted JSON files (default: extracted_data)
	Dir string `env:"NETBOX_DATA_DIR" default:"extracted_data"`

	// RulesFile is an optional YAML file overriding the built-in filter rules.
	RulesFile string `env:"NETBOX_RULES_FILE"`
}

// SourceConfig holds settings for the extract command.
type SourceConfig struct {
	// DSN is the PostgreSQL connection string of the source NetBox database.
	// Supports both SOURCE_DATABASE_URL and DATABASE_URL for compatibility.
	DSN string `env:"SOURCE_DATABASE_URL" envAlt:"DATABASE_URL"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.NetBox.URL == "" {
		errs = append(errs, "NETBOX_URL is required")
	} else if u, err := url.Parse(c.NetBox.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("NETBOX_URL (%q) must be a valid http(s) URL", c.NetBox.URL))
	}

	if c.NetBox.RequestTimeout <= 0 {
		errs = append(errs, "NETBOX_REQUEST_TIMEOUT must be positive")
	}
	if c.NetBox.RetryMax < 0 {
		errs = append(errs, "NETBOX_RETRY_MAX must be non-negative")
	}
	if c.NetBox.RetryBaseDelay <= 0 {
		errs = append(errs, "NETBOX_RETRY_BASE_DELAY must be positive")
	}
	if c.NetBox.RetryMaxDelay < c.NetBox.RetryBaseDelay {
		errs = append(errs, "NETBOX_RETRY_MAX_DELAY must be >= NETBOX_RETRY_BASE_DELAY")
	}

	if c.Data.Dir == "" {
		errs = append(errs, "NETBOX_DATA_DIR is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateToken checks the API token format. Populate runs require a
// non-empty token without whitespace or control characters; a malformed
// token is a setup error, not a per-record failure.
func (c *NetBoxConfig) ValidateToken() error {
	if c.Token == "" {
		return fmt.Errorf("API token is required (--token or NETBOX_TOKEN)")
	}
	for _, r := range c.Token {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("API token contains whitespace or control characters")
		}
	}
	return nil
}

// String returns a safe string representation of the config for logging.
// The API token and source DSN are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("NetBox: {URL: %q, Token: [MASKED], RetryMax: %d}, ", c.NetBox.URL, c.NetBox.RetryMax))
	b.WriteString(fmt.Sprintf("Data: {Dir: %q, RulesFile: %q}, ", c.Data.Dir, c.Data.RulesFile))
	b.WriteString("Source: {DSN: [MASKED]}, ")
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
