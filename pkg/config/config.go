// ------------------------------------------------------
// editdist - Configuration Module
// ------------------------------------------------------

package config

import (
	"fmt"
)

// Version information
const (
	Version   = "1.0.0"
	BuildDate = "2026-08-03"
)

// Default batch / algorithm values
const (
	DefaultConcurrency = 20
	DefaultRateLimit   = 0 // 0 means unlimited
	DefaultBatchSize   = 100
)

// API server constant
const (
	// DefaultAPIPort is the default port for the REST API server.
	DefaultAPIPort = 8080
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	OutputHuman    OutputFormat = "human"
	OutputJSON     OutputFormat = "json"
	OutputCSV      OutputFormat = "csv"
	OutputHTML     OutputFormat = "html"
	OutputMarkdown OutputFormat = "markdown"
)

// validOutputFormats is used by Validate() to check the configured format.
var validOutputFormats = map[OutputFormat]struct{}{
	OutputHuman:    {},
	OutputJSON:     {},
	OutputCSV:      {},
	OutputHTML:     {},
	OutputMarkdown: {},
}

// LogLevel represents logging verbosity.
type LogLevel int

const (
	LogQuiet LogLevel = iota
	LogWarn
	LogInfo
	LogDebug
	LogTrace
)

// Config holds all configuration for a run of the comparator: the
// algorithm options every call into pkg/levenshtein accepts, the batch
// runner's concurrency knobs, output formatting, and the optional HTTP API
// server.
type Config struct {
	// Algorithm options
	ScoreCutoff int `json:"score_cutoff" toml:"score_cutoff"`

	// Batch options
	Concurrency int `json:"concurrency" toml:"concurrency"`
	RateLimit   int `json:"rate_limit"  toml:"rate_limit"`

	// Output options
	Output     OutputFormat `json:"output"      toml:"output"`
	OutputFile string       `json:"output_file" toml:"output_file"`
	LogLevel   LogLevel     `json:"log_level"   toml:"-"`
	Quiet      bool         `json:"quiet"       toml:"-"`

	// API server options
	EnableAPI   bool   `json:"enable_api"    toml:"-"`
	APIPort     int    `json:"api_port"      toml:"api_port"`
	APIKey      string `json:"api_key"       toml:"-"`
	EnableHTTP2 bool   `json:"enable_http2"  toml:"enable_http2"`
	TLSCertFile string `json:"tls_cert_file" toml:"-"`
	TLSKeyFile  string `json:"tls_key_file"  toml:"-"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ScoreCutoff: -1,
		Concurrency: DefaultConcurrency,
		RateLimit:   DefaultRateLimit,
		Output:      OutputHuman,
		LogLevel:    LogWarn,
		APIPort:     DefaultAPIPort,
		EnableHTTP2: true,
	}
}

// Validate validates the configuration and returns a descriptive error if invalid.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative, got %d", c.RateLimit)
	}

	if c.ScoreCutoff < -1 {
		return fmt.Errorf("score_cutoff must be -1 (no cutoff) or non-negative, got %d", c.ScoreCutoff)
	}

	if _, ok := validOutputFormats[c.Output]; !ok {
		return fmt.Errorf("unknown output format %q", c.Output)
	}

	if c.EnableAPI && (c.APIPort < 1 || c.APIPort > 65535) {
		return fmt.Errorf("api_port must be between 1 and 65535, got %d", c.APIPort)
	}

	return nil
}
