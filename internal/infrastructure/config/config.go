package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Config holds all application configuration.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway" toml:"gateway"`
	Accessor  AccessorConfig  `yaml:"accessor" toml:"accessor"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" toml:"cors"`
}

// GatewayConfig holds HTTP gateway configuration.
type GatewayConfig struct {
	Host            string   `envconfig:"GATEWAY_HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
	Port            string   `envconfig:"GATEWAY_PORT" default:"3000" yaml:"port" toml:"port"`
	ShutdownTimeout Duration `envconfig:"GATEWAY_SHUTDOWN_TIMEOUT" default:"10s" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// Addr returns the gateway listen address.
func (g GatewayConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// AccessorConfig holds accessor service configuration. The gateway uses Addr
// to dial; the accessor listens on it and serves Root.
type AccessorConfig struct {
	Addr        string   `envconfig:"ACCESSOR_ADDR" default:"localhost:9999" yaml:"addr" toml:"addr"`
	Root        string   `envconfig:"ACCESSOR_ROOT" default:"." yaml:"root" toml:"root"`
	MaxMsgBytes int      `envconfig:"ACCESSOR_MAX_MSG_BYTES" default:"67108864" yaml:"max_msg_bytes" toml:"max_msg_bytes"`
	CallTimeout Duration `envconfig:"ACCESSOR_CALL_TIMEOUT" default:"0s" yaml:"call_timeout" toml:"call_timeout"`
	// MetricsAddr, when set, serves the accessor's Prometheus metrics over HTTP
	MetricsAddr string `envconfig:"ACCESSOR_METRICS_ADDR" yaml:"metrics_addr" toml:"metrics_addr"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"rps" toml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:8000,http://localhost:3000" yaml:"origins" toml:"origins"`
}

// Duration is a time.Duration read from strings such as "30s" in env
// variables, YAML and TOML alike.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFile loads environment configuration and overlays the given file.
// An empty path skips the overlay.
func LoadWithFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	if err := cfg.Overlay(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay decodes a YAML or TOML file on top of cfg. Keys absent from the
// file keep their current values.
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail at startup.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Gateway.Port); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid gateway port %q", c.Gateway.Port)
	}
	if c.Accessor.Addr == "" {
		return errors.New("accessor address is required")
	}
	if c.Accessor.Root == "" {
		return errors.New("accessor root is required")
	}
	if c.Accessor.MaxMsgBytes <= 0 {
		return fmt.Errorf("invalid accessor max message size %d", c.Accessor.MaxMsgBytes)
	}
	if c.Accessor.CallTimeout.Duration < 0 {
		return fmt.Errorf("invalid accessor call timeout %s", c.Accessor.CallTimeout)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit requires positive rps and burst")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Host:            "0.0.0.0",
			Port:            "3000",
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Accessor: AccessorConfig{
			Addr:        "localhost:9999",
			Root:        ".",
			MaxMsgBytes: 64 << 20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:8000", "http://localhost:3000"},
		},
	}
}
