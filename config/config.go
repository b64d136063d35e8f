// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Bridge      BridgeConfig      `yaml:"bridge"`
	Logging     LoggingConfig     `yaml:"logging"`
	Audit       AuditConfig       `yaml:"audit"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// SchedulerConfig names the scheduler service to connect to.
type SchedulerConfig struct {
	Server string `yaml:"server"`

	// Version pins the service version instead of trusting the one the
	// bridge negotiates. Zero means negotiate.
	Version int `yaml:"version"`
}

// CredentialsConfig authenticates the connection. Empty fields mean
// integrated authentication on the service side.
type CredentialsConfig struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// BridgeConfig configures the HTTP bridge in front of the automation
// interface.
type BridgeConfig struct {
	URL     string            `yaml:"url"`
	APIKey  string            `yaml:"api_key,omitempty"`
	Timeout time.Duration     `yaml:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// AuditConfig configures the persistent dispatch audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsConfig configures the Prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // host:port for the exporter
	Path    string `yaml:"path"`   // scrape path (default: /metrics)
	Prefix  string `yaml:"prefix"` // metric name prefix
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables,
// for deployments where no config file is mounted.
//
// Environment variables:
//
//	SCHEDCLIENT_SERVER          - Scheduler server name (required)
//	SCHEDCLIENT_VERSION         - Pin the service version
//	SCHEDCLIENT_USERNAME        - Connection username
//	SCHEDCLIENT_PASSWORD        - Connection password
//	SCHEDCLIENT_BRIDGE_URL      - HTTP bridge base URL (required)
//	SCHEDCLIENT_BRIDGE_API_KEY  - Bridge bearer token
//	SCHEDCLIENT_BRIDGE_TIMEOUT  - Bridge request timeout (default: 30s)
//	SCHEDCLIENT_LOG_LEVEL       - debug, info, warn, error (default: info)
//	SCHEDCLIENT_LOG_FORMAT      - json or console (default: json)
//	SCHEDCLIENT_AUDIT_ENABLED   - Persist the dispatch audit trail
//	SCHEDCLIENT_AUDIT_PATH      - Audit database path (default: schedclient-audit.db)
//	SCHEDCLIENT_METRICS_ENABLED - Enable the Prometheus exporter
//	SCHEDCLIENT_METRICS_LISTEN  - Exporter listen address (default: :9105)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFallback tries the file first, then environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	if os.Getenv("SCHEDCLIENT_BRIDGE_URL") != "" {
		return LoadFromEnv()
	}
	return nil, fmt.Errorf("no configuration found: provide config file or set SCHEDCLIENT_BRIDGE_URL")
}

// applyEnvOverrides applies SCHEDCLIENT_* environment variables.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCHEDCLIENT_SERVER"); v != "" {
		cfg.Scheduler.Server = v
	}
	if v := os.Getenv("SCHEDCLIENT_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scheduler.Version = n
		}
	}

	if v := os.Getenv("SCHEDCLIENT_USERNAME"); v != "" {
		cfg.Credentials.Username = v
	}
	if v := os.Getenv("SCHEDCLIENT_PASSWORD"); v != "" {
		cfg.Credentials.Password = v
	}

	if v := os.Getenv("SCHEDCLIENT_BRIDGE_URL"); v != "" {
		cfg.Bridge.URL = v
	}
	if v := os.Getenv("SCHEDCLIENT_BRIDGE_API_KEY"); v != "" {
		cfg.Bridge.APIKey = v
	}
	if v := os.Getenv("SCHEDCLIENT_BRIDGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Bridge.Timeout = d
		}
	}

	if v := os.Getenv("SCHEDCLIENT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SCHEDCLIENT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("SCHEDCLIENT_AUDIT_ENABLED"); v != "" {
		cfg.Audit.Enabled = parseBool(v)
	}
	if v := os.Getenv("SCHEDCLIENT_AUDIT_PATH"); v != "" {
		cfg.Audit.Path = v
	}

	if v := os.Getenv("SCHEDCLIENT_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("SCHEDCLIENT_METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Bridge.Timeout == 0 {
		cfg.Bridge.Timeout = 30 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Audit.Path == "" {
		cfg.Audit.Path = "schedclient-audit.db"
	}

	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9105"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.Prefix == "" {
		cfg.Metrics.Prefix = "schedclient"
	}
}

func validate(cfg *Config) error {
	if cfg.Bridge.URL == "" {
		return fmt.Errorf("bridge.url is required")
	}
	if cfg.Scheduler.Server == "" {
		return fmt.Errorf("scheduler.server is required")
	}
	if cfg.Scheduler.Version < 0 {
		return fmt.Errorf("scheduler.version must not be negative, got %d", cfg.Scheduler.Version)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	return nil
}
