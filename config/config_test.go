package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/schedclient/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedclient.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()
	cfg, err := config.Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func validConfig() string {
	return `
scheduler:
  server: "sched01"

bridge:
  url: "http://localhost:7070"
`
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
scheduler:
  server: "sched01"
  version: 9

credentials:
  username: "svc_batch"
  password: "secret"

bridge:
  url: "http://localhost:7070"
  api_key: "bk_test"
  timeout: 15s

logging:
  level: "debug"
  format: "console"

audit:
  enabled: true
  path: "/var/lib/schedclient/audit.db"

metrics:
  enabled: true
  listen: ":9200"
`

	cfg := writeAndLoad(t, content)

	if cfg.Scheduler.Server != "sched01" {
		t.Errorf("Server = %s, want sched01", cfg.Scheduler.Server)
	}
	if cfg.Scheduler.Version != 9 {
		t.Errorf("Version = %d, want 9", cfg.Scheduler.Version)
	}
	if cfg.Credentials.Username != "svc_batch" {
		t.Errorf("Username = %s, want svc_batch", cfg.Credentials.Username)
	}
	if cfg.Bridge.URL != "http://localhost:7070" {
		t.Errorf("Bridge.URL = %s, want http://localhost:7070", cfg.Bridge.URL)
	}
	if cfg.Bridge.Timeout != 15*time.Second {
		t.Errorf("Bridge.Timeout = %v, want 15s", cfg.Bridge.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Path != "/var/lib/schedclient/audit.db" {
		t.Errorf("Audit = %+v", cfg.Audit)
	}
	if cfg.Metrics.Listen != ":9200" {
		t.Errorf("Metrics.Listen = %s, want :9200", cfg.Metrics.Listen)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := writeAndLoad(t, validConfig())

	if cfg.Bridge.Timeout != 30*time.Second {
		t.Errorf("default Bridge.Timeout = %v, want 30s", cfg.Bridge.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("default Logging.Format = %s, want json", cfg.Logging.Format)
	}
	if cfg.Audit.Path != "schedclient-audit.db" {
		t.Errorf("default Audit.Path = %s", cfg.Audit.Path)
	}
	if cfg.Metrics.Listen != ":9105" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("default Metrics = %+v", cfg.Metrics)
	}
	if cfg.Metrics.Prefix != "schedclient" {
		t.Errorf("default Metrics.Prefix = %s", cfg.Metrics.Prefix)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SCHED_SERVER", "sched02")
	content := `
scheduler:
  server: "${TEST_SCHED_SERVER}"

bridge:
  url: "http://localhost:7070"
`
	cfg := writeAndLoad(t, content)
	if cfg.Scheduler.Server != "sched02" {
		t.Errorf("Server = %s, want sched02", cfg.Scheduler.Server)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCHEDCLIENT_SERVER", "sched-override")
	t.Setenv("SCHEDCLIENT_LOG_LEVEL", "warn")
	t.Setenv("SCHEDCLIENT_AUDIT_ENABLED", "yes")

	cfg := writeAndLoad(t, validConfig())
	if cfg.Scheduler.Server != "sched-override" {
		t.Errorf("Server = %s, want sched-override", cfg.Scheduler.Server)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled not overridden")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing bridge url", "scheduler:\n  server: sched01\n"},
		{"missing server", "bridge:\n  url: http://localhost:7070\n"},
		{"bad log level", validConfig() + "\nlogging:\n  level: verbose\n"},
		{"bad log format", validConfig() + "\nlogging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCHEDCLIENT_SERVER", "sched01")
	t.Setenv("SCHEDCLIENT_BRIDGE_URL", "http://localhost:7070")
	t.Setenv("SCHEDCLIENT_VERSION", "11")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv error: %v", err)
	}
	if cfg.Scheduler.Server != "sched01" || cfg.Scheduler.Version != 11 {
		t.Errorf("Scheduler = %+v", cfg.Scheduler)
	}
}

func TestLoadWithFallback_NoConfig(t *testing.T) {
	t.Setenv("SCHEDCLIENT_BRIDGE_URL", "")
	if _, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadWithFallback succeeded with no config")
	}
}
