package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  shutdown_timeout: 2s
rater:
  enabled: true
  base_url: http://localhost:1234/v1
  model: test-model
  timeout: 3s
  gate_low: 0.4
  gate_high: 0.8
fundamentals:
  cache_ttl: 90s
`

func TestLoadParsesDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if got := cfg.Server.ReadTimeout.Std(); got != 5*time.Second {
		t.Errorf("read_timeout = %v, want 5s", got)
	}
	if got := cfg.Rater.Timeout.Std(); got != 3*time.Second {
		t.Errorf("rater timeout = %v, want 3s", got)
	}
	if got := cfg.Fundamentals.CacheTTL.Std(); got != 90*time.Second {
		t.Errorf("cache_ttl = %v, want 90s", got)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing environment", "server:\n  port: 8080\n"},
		{"rater enabled without base_url", "environment: test\nrater:\n  enabled: true\n  model: m\n"},
		{"rater enabled without model", "environment: test\nrater:\n  enabled: true\n  base_url: http://x\n"},
		{"gate band outside unit range", validYAML + "\n" /* placeholder, replaced below */},
		{"kafka enabled without brokers", "environment: test\nkafka:\n  enabled: true\n  topic: t\n"},
		{"bad duration", "environment: test\nserver:\n  read_timeout: soon\n"},
	}
	tests[3].body = `
environment: test
rater:
  enabled: false
  gate_low: 0.9
  gate_high: 0.4
`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("RATER_API_KEY", "sk-test")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rater.APIKey != "sk-test" {
		t.Errorf("api key = %q, want env override", cfg.Rater.APIKey)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
}
