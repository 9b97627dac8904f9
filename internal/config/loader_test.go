package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoader_Defaults(t *testing.T) {
	isolateHome(t)
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "auto" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "auto")
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Agent.Endpoint != DefaultAgentEndpoint {
		t.Errorf("Agent.Endpoint = %q", cfg.Agent.Endpoint)
	}
	if cfg.Agent.TimeoutDuration() != 5*time.Minute {
		t.Errorf("Agent.TimeoutDuration() = %v", cfg.Agent.TimeoutDuration())
	}
	if cfg.Agent.IDs.Scan != core.DefaultScanAgentID {
		t.Errorf("Agent.IDs.Scan = %q", cfg.Agent.IDs.Scan)
	}
	if cfg.Console.DefaultView != "dashboard" || cfg.Console.SampleData {
		t.Errorf("Console = %+v", cfg.Console)
	}
	if cfg.Events.BufferSize != DefaultBufferSize {
		t.Errorf("Events.BufferSize = %d", cfg.Events.BufferSize)
	}
	if !cfg.Diagnostics.CrashDump.Enabled || cfg.Diagnostics.CrashDump.MaxFiles != 10 {
		t.Errorf("CrashDump = %+v", cfg.Diagnostics.CrashDump)
	}

	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoader_ConfigFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log:
  level: debug
agent:
  endpoint: https://agents.example.com/api/agent
  timeout: 90s
  ids:
    generate: custom-generate
console:
  default_view: trends
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader().WithConfigFile(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loader.ConfigFile() != path {
		t.Errorf("ConfigFile() = %q, want %q", loader.ConfigFile(), path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Agent.Endpoint != "https://agents.example.com/api/agent" {
		t.Errorf("Agent.Endpoint = %q", cfg.Agent.Endpoint)
	}
	if cfg.Agent.TimeoutDuration() != 90*time.Second {
		t.Errorf("timeout = %v", cfg.Agent.TimeoutDuration())
	}
	if cfg.Agent.IDs.Generate != "custom-generate" {
		t.Errorf("IDs.Generate = %q", cfg.Agent.IDs.Generate)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Agent.IDs.Deliver != core.DefaultDeliverAgentID {
		t.Errorf("IDs.Deliver = %q", cfg.Agent.IDs.Deliver)
	}
	if cfg.Console.DefaultView != "trends" {
		t.Errorf("DefaultView = %q", cfg.Console.DefaultView)
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("DEVCONTENT_AGENT_API_KEY", "sk-default-env")
	t.Setenv("DEVCONTENT_SERVER_PORT", "9090")
	t.Setenv("DEVCONTENT_CONSOLE_SAMPLE_DATA", "true")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.APIKey != "sk-default-env" {
		t.Errorf("APIKey = %q", cfg.Agent.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if !cfg.Console.SampleData {
		t.Error("SampleData = false, want true")
	}
}

func TestLoader_InvalidFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader().WithConfigFile(path).Load(); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefaultConfigYAML_LoadsAndValidates(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), ".devcontent", "config.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("default file must validate: %v", err)
	}
	if cfg.Agent.IDs.Analyze != core.DefaultAnalyzeAgentID {
		t.Errorf("IDs.Analyze = %q", cfg.Agent.IDs.Analyze)
	}
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteDefault(path, false); err == nil {
		t.Fatal("expected ErrConfigExists")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("forced WriteDefault() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want existing 0644 kept", info.Mode().Perm())
	}
}
