package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

func validConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "auto"},
		Server: ServerConfig{Host: "localhost", Port: 8080, CORSOrigins: []string{"*", "http://localhost:3000"}},
		Agent: AgentConfig{
			Endpoint: DefaultAgentEndpoint,
			Timeout:  "5m",
			IDs: AgentIDsConfig{
				Generate: core.DefaultGenerateAgentID,
				Deliver:  core.DefaultDeliverAgentID,
				Analyze:  core.DefaultAnalyzeAgentID,
				Scan:     core.DefaultScanAgentID,
			},
		},
		Console: ConsoleConfig{DefaultView: "dashboard"},
		Events:  EventsConfig{BufferSize: 100},
		Diagnostics: DiagnosticsConfig{CrashDump: CrashDumpConfig{
			Enabled: true, Dir: ".devcontent/crashdumps", MaxFiles: 10,
		}},
	}
}

func TestValidator_ValidConfig(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Errorf("ValidateConfig() error = %v", err)
	}
}

func TestValidator_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"cors origin", func(c *Config) { c.Server.CORSOrigins = []string{"localhost"} }, "server.cors_origins[0]"},
		{"endpoint scheme", func(c *Config) { c.Agent.Endpoint = "ftp://agents" }, "agent.endpoint"},
		{"endpoint empty", func(c *Config) { c.Agent.Endpoint = "" }, "agent.endpoint"},
		{"timeout format", func(c *Config) { c.Agent.Timeout = "soon" }, "agent.timeout"},
		{"timeout negative", func(c *Config) { c.Agent.Timeout = "-1s" }, "agent.timeout"},
		{"blank agent id", func(c *Config) { c.Agent.IDs.Deliver = "  " }, "agent.ids.deliver"},
		{"duplicate agent id", func(c *Config) { c.Agent.IDs.Scan = c.Agent.IDs.Generate }, "agent.ids.scan"},
		{"default view", func(c *Config) { c.Console.DefaultView = "settings" }, "console.default_view"},
		{"buffer size", func(c *Config) { c.Events.BufferSize = 0 }, "events.buffer_size"},
		{"crash dump dir", func(c *Config) { c.Diagnostics.CrashDump.Dir = "" }, "diagnostics.crash_dump.dir"},
		{"crash dump max files", func(c *Config) { c.Diagnostics.CrashDump.MaxFiles = 0 }, "diagnostics.crash_dump.max_files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidationErrors", err)
			}
			found := false
			for _, e := range verrs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for %s in %v", tt.field, err)
			}
		})
	}
}

func TestValidator_DisabledCrashDumpSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Diagnostics.CrashDump = CrashDumpConfig{Enabled: false}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("ValidateConfig() error = %v", err)
	}
}

func TestValidator_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "loud"
	cfg.Server.Port = -1
	cfg.Events.BufferSize = -5

	v := NewValidator()
	err := v.Validate(cfg)
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(v.Errors()) != 3 {
		t.Errorf("errors = %d, want 3: %v", len(v.Errors()), err)
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("message %q lacks field", err.Error())
	}
}
