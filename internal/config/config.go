package config

import "time"

// Config holds all application configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Agent       AgentConfig       `mapstructure:"agent" yaml:"agent"`
	Console     ConsoleConfig     `mapstructure:"console" yaml:"console"`
	Report      ReportConfig      `mapstructure:"report" yaml:"report"`
	Events      EventsConfig      `mapstructure:"events" yaml:"events"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host        string   `mapstructure:"host" yaml:"host"`
	Port        int      `mapstructure:"port" yaml:"port"`
	EnableCORS  bool     `mapstructure:"enable_cors" yaml:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// AgentConfig configures the agent service connection.
type AgentConfig struct {
	Endpoint string         `mapstructure:"endpoint" yaml:"endpoint"`
	APIKey   string         `mapstructure:"api_key" yaml:"api_key"`
	Timeout  string         `mapstructure:"timeout" yaml:"timeout"`
	IDs      AgentIDsConfig `mapstructure:"ids" yaml:"ids"`
}

// TimeoutDuration parses Timeout. Callers run the validator first.
func (c AgentConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// AgentIDsConfig names the agent of each workflow.
type AgentIDsConfig struct {
	Generate string `mapstructure:"generate" yaml:"generate"`
	Deliver  string `mapstructure:"deliver" yaml:"deliver"`
	Analyze  string `mapstructure:"analyze" yaml:"analyze"`
	Scan     string `mapstructure:"scan" yaml:"scan"`
}

// ConsoleConfig configures the operator session.
type ConsoleConfig struct {
	SampleData  bool   `mapstructure:"sample_data" yaml:"sample_data"`
	DefaultView string `mapstructure:"default_view" yaml:"default_view"`
}

// ReportConfig configures the session report written on shutdown.
type ReportConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// EventsConfig configures the event bus.
type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// DiagnosticsConfig configures host metrics and crash dumps.
type DiagnosticsConfig struct {
	CrashDump CrashDumpConfig `mapstructure:"crash_dump" yaml:"crash_dump"`
}

// CrashDumpConfig configures crash dumps of recovered workflow panics.
type CrashDumpConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir          string `mapstructure:"dir" yaml:"dir"`
	MaxFiles     int    `mapstructure:"max_files" yaml:"max_files"`
	IncludeStack bool   `mapstructure:"include_stack" yaml:"include_stack"`
	IncludeEnv   bool   `mapstructure:"include_env" yaml:"include_env"`
}
