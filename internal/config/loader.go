package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// DEVCONTENT_AGENT_API_KEY for agent.api_key.
const EnvPrefix = "DEVCONTENT"

// ProjectConfigPath is the project-level config file, relative to the
// working directory.
var ProjectConfigPath = filepath.Join(".devcontent", "config.yaml")

// Default values.
const (
	DefaultAgentEndpoint = "http://localhost:3000/api/agent"
	DefaultAgentTimeout  = "5m"
	DefaultServerHost    = "localhost"
	DefaultServerPort    = 8080
	DefaultBufferSize    = 100
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: EnvPrefix,
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (DEVCONTENT_*)
// 3. Project config (.devcontent/config.yaml)
// 4. User config (~/.config/devcontent/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")

		// First found wins: project config shadows user config.
		l.v.AddConfigPath(filepath.Dir(ProjectConfigPath))
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", "devcontent"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values. Every key needs a default so that
// environment overrides reach Unmarshal.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("log.file", "")

	l.v.SetDefault("server.host", DefaultServerHost)
	l.v.SetDefault("server.port", DefaultServerPort)
	l.v.SetDefault("server.enable_cors", true)
	l.v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	l.v.SetDefault("agent.endpoint", DefaultAgentEndpoint)
	l.v.SetDefault("agent.api_key", "")
	l.v.SetDefault("agent.timeout", DefaultAgentTimeout)
	l.v.SetDefault("agent.ids.generate", core.DefaultGenerateAgentID)
	l.v.SetDefault("agent.ids.deliver", core.DefaultDeliverAgentID)
	l.v.SetDefault("agent.ids.analyze", core.DefaultAnalyzeAgentID)
	l.v.SetDefault("agent.ids.scan", core.DefaultScanAgentID)

	l.v.SetDefault("console.sample_data", false)
	l.v.SetDefault("console.default_view", string(core.ViewDashboard))

	l.v.SetDefault("report.path", "")

	l.v.SetDefault("events.buffer_size", DefaultBufferSize)

	l.v.SetDefault("diagnostics.crash_dump.enabled", true)
	l.v.SetDefault("diagnostics.crash_dump.dir", filepath.Join(".devcontent", "crashdumps"))
	l.v.SetDefault("diagnostics.crash_dump.max_files", 10)
	l.v.SetDefault("diagnostics.crash_dump.include_stack", true)
	l.v.SetDefault("diagnostics.crash_dump.include_env", false)
}

// ConfigFile returns the config file path if one was used.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Get returns a configuration value by key.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// Set sets a configuration value.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}
