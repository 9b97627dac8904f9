package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateServer(&cfg.Server)
	v.validateAgent(&cfg.Agent)
	v.validateConsole(&cfg.Console)
	v.validateReport(&cfg.Report)
	v.validateEvents(&cfg.Events)
	v.validateDiagnostics(&cfg.Diagnostics)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}

	if cfg.File != "" && !isValidPath(cfg.File) {
		v.addError("log.file", cfg.File, "invalid file path")
	}
}

func (v *Validator) validateServer(cfg *ServerConfig) {
	if cfg.Port < 1 || cfg.Port > 65535 {
		v.addError("server.port", cfg.Port, "must be between 1 and 65535")
	}
	for i, origin := range cfg.CORSOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			v.addError(fmt.Sprintf("server.cors_origins[%d]", i), origin, "must be an absolute origin or *")
		}
	}
}

func (v *Validator) validateAgent(cfg *AgentConfig) {
	if u, err := url.Parse(cfg.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.addError("agent.endpoint", cfg.Endpoint, "must be an http or https URL")
	}

	if d, err := time.ParseDuration(cfg.Timeout); err != nil {
		v.addError("agent.timeout", cfg.Timeout, "invalid duration format")
	} else if d <= 0 {
		v.addError("agent.timeout", cfg.Timeout, "must be positive")
	}

	ids := map[string]string{
		"generate": cfg.IDs.Generate,
		"deliver":  cfg.IDs.Deliver,
		"analyze":  cfg.IDs.Analyze,
		"scan":     cfg.IDs.Scan,
	}
	seen := make(map[string]string, len(ids))
	for _, kind := range core.AllKinds() {
		name := kind.String()
		id := strings.TrimSpace(ids[name])
		if id == "" {
			v.addError("agent.ids."+name, ids[name], "agent ID required")
			continue
		}
		if other, dup := seen[id]; dup {
			v.addError("agent.ids."+name, id, fmt.Sprintf("already used by %s", other))
			continue
		}
		seen[id] = name
	}
}

func (v *Validator) validateConsole(cfg *ConsoleConfig) {
	if _, err := core.ParseView(cfg.DefaultView); err != nil {
		v.addError("console.default_view", cfg.DefaultView, "must be one of: dashboard, review, analytics, trends")
	}
}

func (v *Validator) validateReport(cfg *ReportConfig) {
	if cfg.Path != "" && !isValidPath(cfg.Path) {
		v.addError("report.path", cfg.Path, "invalid file path")
	}
}

func (v *Validator) validateEvents(cfg *EventsConfig) {
	if cfg.BufferSize < 1 {
		v.addError("events.buffer_size", cfg.BufferSize, "must be positive")
	}
}

func (v *Validator) validateDiagnostics(cfg *DiagnosticsConfig) {
	cd := cfg.CrashDump
	if !cd.Enabled {
		return
	}
	if cd.Dir == "" {
		v.addError("diagnostics.crash_dump.dir", cd.Dir, "directory required")
	} else if !isValidPath(cd.Dir) {
		v.addError("diagnostics.crash_dump.dir", cd.Dir, "invalid directory path")
	}
	if cd.MaxFiles < 1 {
		v.addError("diagnostics.crash_dump.max_files", cd.MaxFiles, "must be positive")
	}
}

func isValidPath(path string) bool {
	if strings.ContainsRune(path, 0) {
		return false
	}
	dir := filepath.Dir(path)
	_, err := os.Stat(dir)
	return err == nil || os.IsNotExist(err)
}

// ValidateConfig is a convenience function that creates a validator and validates config.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
