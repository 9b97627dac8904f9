package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/adapters/agent"
	"github.com/hugo-lorenzo-mato/devcontent/internal/config"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/diagnostics"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/report"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
	"github.com/hugo-lorenzo-mato/devcontent/internal/tui"
)

// shutdownTimeout bounds the wait for in-flight invocations on exit.
const shutdownTimeout = 10 * time.Second

// app holds the components shared by the session commands.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	bus       *events.EventBus
	session   *console.Session
	collector *diagnostics.Collector
	closeLog  func()
}

// appOptions selects how the app logs.
type appOptions struct {
	// logHandler replaces the standard log output, e.g. with the TUI log
	// panel. A configured log.file still takes precedence.
	logHandler slog.Handler
	logOutput  io.Writer
}

// newApp builds a session from the loaded configuration.
func newApp(opts appOptions) (*app, error) {
	cfg := appConfig
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	logger, closeLog, err := buildLogger(cfg.Log, opts)
	if err != nil {
		return nil, err
	}

	client, err := agent.NewClient(agent.Config{
		Endpoint: cfg.Agent.Endpoint,
		APIKey:   cfg.Agent.APIKey,
		Timeout:  cfg.Agent.TimeoutDuration(),
		Logger:   logger,
	})
	if err != nil {
		closeLog()
		return nil, err
	}

	view, err := core.ParseView(cfg.Console.DefaultView)
	if err != nil {
		view = core.ViewDashboard
	}

	collector := diagnostics.NewCollector()
	deps := console.SessionDeps{
		Invoker:     client,
		Agents:      agentIDs(cfg.Agent.IDs).Directory(),
		Bus:         events.New(cfg.Events.BufferSize),
		Logger:      logger,
		InitialView: view,
	}
	if cd := cfg.Diagnostics.CrashDump; cd.Enabled {
		deps.Panics = diagnostics.NewCrashDumpWriter(diagnostics.CrashDumpConfig{
			Dir:          cd.Dir,
			MaxFiles:     cd.MaxFiles,
			IncludeStack: cd.IncludeStack,
			IncludeEnv:   cd.IncludeEnv,
		}, logger, collector)
	}

	session, err := console.NewSession(deps)
	if err != nil {
		closeLog()
		return nil, err
	}
	if cfg.Console.SampleData {
		session.SetSampleMode(true)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		bus:       deps.Bus,
		session:   session,
		collector: collector,
		closeLog:  closeLog,
	}, nil
}

func agentIDs(ids config.AgentIDsConfig) agent.IDs {
	return agent.IDs{
		Generate: ids.Generate,
		Deliver:  ids.Deliver,
		Analyze:  ids.Analyze,
		Scan:     ids.Scan,
	}
}

func buildLogger(cfg config.LogConfig, opts appOptions) (*logging.Logger, func(), error) {
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		format := cfg.Format
		if format == "auto" {
			format = "json"
		}
		logger := logging.New(logging.Config{Level: cfg.Level, Format: format, Output: f})
		return logger, func() { _ = f.Close() }, nil
	}
	if opts.logHandler != nil {
		return logging.NewWithHandler(opts.logHandler), func() {}, nil
	}
	out := opts.logOutput
	if out == nil {
		out = os.Stderr
	}
	return logging.New(logging.Config{Level: cfg.Level, Format: cfg.Format, Output: out}), func() {}, nil
}

// close waits for in-flight invocations, writes the configured report and
// releases the bus and log file.
func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.session.Shutdown(ctx); err != nil {
		a.logger.Warn("invocations still running at exit", "error", err)
	}

	var reportErr error
	if path := a.cfg.Report.Path; path != "" {
		if reportErr = report.WriteSnapshot(path, a.session.Snapshot()); reportErr != nil {
			a.logger.Error("writing session report", "path", path, "error", reportErr)
		} else {
			a.logger.Info("session report written", "path", path)
		}
	}

	a.bus.Close()
	a.closeLog()
	return reportErr
}

// newPrinter picks the event printer for non-interactive output.
func newPrinter(w io.Writer, verbose bool) tui.EventPrinter {
	detector := tui.NewDetector().NoColor(noColor)
	if detector.Detect() == tui.ModeJSON {
		return tui.NewJSONOutput().WithWriter(w)
	}
	return tui.NewFallbackOutput(detector.ShouldUseColor(), verbose).WithWriter(w)
}
