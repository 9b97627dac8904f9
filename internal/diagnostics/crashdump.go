package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
)

// CrashDump contains everything captured for one recovered panic.
type CrashDump struct {
	// Metadata
	Timestamp time.Time `json:"timestamp"`
	ProcessID int       `json:"process_id"`
	GoVersion string    `json:"go_version"`
	GOOS      string    `json:"goos"`
	GOARCH    string    `json:"goarch"`

	// Panic information
	Workflow     string `json:"workflow"`
	InvocationID string `json:"invocation_id"`
	PanicValue   string `json:"panic_value"`
	StackTrace   string `json:"stack_trace,omitempty"`

	// Host state at crash
	Host *HostMetrics `json:"host,omitempty"`

	// Environment (redacted)
	RedactedEnv map[string]string `json:"redacted_env,omitempty"`
}

// CrashDumpConfig configures a CrashDumpWriter.
type CrashDumpConfig struct {
	Dir          string
	MaxFiles     int
	IncludeStack bool
	IncludeEnv   bool
}

// DefaultCrashDumpDir is used when no directory is configured.
const DefaultCrashDumpDir = ".devcontent/crashdumps"

// CrashDumpWriter persists recovered workflow panics. It satisfies the
// workflow runner's PanicReporter.
type CrashDumpWriter struct {
	cfg       CrashDumpConfig
	logger    *logging.Logger
	collector *Collector
	now       func() time.Time

	mu sync.Mutex // Protects file operations
}

// NewCrashDumpWriter creates a crash dump writer. collector may be nil.
func NewCrashDumpWriter(cfg CrashDumpConfig, logger *logging.Logger, collector *Collector) *CrashDumpWriter {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 10
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultCrashDumpDir
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CrashDumpWriter{cfg: cfg, logger: logger, collector: collector, now: time.Now}
}

// Dir returns the dump directory.
func (w *CrashDumpWriter) Dir() string { return w.cfg.Dir }

// ReportPanic writes a dump for a panic recovered in kind's workflow.
// Failures are logged; a panic report never fails the caller.
func (w *CrashDumpWriter) ReportPanic(kind core.WorkflowKind, invocationID string, value any, stack []byte) {
	path, err := w.Write(kind, invocationID, value, stack)
	if err != nil {
		w.logger.Error("failed to write crash dump", "error", err, "panic", fmt.Sprint(value))
		return
	}
	w.logger.Error("crash dump written", "path", path, "kind", kind.String(), "invocation_id", invocationID)
}

// Write generates a dump and returns its path.
func (w *CrashDumpWriter) Write(kind core.WorkflowKind, invocationID string, value any, stack []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	dump := CrashDump{
		Timestamp:    w.now().UTC(),
		ProcessID:    os.Getpid(),
		GoVersion:    runtime.Version(),
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
		Workflow:     kind.String(),
		InvocationID: invocationID,
		PanicValue:   fmt.Sprintf("%v", value),
	}
	if w.cfg.IncludeStack {
		dump.StackTrace = string(stack)
	}
	if w.collector != nil {
		host := w.collector.Collect()
		dump.Host = &host
	}
	if w.cfg.IncludeEnv {
		dump.RedactedEnv = redactEnvironment(os.Environ())
	}

	if err := os.MkdirAll(w.cfg.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating crash dump dir: %w", err)
	}

	filename := fmt.Sprintf("crash-%s-%s.json", dump.Timestamp.Format("2006-01-02T15-04-05.000000000"), kind)
	path := filepath.Join(w.cfg.Dir, filename)

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling crash dump: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing crash dump: %w", err)
	}

	_ = w.cleanupOldDumps()
	return path, nil
}

func isDumpName(name string) bool {
	return strings.HasPrefix(name, "crash-") && strings.HasSuffix(name, ".json")
}

// cleanupOldDumps removes the oldest dumps beyond MaxFiles. Names sort by
// timestamp.
func (w *CrashDumpWriter) cleanupOldDumps() error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return err
	}
	var dumps []string
	for _, e := range entries {
		if !e.IsDir() && isDumpName(e.Name()) {
			dumps = append(dumps, e.Name())
		}
	}
	sort.Strings(dumps)

	for len(dumps) > w.cfg.MaxFiles {
		path := filepath.Join(w.cfg.Dir, dumps[0])
		if err := os.Remove(path); err != nil {
			w.logger.Warn("failed to remove old crash dump", "path", path, "error", err)
		}
		dumps = dumps[1:]
	}
	return nil
}

var sensitiveEnvSubstrings = []string{
	"TOKEN", "KEY", "SECRET", "PASSWORD", "CREDENTIAL",
	"AUTH", "PRIVATE", "APIKEY",
}

func redactEnvironment(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		upper := strings.ToUpper(key)
		for _, s := range sensitiveEnvSubstrings {
			if strings.Contains(upper, s) {
				value = "[REDACTED]"
				break
			}
		}
		result[key] = value
	}
	return result
}

// LoadLatestCrashDump loads the most recent crash dump from dir.
func LoadLatestCrashDump(dir string) (*CrashDump, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading crash dump dir: %w", err)
	}
	newest := ""
	for _, e := range entries {
		if !e.IsDir() && isDumpName(e.Name()) && e.Name() > newest {
			newest = e.Name()
		}
	}
	if newest == "" {
		return nil, fmt.Errorf("no crash dumps found in %s", dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, newest))
	if err != nil {
		return nil, fmt.Errorf("reading crash dump: %w", err)
	}
	var dump CrashDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parsing crash dump: %w", err)
	}
	return &dump, nil
}
