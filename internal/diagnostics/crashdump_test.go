package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

func newTestWriter(t *testing.T, cfg CrashDumpConfig) *CrashDumpWriter {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	w := NewCrashDumpWriter(cfg, nil, nil)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	w.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return w
}

func TestNewCrashDumpWriter_Defaults(t *testing.T) {
	w := NewCrashDumpWriter(CrashDumpConfig{}, nil, nil)
	if w.Dir() != DefaultCrashDumpDir {
		t.Errorf("Dir() = %q", w.Dir())
	}
	if w.cfg.MaxFiles != 10 {
		t.Errorf("MaxFiles = %d", w.cfg.MaxFiles)
	}
}

func TestCrashDumpWriter_Write(t *testing.T) {
	w := newTestWriter(t, CrashDumpConfig{IncludeStack: true})

	path, err := w.Write(core.KindGenerate, "inv-1", "boom", []byte("goroutine 1 [running]"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.HasSuffix(path, "-generate.json") {
		t.Errorf("unexpected path %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat dump: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}

	dump, err := LoadLatestCrashDump(w.Dir())
	if err != nil {
		t.Fatalf("LoadLatestCrashDump() error = %v", err)
	}
	if dump.PanicValue != "boom" || dump.Workflow != "generate" || dump.InvocationID != "inv-1" {
		t.Errorf("unexpected dump %+v", dump)
	}
	if dump.StackTrace != "goroutine 1 [running]" {
		t.Errorf("StackTrace = %q", dump.StackTrace)
	}
	if dump.Host != nil {
		t.Error("no collector configured, host must be empty")
	}
}

func TestCrashDumpWriter_OmitsStackUnlessConfigured(t *testing.T) {
	w := newTestWriter(t, CrashDumpConfig{})
	if _, err := w.Write(core.KindScan, "inv-1", "boom", []byte("stack")); err != nil {
		t.Fatal(err)
	}
	dump, err := LoadLatestCrashDump(w.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if dump.StackTrace != "" {
		t.Errorf("StackTrace = %q, want empty", dump.StackTrace)
	}
}

func TestCrashDumpWriter_IncludesHost(t *testing.T) {
	p, _, _ := fakeProbes()
	w := newTestWriter(t, CrashDumpConfig{})
	w.collector = NewCollectorWithProbes(p, nil)

	if _, err := w.Write(core.KindAnalyze, "inv-1", "boom", nil); err != nil {
		t.Fatal(err)
	}
	dump, err := LoadLatestCrashDump(w.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if dump.Host == nil || dump.Host.CPUModel != "Test CPU 3000" {
		t.Errorf("Host = %+v", dump.Host)
	}
}

func TestCrashDumpWriter_KeepsNewest(t *testing.T) {
	w := newTestWriter(t, CrashDumpConfig{MaxFiles: 3})
	for i := 0; i < 5; i++ {
		if _, err := w.Write(core.KindDeliver, fmt.Sprintf("inv-%d", i), i, nil); err != nil {
			t.Fatal(err)
		}
	}
	matches, err := filepath.Glob(filepath.Join(w.Dir(), "crash-*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("dumps = %d, want 3", len(matches))
	}
	dump, err := LoadLatestCrashDump(w.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if dump.InvocationID != "inv-4" {
		t.Errorf("latest = %s, want inv-4", dump.InvocationID)
	}
}

func TestCrashDumpWriter_ReportPanicSwallowsErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	w := newTestWriter(t, CrashDumpConfig{Dir: filepath.Join(blocker, "dumps")})

	w.ReportPanic(core.KindGenerate, "inv-1", "boom", nil)
}

func TestLoadLatestCrashDump_Empty(t *testing.T) {
	if _, err := LoadLatestCrashDump(t.TempDir()); err == nil {
		t.Error("expected error for empty dir")
	}
}

func TestRedactEnvironment(t *testing.T) {
	got := redactEnvironment([]string{
		"HOME=/home/dev",
		"DEVCONTENT_AGENT_API_KEY=sk-default-123",
		"GITHUB_TOKEN=ghp_abc",
		"MALFORMED",
		"EMPTY=",
	})
	if got["HOME"] != "/home/dev" {
		t.Errorf("HOME = %q", got["HOME"])
	}
	if got["DEVCONTENT_AGENT_API_KEY"] != "[REDACTED]" || got["GITHUB_TOKEN"] != "[REDACTED]" {
		t.Errorf("secrets not redacted: %v", got)
	}
	if _, ok := got["MALFORMED"]; ok {
		t.Error("malformed entry kept")
	}
	if v, ok := got["EMPTY"]; !ok || v != "" {
		t.Errorf("EMPTY = %q, %v", v, ok)
	}
}
