package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// EventPrinter writes bus events for non-interactive runs.
type EventPrinter interface {
	Handle(event events.Event)
}

// Follow prints events from ch until ctx ends or ch closes.
func Follow(ctx context.Context, p EventPrinter, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			p.Handle(event)
		}
	}
}

// FallbackOutput provides plain text output for non-interactive mode.
type FallbackOutput struct {
	writer   io.Writer
	useColor bool
	verbose  bool
	mu       sync.Mutex
}

// NewFallbackOutput creates a new fallback output handler.
func NewFallbackOutput(useColor, verbose bool) *FallbackOutput {
	return &FallbackOutput{
		writer:   os.Stderr,
		useColor: useColor,
		verbose:  verbose,
	}
}

// WithWriter sets a custom writer.
func (f *FallbackOutput) WithWriter(w io.Writer) *FallbackOutput {
	f.writer = w
	return f
}

// Handle prints one event. Session-wide events are shown only in verbose
// mode.
func (f *FallbackOutput) Handle(event events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kind := event.Kind()
	switch e := event.(type) {
	case events.StatusEvent:
		f.printf("%s %s\n", f.levelIcon(e.Level), e.Text)
	case events.WorkflowStartedEvent:
		f.printf("%s [RUNNING] %s (agent %s)\n", f.statusIcon("running"), kind, e.AgentID)
	case events.WorkflowSucceededEvent:
		f.printf("%s [DONE] %s in %s\n", f.statusIcon("completed"), kind, formatDuration(e.Duration))
		if e.Outcome != "" && f.verbose {
			f.printf("  outcome: %s\n", e.Outcome)
		}
	case events.WorkflowFailedEvent:
		f.printError(fmt.Sprintf("%s failed: %s", kind, e.Error))
	case events.WorkflowDiscardedEvent:
		f.printf("%s %s result discarded\n", f.warnIcon(), kind)
	default:
		if f.verbose {
			f.printf("  %s\n", strings.ReplaceAll(event.EventType(), "_", " "))
		}
	}
}

// Log prints a log line.
func (f *FallbackOutput) Log(level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if level == "debug" && !f.verbose {
		return
	}
	f.printf("%s %s\n", f.formatLevel(level), message)
}

func (f *FallbackOutput) printf(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format, args...)
}

func (f *FallbackOutput) printError(text string) {
	if f.useColor {
		f.printf("%s %s\n", f.colorize("!!!", "red"), f.colorize(text, "red"))
	} else {
		f.printf("!!! %s\n", text)
	}
}

func (f *FallbackOutput) statusIcon(status string) string {
	icons := map[string]string{
		"running":   "●",
		"completed": "✓",
		"failed":    "✗",
	}

	icon := icons[status]
	if !f.useColor {
		return icon
	}

	colors := map[string]string{
		"running":   "cyan",
		"completed": "green",
		"failed":    "red",
	}

	return f.colorize(icon, colors[status])
}

func (f *FallbackOutput) levelIcon(level string) string {
	switch level {
	case "success":
		return f.statusIcon("completed")
	case "error":
		return f.statusIcon("failed")
	default:
		return f.statusIcon("running")
	}
}

func (f *FallbackOutput) warnIcon() string {
	icon := "⚠"
	if f.useColor {
		return f.colorize(icon, "yellow")
	}
	return icon
}

func (f *FallbackOutput) formatLevel(level string) string {
	upper := strings.ToUpper(level)
	if !f.useColor {
		return fmt.Sprintf("[%5s]", upper)
	}

	colors := map[string]string{
		"debug": "gray",
		"info":  "blue",
		"warn":  "yellow",
		"error": "red",
	}

	return f.colorize(fmt.Sprintf("[%5s]", upper), colors[level])
}

func (f *FallbackOutput) colorize(text, color string) string {
	codes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"blue":   "\033[34m",
		"cyan":   "\033[36m",
		"gray":   "\033[90m",
		"reset":  "\033[0m",
	}

	code, ok := codes[color]
	if !ok {
		return text
	}

	return code + text + codes["reset"]
}

// JSONOutput writes one JSON object per event.
type JSONOutput struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

// NewJSONOutput creates a new JSON output handler.
func NewJSONOutput() *JSONOutput {
	return &JSONOutput{enc: json.NewEncoder(os.Stderr), now: time.Now}
}

// WithWriter sets a custom writer.
func (j *JSONOutput) WithWriter(w io.Writer) *JSONOutput {
	j.enc = json.NewEncoder(w)
	return j
}

// JSONEvent represents a JSON event.
type JSONEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      string      `json:"kind,omitempty"`
	Data      interface{} `json:"data"`
}

// Handle emits one event.
func (j *JSONOutput) Handle(event events.Event) {
	j.emit(JSONEvent{
		Type:      event.EventType(),
		Timestamp: event.Timestamp(),
		Kind:      event.Kind(),
		Data:      event,
	})
}

// Log emits a log line.
func (j *JSONOutput) Log(level, message string) {
	j.emit(JSONEvent{
		Type:      "log",
		Timestamp: j.now(),
		Data:      map[string]string{"level": level, "message": message},
	})
}

func (j *JSONOutput) emit(ev JSONEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	_ = j.enc.Encode(ev)
}
