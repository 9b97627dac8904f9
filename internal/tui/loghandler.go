package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LogHandler is an slog.Handler that turns records into LogMsg values for
// the log panel. Records are dropped when the panel falls behind.
type LogHandler struct {
	level slog.Leveler
	ch    chan tea.Msg
	attrs []slog.Attr
	group string
}

// NewLogHandler creates a handler buffering up to size messages.
func NewLogHandler(level slog.Leveler, size int) *LogHandler {
	if size <= 0 {
		size = 100
	}
	return &LogHandler{level: level, ch: make(chan tea.Msg, size)}
}

// Messages returns the channel the model reads log entries from.
func (h *LogHandler) Messages() <-chan tea.Msg {
	return h.ch
}

// Enabled implements slog.Handler.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *LogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Resolve())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	select {
	case h.ch <- LogMsg{Time: r.Time, Level: strings.ToLower(r.Level.String()), Message: b.String()}:
	default:
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}
