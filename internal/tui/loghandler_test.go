package tui

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
)

func TestLogHandler_FormatsRecords(t *testing.T) {
	h := NewLogHandler(slog.LevelInfo, 10)
	logger := slog.New(h).With("kind", "scan").WithGroup("agent")

	logger.Debug("hidden")
	logger.Info("agent responded", "status", 200)

	msg := (<-h.Messages()).(LogMsg)
	if msg.Level != "info" {
		t.Errorf("Level = %q", msg.Level)
	}
	if msg.Message != "agent responded kind=scan agent.status=200" {
		t.Errorf("Message = %q", msg.Message)
	}
	select {
	case extra := <-h.Messages():
		t.Errorf("debug record leaked: %#v", extra)
	default:
	}
}

func TestLogHandler_DropsWhenFull(t *testing.T) {
	h := NewLogHandler(slog.LevelDebug, 2)
	logger := slog.New(h)
	for i := 0; i < 5; i++ {
		logger.Info("line")
	}
	if got := len(h.ch); got != 2 {
		t.Errorf("buffered = %d, want 2", got)
	}
}

func TestLogHandler_SanitizedThroughLogger(t *testing.T) {
	h := NewLogHandler(slog.LevelInfo, 10)
	logger := logging.NewWithHandler(h)

	logger.Info("calling agent", "api_key", "sk-default-abcdefghijklmnop")

	msg := (<-h.Messages()).(LogMsg)
	if strings.Contains(msg.Message, "abcdefghijklmnop") {
		t.Errorf("secret leaked: %q", msg.Message)
	}
}
