package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"todolist/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		if got := logging.ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "warn", false)

	logger.Info("hidden_event")
	logger.Warn("shown_event")

	out := buf.String()
	if strings.Contains(out, "hidden_event") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown_event") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "error", true)

	logger.Debug("debug_event")

	if !strings.Contains(buf.String(), "debug_event") {
		t.Errorf("expected debug record with debug flag, got %q", buf.String())
	}
}
