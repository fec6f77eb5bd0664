package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerLayout(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(&consoleHandler{writer: &buf, level: level})

	logger = NewComponentLogger(logger, "session")
	logger.Info("puzzle loaded", Int64("item_id", 42), String("day", "2026-08-28"))

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{" INFO ", "session: puzzle loaded", "item_id=42", "day=2026-08-28"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(&consoleHandler{writer: &buf, level: level})

	logger.Warn("guess rejected", String("label", "Blade Runner"))

	if !strings.Contains(buf.String(), `label="Blade Runner"`) {
		t.Errorf("spaced value not quoted: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
