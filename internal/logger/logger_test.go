package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// resetLogger resets the logger to default state for test isolation
func resetLogger() {
	Init(Options{})
}

// --- Init Tests ---

func TestInit_DefaultLevel_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("render started")
	if !strings.Contains(buf.String(), "render started") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()

	Debug("rule disabled")
	if strings.Contains(buf.String(), "rule disabled") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("strategy skipped")
	if !strings.Contains(buf.String(), "strategy skipped") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestQuiet_OverridesDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Quiet: true, Output: buf})
	defer resetLogger()

	Debug("debug message")
	Warn("warn message")
	Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "warn message") {
		t.Error("only errors should be logged when Quiet=true")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error should be logged when Quiet=true")
	}
}

func TestInit_LevelOverridesFlags(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Level: "warn", Debug: true, Output: buf})
	defer resetLogger()

	Info("info message")
	Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("Info should not be logged at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn should be logged at warn level")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("price fetched", "price", 29.99)

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("JSON format should produce JSON output, got %q", output)
	}
	if !strings.Contains(output, `"price":29.99`) {
		t.Errorf("JSON output should contain the attribute, got %q", output)
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, nil))
	Init(Options{Logger: custom, Output: &bytes.Buffer{}})
	defer resetLogger()

	Info("to custom")
	if !strings.Contains(buf.String(), "to custom") {
		t.Error("custom logger should receive output")
	}
}

// --- ParseLevel Tests ---

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warning ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// --- Context Tests ---

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	ctx := NewContext(context.Background(), With("request_id", "abc123"))
	InfoContext(ctx, "analyze request")

	output := buf.String()
	if !strings.Contains(output, "analyze request") || !strings.Contains(output, "abc123") {
		t.Errorf("expected request-scoped attributes, got %q", output)
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != Default() {
		t.Error("expected default logger for bare context")
	}
}

func TestWarnContext(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	WarnContext(context.Background(), "source failed", "channel", "website")
	if !strings.Contains(buf.String(), "source failed") {
		t.Error("WarnContext should log message")
	}
}

func TestDebugAndErrorContext(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf, Debug: true})
	defer resetLogger()

	ctx := NewContext(context.Background(), With("request_id", "r-7"))
	DebugContext(ctx, "price lookup complete")
	ErrorContext(ctx, "price fetch failed")

	output := buf.String()
	for _, want := range []string{"price lookup complete", "price fetch failed", "r-7"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}
