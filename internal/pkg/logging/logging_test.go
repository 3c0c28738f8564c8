package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestStringToLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Warn", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"CRITICAL", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := stringToLogLevel(tt.in); got != tt.want {
			t.Errorf("stringToLogLevel(%q) = %v, want: %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLogger_ProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupLogger(Options{Service: ServiceLMS, Env: "production", Level: "info"}, &buf)
	slog.Info("header rewritten", "accept_language", "rel;q=1.0")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %q", buf.String())
	}

	if got, want := entry["accept_language"], "rel;q=1.0"; got != want {
		t.Errorf("entry[accept_language] = %v, want: %v", got, want)
	}
	if got, want := entry["service"], ServiceLMS; got != want {
		t.Errorf("entry[service] = %v, want: %v", got, want)
	}
}

func TestSetupLogger_DevelopmentWritesText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(Options{Service: ServiceCourseGraph, Env: "development", Level: "debug"}, &buf)
	logger.Debug("exporting course", "course_id", "course-v1:edX+DemoX+2024")

	out := buf.String()
	for _, want := range []string{"msg=\"exporting course\"", "service=coursegraph", "course_id=course-v1:edX+DemoX+2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output = %q, want it to contain %q", out, want)
		}
	}
}

func TestSetupLogger_LevelFiltersRecords(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupLogger(Options{Env: "development", Level: "warn"}, &buf)
	slog.Info("Loading config...")

	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}

	slog.Warn("Redis address is not set, sessions are kept in memory.")
	if out := buf.String(); out == "" || strings.Contains(out, "service=") {
		t.Errorf("log output = %q, want a warning without a service attribute", out)
	}
}
