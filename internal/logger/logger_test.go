package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestStdLogger(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := &StdLogger{
		logger: log.New(&buf, "", 0),
	}
	l.SetLevel(LevelDebug)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{
			name:     "Info",
			fn:       func() { l.Info("fed %s", "Buddy") },
			expected: "[INFO] fed Buddy",
		},
		{
			name:     "Warn",
			fn:       func() { l.Warn("store not open") },
			expected: "[WARN] store not open",
		},
		{
			name:     "Error",
			fn:       func() { l.Error("insert failed") },
			expected: "[ERROR] insert failed",
		},
		{
			name:     "Debug",
			fn:       func() { l.Debug("scan at %s", "08:00") },
			expected: "[DEBUG] scan at 08:00",
		},
		{
			name:     "Info with args",
			fn:       func() { l.Info("listed %s=%d", "dogs", 3) },
			expected: "[INFO] listed dogs=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			got := strings.TrimSpace(buf.String())
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStdLoggerLevel(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	l.Warn("shown")
	if !strings.Contains(buf.String(), "[WARN] shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debug("now shown")
	if !strings.Contains(buf.String(), "[DEBUG] now shown") {
		t.Errorf("expected debug line after SetLevel, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warning", LevelWarn},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"loud", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	if Default == nil {
		t.Error("Default logger should not be nil")
	}

	Default.Info("test")
	Discard.Error("never printed")
}
