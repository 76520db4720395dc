package app

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"", zapcore.InfoLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LoggerOptions{Level: "warn"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("binding skipped", zap.String("shortcut", "ctrl-x"), zap.Int("line", 3))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	for _, want := range []string{"WARN", "keybind", "binding skipped", `"shortcut": "ctrl-x"`, `"line": 3`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("uncolored logger wrote escape codes: %q", out)
	}
}

func TestNewLogger_Color(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LoggerOptions{Level: "debug", Color: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("boom")

	out := buf.String()
	if !strings.HasPrefix(out, red+"ERROR") {
		t.Errorf("output %q does not start with red ERROR", out)
	}
	if !strings.HasSuffix(out, reset+"\n") {
		t.Errorf("output %q does not end with a color reset", out)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(nil, LoggerOptions{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
