package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Environments(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zerolog.Level
	}{
		{name: "development defaults to debug", env: "development", want: zerolog.DebugLevel},
		{name: "production defaults to info", env: "production", want: zerolog.InfoLevel},
		{name: "override wins", env: "production", level: "warn", want: zerolog.WarnLevel},
		{name: "override is case insensitive", env: "development", level: "ERROR", want: zerolog.ErrorLevel},
		{name: "bad override falls back", env: "production", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.env, tt.level)
			if log == nil {
				t.Fatal("Expected logger to be created")
			}
			if got := log.GetZerolog().GetLevel(); got != tt.want {
				t.Errorf("Expected level %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.DebugLevel)

	log.Debug("debug message", map[string]interface{}{"key1": "value1", "key2": 42})
	log.Info("info message", map[string]interface{}{"listing": "3BHK"})
	log.Warn("warning message", map[string]interface{}{"warning_type": "ai_fallback"})
	log.Error("error occurred", errors.New("test error"), map[string]interface{}{"context": "database"})

	output := buf.String()
	for _, want := range []string{
		"debug message", "value1",
		"info message", "3BHK",
		"warning message", "ai_fallback",
		"error occurred", "test error", "database",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log output to contain %q", want)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	child := log.With(map[string]interface{}{
		"component": "api",
		"version":   "1.0",
	})
	child.Info("test message", nil)

	output := buf.String()
	if !strings.Contains(output, "api") {
		t.Error("Expected log output to contain component field from context")
	}
	if !strings.Contains(output, "1.0") {
		t.Error("Expected log output to contain version field from context")
	}
}

func TestWithRequestIDAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	log.WithRequestID("req-12345").WithComponent("recommendations").Info("request received", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected valid JSON output, got error: %v", err)
	}
	if entry["request_id"] != "req-12345" {
		t.Errorf("Expected request_id field, got %v", entry["request_id"])
	}
	if entry["component"] != "recommendations" {
		t.Errorf("Expected component field, got %v", entry["component"])
	}
	if entry["message"] != "request received" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
}

func TestLogLevels_Production(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	log.Debug("debug message", nil)
	debugOutput := buf.String()

	buf.Reset()
	log.Info("info message", nil)
	infoOutput := buf.String()

	if strings.Contains(debugOutput, "debug message") {
		t.Error("Debug message should not appear at info level")
	}
	if !strings.Contains(infoOutput, "info message") {
		t.Error("Info message should appear at info level")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	// Must not panic and must not write anywhere.
	log.Info("discarded", map[string]interface{}{"k": "v"})
	log.Error("discarded", errors.New("boom"), nil)
}

func TestNilFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	log.Info("message with nil fields", nil)

	if !strings.Contains(buf.String(), "message with nil fields") {
		t.Error("Expected message to be logged even with nil fields")
	}
}
