package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gatherly/gatherly/internal/apierr"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("expected json format")
	}
	if ParseFormat("text") != FormatText {
		t.Error("expected text format")
	}
	if ParseFormat("") != FormatText {
		t.Error("expected text as the default format")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("fetching events", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["msg"] != "fetching events" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("unexpected count: %v", entry["count"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("low-level messages leaked through: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	apiErr := apierr.New(400, "validation failed").WithFields(map[string][]string{
		"email": {"already in use"},
	})
	logger.WithError(apiErr).Error("registration failed")

	out := buf.String()
	if !strings.Contains(out, `"status":400`) {
		t.Errorf("expected status attribute, got: %s", out)
	}
	if !strings.Contains(out, "already in use") {
		t.Errorf("expected flattened field errors, got: %s", out)
	}
}

func TestWithErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.WithError(bytes.ErrTooLarge).Error("oops")

	if !strings.Contains(buf.String(), bytes.ErrTooLarge.Error()) {
		t.Errorf("plain error message missing: %s", buf.String())
	}
}

func TestDefaultLoggerLazyInit(t *testing.T) {
	SetDefaultLogger(nil)
	logger := DefaultLogger()
	if logger == nil {
		t.Fatal("DefaultLogger should never return nil")
	}
	if DefaultLogger() != logger {
		t.Error("DefaultLogger should return the same instance once initialized")
	}
}
