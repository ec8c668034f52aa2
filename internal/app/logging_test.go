package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/cellstorm/internal/config"
)

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	logger.sink.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	}
	return logger, &buf
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_LineFormat(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithFields(map[string]any{"rows": 3, "component": "datatable"}).Info("flushed %s", "widths")

	want := "2026-01-02T03:04:05.006 [INFO] test: flushed widths component=datatable rows=3\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("debug")
	logger.Debugf("debugf")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") {
		t.Error("expected DEBUG to be filtered out")
	}
	if strings.Contains(output, "[INFO]") {
		t.Error("expected INFO to be filtered out")
	}
	if !strings.Contains(output, "[WARN]") {
		t.Error("expected WARN in output")
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Error("expected ERROR in output")
	}
}

func TestLogger_Debugf(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.Debugf("frame %d: full=%v", 7, true)

	if !strings.Contains(buf.String(), "[DEBUG] test: frame 7: full=true") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestLogger_WithComponent(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithComponent("compositor").Info("test")

	if !strings.Contains(buf.String(), "component=compositor") {
		t.Errorf("expected component in output, got: %s", buf.String())
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelError)
	child := logger.WithComponent("pump")

	child.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output at error level")
	}

	logger.SetLevel(LogLevelInfo)
	child.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected derived logger to follow SetLevel on its parent")
	}
	if child.Level() != LogLevelInfo {
		t.Errorf("Level() = %v, want INFO", child.Level())
	}
}

func TestLogger_WithFieldDoesNotLeak(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	_ = logger.WithField("key", "value")
	logger.Info("plain")

	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger picked up child field: %s", buf.String())
	}
}

func TestLogger_SetOutput(t *testing.T) {
	logger, buf1 := newBufferLogger(LogLevelInfo)

	logger.Info("to buf1")
	if buf1.Len() == 0 {
		t.Error("expected output to buf1")
	}

	var buf2 bytes.Buffer
	logger.SetOutput(&buf2)
	logger.Info("to buf2")
	if buf2.Len() == 0 {
		t.Error("expected output to buf2")
	}
}

func TestNullLogger(t *testing.T) {
	// NullLogger should not panic
	NullLogger.Debug("test")
	NullLogger.Debugf("test")
	NullLogger.Info("test")
	NullLogger.WithComponent("x").Warn("test")
	NullLogger.Error("test")
	NullLogger.SetLevel(LogLevelDebug)
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()

	if cfg.Level != LogLevelInfo {
		t.Errorf("expected default level INFO, got %d", cfg.Level)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
	if cfg.Prefix != "cellstorm" {
		t.Errorf("expected prefix 'cellstorm', got '%s'", cfg.Prefix)
	}
}

func TestOpenLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellstorm.log")

	logger, closer, err := OpenLogger(config.LoggingConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("OpenLogger failed: %v", err)
	}
	logger.Debug("hello %s", "file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "[DEBUG] cellstorm: hello file") {
		t.Errorf("log file = %q", data)
	}
}

func TestOpenLogger_NoFile(t *testing.T) {
	logger, closer, err := OpenLogger(config.LoggingConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("OpenLogger failed: %v", err)
	}
	if logger.Level() != LogLevelWarn {
		t.Errorf("Level() = %v, want WARN", logger.Level())
	}
	logger.Error("discarded")
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestOpenLogger_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "cellstorm.log")

	_, _, err := OpenLogger(config.LoggingConfig{File: path})
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}
	if opErr.Target != path {
		t.Errorf("Target = %q, want %q", opErr.Target, path)
	}
}
