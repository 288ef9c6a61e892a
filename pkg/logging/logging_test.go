package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo}, // Default for unknown
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)

	if isGuiMode {
		t.Error("Expected isGuiMode to be false after InitForCLI")
	}

	if defaultLogger == nil {
		t.Error("Expected defaultLogger to be set after InitForCLI")
	}

	Info("test-subsystem", "test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Error("Expected log message to appear in CLI output")
	}

	if !strings.Contains(output, "test-subsystem") {
		t.Error("Expected subsystem to appear in CLI output")
	}
}

func TestInitForCLI_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelWarn, &buf)

	Debug("filter-test", "debug message")
	Info("filter-test", "info message")
	Warn("filter-test", "warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be suppressed at Warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be suppressed at Warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should appear at Warn level")
	}
}

func TestError_IncludesErrorAttribute(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)

	Error("err-test", errors.New("disk on fire"), "save failed")

	output := buf.String()
	if !strings.Contains(output, "save failed") {
		t.Error("Expected message to appear in output")
	}
	if !strings.Contains(output, "disk on fire") {
		t.Error("Expected underlying error to appear in output")
	}
}

func TestInitForGUI_ChannelDelivery(t *testing.T) {
	ch := InitForGUI(LevelDebug)
	defer func() {
		CloseGUIChannel()
		// Restore CLI mode so other tests are unaffected.
		InitForCLI(LevelInfo, &bytes.Buffer{})
	}()

	if ch == nil {
		t.Fatal("Expected a channel from InitForGUI")
	}

	Info("gui-test", "hello %s", "front-end")

	select {
	case entry := <-ch:
		if entry.Subsystem != "gui-test" {
			t.Errorf("Subsystem = %s, expected gui-test", entry.Subsystem)
		}
		if entry.Message != "hello front-end" {
			t.Errorf("Message = %s, expected formatted message", entry.Message)
		}
		if entry.Level != LevelInfo {
			t.Errorf("Level = %v, expected LevelInfo", entry.Level)
		}
	default:
		t.Fatal("Expected a log entry on the GUI channel")
	}
}
