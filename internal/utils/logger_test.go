package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(&buf, LevelWarn, true)
	defer InitLogger(nil, LevelInfo, false)

	Info("hidden %d", 1)
	Debug("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level leaked: %q", out)
	}
	if !strings.Contains(out, "shown 3") || !strings.Contains(out, "shown 4") {
		t.Errorf("expected warn and error messages, got %q", out)
	}
}

func TestModuleLogger(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(&buf, LevelDebug, true)
	defer InitLogger(nil, LevelInfo, false)

	if !DebugMode {
		t.Errorf("DebugMode should follow LevelDebug")
	}

	l := Module("gap")
	l.Info().Int("count", 7).Msg("checked")

	out := buf.String()
	if !strings.Contains(out, "module=gap") || !strings.Contains(out, "count=7") {
		t.Errorf("expected module and count fields, got %q", out)
	}
}

func TestLogLevelString(t *testing.T) {
	tests := map[LogLevel]string{
		LevelDebug:  "DEBUG",
		LevelInfo:   "INFO",
		LevelWarn:   "WARN",
		LevelError:  "ERROR",
		LogLevel(9): "UNKNOWN",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}
