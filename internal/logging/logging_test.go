package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, FormatJSON, &bytes.Buffer{})
			if l.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", l.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", FormatJSON, &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("type", "std_msgs/msg/String").Msg("type loaded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["message"] != "type loaded" || entry["type"] != "std_msgs/msg/String" || entry["time"] == nil {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", "Console", &buf)
	l.Info().Msg("ready")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("console output looks like JSON: %q", out)
	}
	if !strings.Contains(out, "ready") {
		t.Errorf("console output missing message: %q", out)
	}
}
