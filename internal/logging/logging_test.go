package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		configure LogLevel
		emit      LogLevel
		want      bool
	}{
		{"debug passes at debug", DebugLevel, DebugLevel, true},
		{"debug filtered at info", InfoLevel, DebugLevel, false},
		{"info passes at info", InfoLevel, InfoLevel, true},
		{"warn passes at info", InfoLevel, WarnLevel, true},
		{"info filtered at error", ErrorLevel, InfoLevel, false},
		{"error passes at error", ErrorLevel, ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(Config{Format: HumanFormat, Level: tt.configure, Output: &buf})

			switch tt.emit {
			case DebugLevel:
				logger.Debug("msg", nil)
			case InfoLevel:
				logger.Info("msg", nil)
			case WarnLevel:
				logger.Warn("msg", nil)
			case ErrorLevel:
				logger.Error("msg", nil)
			}

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("emitted = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("canonicalized", map[string]any{"path": "a.json", "bytes": 42})

	var entry struct {
		Timestamp string         `json:"timestamp"`
		Level     string         `json:"level"`
		Message   string         `json:"message"`
		Fields    map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "info" || entry.Message != "canonicalized" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Fields["path"] != "a.json" {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestHumanFormatSortsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("done", map[string]any{"zebra": 1, "alpha": 2, "mid": 3})

	line := buf.String()
	ia := strings.Index(line, "alpha=")
	im := strings.Index(line, "mid=")
	iz := strings.Index(line, "zebra=")
	if ia < 0 || im < 0 || iz < 0 {
		t.Fatalf("missing fields in %q", line)
	}
	if !(ia < im && im < iz) {
		t.Errorf("fields not sorted in %q", line)
	}
}

func TestHumanFormatNoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("plain", nil)

	line := buf.String()
	if strings.Contains(line, "|") {
		t.Errorf("separator emitted without fields: %q", line)
	}
	if !strings.Contains(line, "[info] plain") {
		t.Errorf("unexpected line %q", line)
	}
}
