package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))

	l.Info("processed file", "mode", "orbit", "snapshots", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("expected level 'info', got %v", entry["level"])
	}
	if entry["message"] != "processed file" {
		t.Errorf("expected message 'processed file', got %v", entry["message"])
	}
	if entry["mode"] != "orbit" {
		t.Errorf("expected mode='orbit', got %v", entry["mode"])
	}
	if entry["snapshots"] != float64(12) { // JSON numbers are float64
		t.Errorf("expected snapshots=12, got %v", entry["snapshots"])
	}
}

func TestZerologLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))

	l.Error("script rejected", "path", "broken.pps")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "error" {
		t.Errorf("expected level 'error', got %v", entry["level"])
	}
	if entry["path"] != "broken.pps" {
		t.Errorf("expected path='broken.pps', got %v", entry["path"])
	}
}

func TestZerologLogger_OddKeyValuesIgnored(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))

	l.Info("msg", "dangling")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if _, ok := entry["dangling"]; ok {
		t.Error("dangling key should be dropped")
	}
}

func TestNewConsole_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf, "chatty")

	l.Debug("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("debug output not suppressed at info level: %q", buf.String())
	}

	l.Info("visible")
	if buf.Len() == 0 {
		t.Error("expected info output")
	}
}
