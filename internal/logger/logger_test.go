package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestDebug_Disabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose disabled, got %q", buf.String())
	}
}

func TestDebug_Enabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("ingest %d chunks", 3)
	got := buf.String()
	if !strings.Contains(got, "[DEBUG] ingest 3 chunks") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Info("loaded")
	Warn("dropped chunk")
	Section("Ingestion")

	got := buf.String()
	for _, want := range []string{"[INFO] loaded", "[WARN] dropped chunk", "=== Ingestion ==="} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose true")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected IsVerbose false")
	}
}
