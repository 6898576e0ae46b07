package logging_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"podscribe/internal/logging"
)

func TestNewJSONLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("transcription complete", logging.String("source", "ep1.mp3"), logging.Int("segments", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "transcription complete" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["source"] != "ep1.mp3" {
		t.Fatalf("unexpected source: %v", record["source"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Level: "debug", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger := logging.NewComponentLogger(base, "pipeline")
	logger.Info("stage started")
	if !strings.Contains(buf.String(), "component=pipeline") {
		t.Fatalf("component attribute missing: %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}
