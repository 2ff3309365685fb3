package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersNoopWithoutInit(t *testing.T) {
	Logger = nil
	Info("nothing")
	Debug("nothing")
	Warn("nothing")
	Error("nothing")
	if WithPrefix("x") == nil {
		t.Error("WithPrefix should never return nil")
	}
}

func TestInitWriterLevel(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	InitWriter(&buf, "warn")

	Info("hidden")
	Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestInitWriterBadLevelDefaultsToInfo(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	InitWriter(&buf, "loud")

	Debug("hidden")
	Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "trendwatch", "debug"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	Close()
	Logger = nil

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "trendwatch-*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Errorf("log file missing startup line: %q", data)
	}
}

func TestWithPrefixAndError(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	InitWriter(&buf, "info")

	WithPrefix("loader").Warn("append failed", "hour", "13")
	Error("record view failed", "err", "disk full")

	out := buf.String()
	if !strings.Contains(out, "loader") || !strings.Contains(out, "append failed") {
		t.Errorf("prefixed line missing: %q", out)
	}
	if !strings.Contains(out, "ERRO") || !strings.Contains(out, "disk full") {
		t.Errorf("error line missing: %q", out)
	}
}
