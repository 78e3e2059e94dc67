package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToFile(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Enabled: true, Level: "info"}, dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Info("hello from test", "key", "value")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "personachat.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message: %s", data)
	}
	if !strings.Contains(string(data), "key=value") {
		t.Errorf("log file missing attribute: %s", data)
	}
}

func TestInit_Disabled(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Enabled: false}, dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Info("should go nowhere")

	if _, err := os.Stat(filepath.Join(dir, "personachat.log")); !os.IsNotExist(err) {
		t.Error("disabled logger should not create a log file")
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Enabled: true, Level: "error"}, dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Debug("debug line")
	Info("info line")
	Error("error line")
	Close()

	data, _ := os.ReadFile(filepath.Join(dir, "personachat.log"))
	if strings.Contains(string(data), "info line") {
		t.Error("info should be filtered at error level")
	}
	if !strings.Contains(string(data), "error line") {
		t.Error("error line should be logged")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
	}
	for input, want := range tests {
		if got := parseLevel(input).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
