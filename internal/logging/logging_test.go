package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "accidentmon.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("poll done")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"poll done"`) {
		t.Errorf("log missing info line: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line written without verbose")
	}
}

func TestNewVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accidentmon.log")

	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("request sent")
	logger.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "request sent") {
		t.Errorf("debug line missing: %s", data)
	}
}
