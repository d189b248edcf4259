package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".appgen", "appgen.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("saved app", zap.String("name", "todo"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"saved app"`) || !strings.Contains(out, `"name":"todo"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug entry written at info level")
	}
}

func TestNew_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appgen.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("visible")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "visible") {
		t.Fatalf("expected debug entry, got %s", data)
	}
}

func TestNew_EmptyPath(t *testing.T) {
	logger, err := New("", true)
	if err != nil || logger == nil {
		t.Fatalf("expected nop logger, got %v, %v", logger, err)
	}
}
