package scaffold

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/appgen/internal/config"
)

func TestInit_CreatesDirectoryStructure(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, io.Discard); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, path := range []string{
		".appgen",
		filepath.Join(".appgen", "config.yaml"),
		filepath.Join(".appgen", ".gitignore"),
		".env",
	} {
		full := filepath.Join(dir, path)
		info, err := os.Stat(full)
		if err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
		if !info.IsDir() && info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestInit_GeneratedConfigIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, io.Discard); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.Dir, config.FileName), dir)
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}

	want := config.Default(dir)
	if cfg.Assistant.Command != want.Assistant.Command {
		t.Fatalf("command = %q, want %q", cfg.Assistant.Command, want.Assistant.Command)
	}
	if len(cfg.Assistant.Args) != len(want.Assistant.Args) {
		t.Fatalf("args = %v, want %v", cfg.Assistant.Args, want.Assistant.Args)
	}
	if cfg.Registry != want.Registry || cfg.Export.Dir != want.Export.Dir {
		t.Fatalf("registry/export = %q/%q", cfg.Registry, cfg.Export.Dir)
	}
	if cfg.Context != want.Context {
		t.Fatalf("context = %+v, want %+v", cfg.Context, want.Context)
	}
	if !cfg.Runners.OnlineCpp {
		t.Fatal("online-cpp should default to true")
	}

	if root, ok := config.FindRoot(filepath.Join(dir)); !ok || root != dir {
		t.Fatalf("FindRoot = %q, %v", root, ok)
	}
}

func TestInit_FailsIfDirExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".appgen"), 0755); err != nil {
		t.Fatal(err)
	}

	err := Init(dir, io.Discard)
	if err == nil {
		t.Fatal("expected error when .appgen already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected error containing 'already exists', got: %s", err)
	}
}

func TestInit_KeepsExistingEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("OPENAI_API_KEY=sk-test\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := Init(dir, &out); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	data, err := os.ReadFile(envPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "OPENAI_API_KEY=sk-test\n" {
		t.Fatalf(".env overwritten: %q", data)
	}
	if strings.Contains(out.String(), ".env") {
		t.Fatalf("output should not list .env as created:\n%s", out.String())
	}
}
