package materialize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/appgen/internal/codeblock"
)

func TestApply_DirectoryOnlyNamedBlocks(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "app.py"), []byte("old app"), 0644)
	os.WriteFile(filepath.Join(dir, "file_1.txt"), []byte("old text"), 0644)

	blocks := []codeblock.Block{
		{Filename: "app.py", Language: "python", Code: "new app"},
		{Language: "text", Code: "no target"},
	}
	res, err := Apply(dir, blocks, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "app.py")); got != "new app" {
		t.Fatalf("app.py = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "file_1.txt")); got != "old text" {
		t.Fatalf("unnamed block must not touch existing files, file_1.txt = %q", got)
	}
	if len(res.Updated) != 1 || res.Updated[0] != filepath.Join(dir, "app.py") {
		t.Fatalf("Updated = %v", res.Updated)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != 1 {
		t.Fatalf("Skipped = %v", res.Skipped)
	}
}

func TestApply_SingleFileFirstBlockOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.py")
	os.WriteFile(path, []byte("old"), 0644)

	blocks := []codeblock.Block{
		{Language: "python", Code: "first"},
		{Filename: "other.py", Code: "second"},
	}
	res, err := Apply(path, blocks, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "first" {
		t.Fatalf("got %q", got)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != 1 {
		t.Fatalf("Skipped = %v", res.Skipped)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "other.py")); !os.IsNotExist(err) {
		t.Fatal("extra blocks must be discarded for a single-file target")
	}
}

func TestApply_NoContent(t *testing.T) {
	_, err := Apply(t.TempDir(), nil, false)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestApply_MissingTarget(t *testing.T) {
	_, err := Apply(filepath.Join(t.TempDir(), "gone"), []codeblock.Block{{Code: "x"}}, false)
	if err == nil {
		t.Fatal("expected error for missing target")
	}
}

func TestApply_UnsafeName(t *testing.T) {
	dir := t.TempDir()
	_, err := Apply(dir, []codeblock.Block{{Filename: "../x.py", Code: "x"}}, false)
	if !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("expected ErrUnsafePath, got %v", err)
	}
}
