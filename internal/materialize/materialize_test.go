package materialize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/appgen/internal/codeblock"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMaterialize_SingleFileRoundTrip(t *testing.T) {
	root := t.TempDir()
	blocks, err := codeblock.Extract("```python\n\nimport os\n\nprint(os.getcwd())  \n```")
	if err != nil {
		t.Fatal(err)
	}
	path, err := Materialize(root, blocks, Options{BaseName: "demo", Language: "Python"})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "demo", "demo.py")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if got := readFile(t, path); got != blocks[0].Code {
		t.Fatalf("content = %q, want %q", got, blocks[0].Code)
	}
}

func TestMaterialize_SingleFileUsesRequestedLanguage(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{{Language: "text", Code: "int main() {}"}}
	path, err := Materialize(root, blocks, Options{Mode: Single, BaseName: "calc", Language: "C++"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "calc.cpp" {
		t.Fatalf("got %q", path)
	}

	path, err = Materialize(root, blocks, Options{Mode: Single, BaseName: "page", Language: "HTML"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "page.html" {
		t.Fatalf("got %q", path)
	}
}

func TestMaterialize_SingleFileDefaultExt(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{{Language: "rust", Code: "fn main() {}"}}
	path, err := Materialize(root, blocks, Options{BaseName: "r", Language: "Rust", DefaultExt: "rs"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "r.rs" {
		t.Fatalf("got %q", path)
	}

	path, err = Materialize(root, blocks, Options{BaseName: "r2", Language: "Rust"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "r2.txt" {
		t.Fatalf("got %q", path)
	}
}

func TestMaterialize_MultiFileNamesAndExtensions(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{
		{Filename: "app.py", Language: "python", Code: "print(1)"},
		{Language: "javascript", Code: "console.log(1)"},
	}
	path, err := Materialize(root, blocks, Options{BaseName: "web", Language: "Python"})
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(root, "web")
	if path != filepath.Join(dir, "app.py") {
		t.Fatalf("primary = %q", path)
	}
	if got := readFile(t, filepath.Join(dir, "app.py")); got != "print(1)" {
		t.Fatalf("app.py = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "file_1.js")); got != "console.log(1)" {
		t.Fatalf("file_1.js = %q", got)
	}
}

func TestMaterialize_MultiModeWithOneBlock(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{{Language: "html", Code: "<p>hi</p>"}}
	path, err := Materialize(root, blocks, Options{Mode: Multi, BaseName: "site", Language: "Python"})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, "site", "file_0.html") {
		t.Fatalf("got %q", path)
	}
}

func TestMaterialize_SingleModeWithManyBlocksGoesMulti(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{
		{Language: "python", Code: "a"},
		{Language: "text", Code: "b"},
	}
	path, err := Materialize(root, blocks, Options{Mode: Single, BaseName: "x", Language: "Python"})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, "x", "file_0.py") {
		t.Fatalf("got %q", path)
	}
	if got := readFile(t, filepath.Join(root, "x", "file_1.txt")); got != "b" {
		t.Fatalf("file_1.txt = %q", got)
	}
}

func TestMaterialize_NoContent(t *testing.T) {
	root := t.TempDir()
	_, err := Materialize(root, nil, Options{BaseName: "empty"})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "empty")); !os.IsNotExist(err) {
		t.Fatal("no directory should be created for empty input")
	}
}

func TestMaterialize_KeepsExistingFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "keep")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("mine"), 0644)

	blocks := []codeblock.Block{{Filename: "a.py", Code: "1"}, {Filename: "b.py", Code: "2"}}
	if _, err := Materialize(root, blocks, Options{BaseName: "keep"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "notes.txt")); got != "mine" {
		t.Fatalf("existing file clobbered: %q", got)
	}
}

func TestMaterialize_Subdirectory(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{
		{Filename: "index.html", Code: "<html></html>"},
		{Filename: "static/app.js", Code: "x()"},
	}
	if _, err := Materialize(root, blocks, Options{BaseName: "s"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(root, "s", "static", "app.js")); got != "x()" {
		t.Fatalf("got %q", got)
	}
}

func TestMaterialize_RejectsUnsafePaths(t *testing.T) {
	for _, name := range []string{"../evil.py", "/etc/passwd", "a/../../evil.py", ".."} {
		root := t.TempDir()
		blocks := []codeblock.Block{
			{Filename: "ok.py", Code: "1"},
			{Filename: name, Code: "2"},
		}
		_, err := Materialize(root, blocks, Options{BaseName: "app"})
		if !errors.Is(err, ErrUnsafePath) {
			t.Fatalf("%q: expected ErrUnsafePath, got %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(root, "app", "ok.py")); !os.IsNotExist(err) {
			t.Fatalf("%q: nothing should be written when a name is rejected", name)
		}
	}
}

func TestMaterialize_AllowUnsafePaths(t *testing.T) {
	root := t.TempDir()
	blocks := []codeblock.Block{
		{Filename: "main.py", Code: "1"},
		{Filename: "../shared.py", Code: "2"},
	}
	_, err := Materialize(root, blocks, Options{BaseName: "app", AllowUnsafePaths: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(root, "shared.py")); got != "2" {
		t.Fatalf("got %q", got)
	}
}

func TestMaterialize_MissingBaseName(t *testing.T) {
	_, err := Materialize(t.TempDir(), []codeblock.Block{{Code: "x"}}, Options{})
	if err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestBlockExt(t *testing.T) {
	cases := map[string]string{
		"python":     ".py",
		"Python3":    ".py",
		"html":       ".html",
		"xhtml":      ".html",
		"javascript": ".js",
		"js":         ".js",
		"typescript": ".ts",
		"css":        ".css",
		"cpp":        ".cpp",
		"c++":        ".cpp",
		"go":         ".go",
		"bash":       ".sh",
		"json":       ".json",
		"yml":        ".yaml",
		"md":         ".md",
		"text":       ".txt",
		"":           ".txt",
		"mongo":      ".txt",
	}
	for lang, want := range cases {
		if got := BlockExt(lang); got != want {
			t.Errorf("BlockExt(%q) = %q, want %q", lang, got, want)
		}
	}
}
