package codeblock

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_FilenameMarker(t *testing.T) {
	input := "### filename: main.py\n```python\nprint(\"hi\")\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []Block{{Filename: "main.py", Language: "python", Code: `print("hi")`}}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NoFences(t *testing.T) {
	for _, input := range []string{"", "just prose", "### filename: orphan.py\nno code here\n"} {
		blocks, err := Extract(input)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", input, err)
		}
		if len(blocks) != 0 {
			t.Fatalf("%q: expected 0 blocks, got %d", input, len(blocks))
		}
	}
}

func TestExtract_MultipleBlocksInOrder(t *testing.T) {
	input := `Here is the app.

### filename: app.py
` + "```python" + `
import streamlit as st
st.title("x")
` + "```" + `

Some notes between blocks.

` + "```" + `
plain text
` + "```" + `

### FILENAME: static/style.css
` + "```css" + `
body { margin: 0; }
` + "```" + `
`
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []Block{
		{Filename: "app.py", Language: "python", Code: "import streamlit as st\nst.title(\"x\")"},
		{Language: "text", Code: "plain text"},
		{Filename: "static/style.css", Language: "css", Code: "body { margin: 0; }"},
	}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NoLanguageTag(t *testing.T) {
	blocks, err := Extract("```\ncontent here\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Language != "text" {
		t.Fatalf("expected language text, got %q", blocks[0].Language)
	}
	if blocks[0].HasFilename() {
		t.Fatalf("expected no filename, got %q", blocks[0].Filename)
	}
}

func TestExtract_MarkerNotAdjacent(t *testing.T) {
	input := "### filename: lost.py\nThis line breaks adjacency.\n```python\nx = 1\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Filename != "" {
		t.Fatalf("marker should not attach across prose, got %q", blocks[0].Filename)
	}
}

func TestExtract_MarkerAcrossBlankLines(t *testing.T) {
	input := "### filename: main.py\n\n\n```python\nx = 1\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Filename != "main.py" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtract_MarkerTrailingWhitespaceTrimmed(t *testing.T) {
	input := "###filename:   index.html   \n```html\n<p>x</p>\n```"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Filename != "index.html" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtract_MarkerUsedOnce(t *testing.T) {
	input := "### filename: a.py\n```python\na = 1\n```\n```python\nb = 2\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Filename != "a.py" || blocks[1].Filename != "" {
		t.Fatalf("got filenames %q, %q", blocks[0].Filename, blocks[1].Filename)
	}
}

func TestExtract_FileAnnotation(t *testing.T) {
	blocks, err := Extract("```yaml file=config.yaml\nname: test\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []Block{{Filename: "config.yaml", Language: "yaml", Code: "name: test"}}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MarkerWinsOverAnnotation(t *testing.T) {
	blocks, err := Extract("### filename: real.yaml\n```yaml file=other.yaml\nk: v\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if blocks[0].Filename != "real.yaml" {
		t.Fatalf("got %q", blocks[0].Filename)
	}
}

func TestExtract_PreservesInternalWhitespace(t *testing.T) {
	code := "def f():\n\n    return 1\n\tdone"
	blocks, err := Extract("```python\n\n  " + code + "  \n\n```")
	if err != nil {
		t.Fatal(err)
	}
	if blocks[0].Code != code {
		t.Fatalf("got %q, want %q", blocks[0].Code, code)
	}
}

func TestExtract_EmptyContent(t *testing.T) {
	blocks, err := Extract("```python\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Code != "" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtract_CRLF(t *testing.T) {
	blocks, err := Extract("### filename: a.py\r\n```python\r\nx = 1\r\n```\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Filename != "a.py" || blocks[0].Code != "x = 1" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtract_Truncated(t *testing.T) {
	input := "```python\nok = 1\n```\n\n### filename: cut.py\n```python\nhalf = "
	blocks, err := Extract(input)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 6") {
		t.Fatalf("expected line number in error, got %v", err)
	}
	if len(blocks) != 1 || blocks[0].Code != "ok = 1" {
		t.Fatalf("expected completed block to survive, got %+v", blocks)
	}
}

func TestExtract_NestedFenceClosesEarly(t *testing.T) {
	input := "```markdown\nouter\n```\ninner\n```\n"
	blocks, err := Extract(input)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for the dangling fence, got %v", err)
	}
	if len(blocks) != 1 || blocks[0].Code != "outer" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtract_InlineFenceIsText(t *testing.T) {
	input := "Install it with ```pip install flask``` first.\n" +
		"```pip install flask```\n" +
		"### filename: app.py\n```python\nprint(1)\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []Block{{Filename: "app.py", Language: "python", Code: "print(1)"}}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_ProseInfoStringIsText(t *testing.T) {
	input := "```run pip install flask\n\n```bash\npip install flask\n```\n"
	blocks, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []Block{{Language: "bash", Code: "pip install flask"}}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}
