package codeblock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Block represents a single fenced code block extracted from assistant output.
type Block struct {
	Filename string // e.g. "main.py"; empty when no marker named the block
	Language string // info-string tag, "text" when absent
	Code     string // content between the fences, trimmed
}

// HasFilename reports whether the block carried an explicit filename.
func (b Block) HasFilename() bool {
	return b.Filename != ""
}

// ErrTruncated is returned when a fence is opened but never closed.
var ErrTruncated = errors.New("truncated input: code fence opened but never closed")

const fence = "```"

const defaultLanguage = "text"

var markerRe = regexp.MustCompile(`(?i)^###\s*filename\s*:\s*(.+)$`)

// Extract scans text for fenced code blocks. It recognizes:
//
//	### filename: main.py
//	```python
//	print("hi")
//	```
//
// A "### filename:" marker names the next block only when nothing but blank
// lines separates it from the opening fence. A file=<name> token in the info
// string names the block when no marker did:
//
//	```yaml file=config.yaml
//
// A fence line that also closes on the same line, or whose info string is
// prose rather than a tag, is treated as text.
//
// Blocks are returned in document order. When the last fence is never
// closed, the completed blocks are returned together with ErrTruncated.
func Extract(text string) ([]Block, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var blocks []Block
	var current *Block
	var body []string
	var pending string
	openedAt := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if current != nil {
			// Inside a block: look for the closing fence
			if trimmed == fence {
				current.Code = strings.TrimSpace(strings.Join(body, "\n"))
				blocks = append(blocks, *current)
				current = nil
				body = body[:0]
				continue
			}
			body = append(body, line)
			continue
		}

		if strings.HasPrefix(trimmed, fence) && opensBlock(trimmed[len(fence):]) {
			current = openBlock(trimmed[len(fence):], pending)
			pending = ""
			openedAt = i + 1
			continue
		}

		if m := markerRe.FindStringSubmatch(trimmed); m != nil {
			pending = strings.TrimSpace(m[1])
			continue
		}
		if trimmed != "" {
			pending = ""
		}
	}

	if current != nil {
		return blocks, fmt.Errorf("%w (fence opened on line %d)", ErrTruncated, openedAt)
	}
	return blocks, nil
}

func openBlock(info, filename string) *Block {
	b := &Block{Filename: filename, Language: defaultLanguage}
	for i, field := range strings.Fields(info) {
		if name, ok := strings.CutPrefix(field, "file="); ok {
			if b.Filename == "" {
				b.Filename = name
			}
			continue
		}
		if i == 0 {
			b.Language = field
		}
	}
	return b
}

// opensBlock reports whether info, the text after an opening fence, is a
// language tag optionally followed by key=value attributes.
func opensBlock(info string) bool {
	if strings.Contains(info, fence) {
		return false
	}
	for i, field := range strings.Fields(info) {
		if i > 0 && !strings.Contains(field, "=") {
			return false
		}
	}
	return true
}
