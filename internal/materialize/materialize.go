// Package materialize writes extracted code blocks to disk as a generated app.
package materialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/appgen/internal/codeblock"
)

// Mode selects the output shape of a generated app.
type Mode int

const (
	// Auto writes a single file for one block and a multi-file app otherwise.
	Auto Mode = iota
	Single
	Multi
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "auto"
	}
}

var (
	// ErrNoContent is returned when there are no blocks to write.
	ErrNoContent = errors.New("no content to save")
	// ErrUnsafePath is returned for filenames that are absolute or leave the target directory.
	ErrUnsafePath = errors.New("unsafe filename")
)

// Options controls how blocks are laid out on disk. Language is the language
// the app was requested in; it picks the single-file extension, since the
// block's own tag may disagree. DefaultExt is the single-file fallback when
// Language has no table entry.
type Options struct {
	Mode             Mode
	BaseName         string
	Language         string
	DefaultExt       string
	AllowUnsafePaths bool
}

// Materialize writes blocks into root/BaseName and returns the primary path.
// The directory is created if missing and never cleared. Files written before
// a failure are left in place.
func Materialize(root string, blocks []codeblock.Block, opts Options) (string, error) {
	if len(blocks) == 0 {
		return "", ErrNoContent
	}
	if strings.TrimSpace(opts.BaseName) == "" {
		return "", fmt.Errorf("app name is required")
	}
	dir := filepath.Join(root, opts.BaseName)

	multi := opts.Mode == Multi || len(blocks) > 1
	if !multi {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating app dir %s: %w", dir, err)
		}
		path := filepath.Join(dir, opts.BaseName+singleFileExt(opts))
		if err := writeFile(path, blocks[0].Code); err != nil {
			return "", err
		}
		return path, nil
	}

	// Resolve every name before touching disk so an unsafe filename late in
	// the sequence does not leave a half-written app behind.
	paths := make([]string, len(blocks))
	for i, b := range blocks {
		name := b.Filename
		if name == "" {
			name = fmt.Sprintf("file_%d%s", i, BlockExt(b.Language))
		}
		p, err := resolve(dir, name, opts.AllowUnsafePaths)
		if err != nil {
			return "", err
		}
		paths[i] = p
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating app dir %s: %w", dir, err)
	}
	for i, b := range blocks {
		if err := writeFile(paths[i], b.Code); err != nil {
			return "", err
		}
	}
	return paths[0], nil
}

func singleFileExt(opts Options) string {
	if ext := ExtForLanguage(opts.Language); ext != "" {
		return ext
	}
	if opts.DefaultExt != "" {
		if !strings.HasPrefix(opts.DefaultExt, ".") {
			return "." + opts.DefaultExt
		}
		return opts.DefaultExt
	}
	return ".txt"
}

// resolve joins name onto dir, rejecting names that escape dir unless allowed.
func resolve(dir, name string, allowUnsafe bool) (string, error) {
	if allowUnsafe {
		if filepath.IsAbs(name) {
			return filepath.Clean(name), nil
		}
		return filepath.Join(dir, name), nil
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q is absolute", ErrUnsafePath, name)
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes the app directory", ErrUnsafePath, name)
	}
	return filepath.Join(dir, clean), nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
