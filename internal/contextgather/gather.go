// Package contextgather reads an app's source back for assistant prompts.
package contextgather

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// codeExts are the file types sent to the assistant.
var codeExts = map[string]bool{
	".py":   true,
	".cpp":  true,
	".html": true,
	".js":   true,
	".css":  true,
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".appgen":      true,
}

const truncatedMark = "\n... (truncated)"

// Limits bounds how much code is gathered. Zero means unlimited.
type Limits struct {
	MaxFiles int // files read from a directory app
	MaxBytes int // bytes kept per file
}

// Snippet is the small budget used for readme, score and why prompts.
var Snippet = Limits{MaxFiles: 2, MaxBytes: 1000}

// Full gathers everything, for refine and regenerate.
var Full = Limits{}

// File is one gathered source file.
type File struct {
	Name    string // slash-separated, relative to the app directory
	Content string
}

// AppContext holds the gathered code of one app.
type AppContext struct {
	Path  string
	Dir   bool
	Files []File
}

// Gather reads the code of the app at appPath, which is either a directory
// or a single file.
func Gather(appPath string, lim Limits) (*AppContext, error) {
	info, err := os.Stat(appPath)
	if err != nil {
		return nil, fmt.Errorf("reading app: %w", err)
	}
	ac := &AppContext{Path: appPath, Dir: info.IsDir()}

	if !ac.Dir {
		data, err := os.ReadFile(appPath)
		if err != nil {
			return nil, fmt.Errorf("reading app: %w", err)
		}
		ac.Files = []File{{Name: filepath.Base(appPath), Content: truncate(string(data), lim.MaxBytes)}}
		return ac, nil
	}

	names, err := codeFiles(appPath)
	if err != nil {
		return nil, fmt.Errorf("reading app: %w", err)
	}
	if lim.MaxFiles > 0 && len(names) > lim.MaxFiles {
		names = names[:lim.MaxFiles]
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(appPath, filepath.FromSlash(name)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		ac.Files = append(ac.Files, File{Name: name, Content: truncate(string(data), lim.MaxBytes)})
	}
	return ac, nil
}

// Render formats the gathered code for a prompt. A single-file app renders
// as its bare content; a directory app renders one "--- name ---" section
// per file.
func (ac *AppContext) Render() string {
	if !ac.Dir && len(ac.Files) == 1 {
		return ac.Files[0].Content
	}
	var buf strings.Builder
	for _, f := range ac.Files {
		fmt.Fprintf(&buf, "\n--- %s ---\n%s", f.Name, f.Content)
	}
	return buf.String()
}

// Empty reports whether no code was found.
func (ac *AppContext) Empty() bool {
	return len(ac.Files) == 0
}

// MainFile returns the path of the file to explain: the app itself when it
// is a single file, otherwise the first main* or index* code file, otherwise
// the first code file. It returns "" for a directory with no code.
func MainFile(appPath string) (string, error) {
	return MainFileFor(appPath, nil)
}

// MainFileFor is MainFile restricted to files with one of exts when the
// directory has any; otherwise it behaves like MainFile.
func MainFileFor(appPath string, exts []string) (string, error) {
	info, err := os.Stat(appPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return appPath, nil
	}
	names, err := codeFiles(appPath)
	if err != nil {
		return "", err
	}
	if matching := withExt(names, exts); len(matching) > 0 {
		names = matching
	}
	if len(names) == 0 {
		return "", nil
	}
	pick := names[0]
	for _, n := range names {
		base := strings.ToLower(pathBase(n))
		if strings.HasPrefix(base, "main") || strings.HasPrefix(base, "index") {
			pick = n
			break
		}
	}
	return filepath.Join(appPath, filepath.FromSlash(pick)), nil
}

func withExt(names, exts []string) []string {
	var out []string
	for _, n := range names {
		ext := strings.ToLower(filepath.Ext(n))
		for _, e := range exts {
			if ext == e {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// codeFiles lists code files under dir, top-level files first, then
// subdirectories, each level sorted by name.
func codeFiles(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !codeExts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(names, func(i, j int) bool {
		di, dj := strings.Count(names[i], "/"), strings.Count(names[j], "/")
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return names, nil
}

func pathBase(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + truncatedMark
}
