// Package runner executes generated apps locally.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/contextgather"
)

// ErrNoRunner is returned for apps whose language has no runner.
var ErrNoRunner = errors.New("no runner for this app")

// Runner launches apps by language.
type Runner struct {
	Config config.Runners
	Log    *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// OpenURL shows a URL in the user's browser.
	OpenURL func(url string)
	// Online submits C++ source to the online compiler.
	Online func(ctx context.Context, code string) error
}

// New returns a Runner wired to the process's stdio and default browser.
func New(cfg config.Runners, log *zap.Logger) *Runner {
	r := &Runner{
		Config:  cfg,
		Log:     log,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		OpenURL: launcher.Open,
	}
	r.Online = r.programiz
	return r
}

const (
	kindPython = "python"
	kindHTML   = "html"
	kindCpp    = "c++"
)

var extKinds = map[string]string{
	".py":   kindPython,
	".html": kindHTML,
	".htm":  kindHTML,
	".cpp":  kindCpp,
	".cc":   kindCpp,
}

var langKinds = map[string]string{
	"python": kindPython,
	"html":   kindHTML,
	"c++":    kindCpp,
	"cpp":    kindCpp,
}

// Run starts the app at path, normally its primary file. For a directory the
// main file among those matching language is used. The file's extension
// decides the runner; language only covers files with an unknown extension.
func (r *Runner) Run(ctx context.Context, path, language string) error {
	lang := strings.ToLower(strings.TrimSpace(language))
	file, err := contextgather.MainFileFor(path, kindExts(langKinds[lang]))
	if err != nil {
		return fmt.Errorf("locating app: %w", err)
	}
	if file == "" {
		return fmt.Errorf("%w: %s has no code files", ErrNoRunner, path)
	}

	kind, ok := extKinds[strings.ToLower(filepath.Ext(file))]
	if !ok {
		kind = langKinds[lang]
	}
	r.Log.Info("running app", zap.String("file", file), zap.String("language", lang), zap.String("runner", kind))

	switch kind {
	case kindPython:
		return r.runPython(ctx, file)
	case kindHTML:
		return r.runHTML(file)
	case kindCpp:
		return r.runCpp(ctx, file)
	default:
		return fmt.Errorf("%w: language %q", ErrNoRunner, language)
	}
}

func kindExts(kind string) []string {
	var exts []string
	for ext, k := range extKinds {
		if k == kind {
			exts = append(exts, ext)
		}
	}
	return exts
}

func (r *Runner) runHTML(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	url := "file://" + filepath.ToSlash(abs)
	fmt.Fprintf(r.Stdout, "Opening %s...\n", url)
	r.OpenURL(url)
	return nil
}

// command builds an interactive child process in dir. It stays in the
// terminal's process group so the app can read from it.
func (r *Runner) command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd
}

func (r *Runner) exec(ctx context.Context, dir, name string, args ...string) error {
	if err := r.command(ctx, dir, name, args...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
