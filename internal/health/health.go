// Package health runs static checks over generated apps.
package health

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/appgen/internal/contextgather"
)

const maxParallel = 4

// ErrUnsupported is returned when no analyzer covers the app's language.
var ErrUnsupported = errors.New("health check not available for this language")

// Issue is one finding.
type Issue struct {
	File    string
	Line    int // 1-based; 0 when the issue concerns the whole file
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.File, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

// Analyzer checks source files of one language.
type Analyzer interface {
	Extensions() []string
	Analyze(ctx context.Context, name string, src []byte) ([]Issue, error)
}

var analyzers = map[string]Analyzer{
	"python": PythonAnalyzer{},
}

// Report is the result of checking one app.
type Report struct {
	Files  int
	Issues []Issue
}

// Healthy reports whether no issues were found.
func (r *Report) Healthy() bool {
	return len(r.Issues) == 0
}

// Check analyzes every file of the app at appPath that the language's
// analyzer understands.
func Check(ctx context.Context, appPath, language string) (*Report, error) {
	a, ok := analyzers[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, language)
	}

	ac, err := contextgather.Gather(appPath, contextgather.Full)
	if err != nil {
		return nil, err
	}

	var files []contextgather.File
	for _, f := range ac.Files {
		if hasExt(f.Name, a.Extensions()) {
			files = append(files, f)
		}
	}

	// Files are analyzed in parallel; results keep the gather order.
	results := make([][]Issue, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			issues, err := a.Analyze(gctx, f.Name, []byte(f.Content))
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", f.Name, err)
			}
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: len(files)}
	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	return report, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
