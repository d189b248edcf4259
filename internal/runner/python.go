package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	requirementsRe = regexp.MustCompile(`(?i)#\s*requirements:\s*(.*)`)
	streamlitRe    = regexp.MustCompile(`(?m)^\s*(import\s+streamlit\b|from\s+streamlit\b)`)
)

// Requirements returns the packages named by the first
// "# requirements: a, b" comment in src.
func Requirements(src string) []string {
	m := requirementsRe.FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	var pkgs []string
	for _, p := range strings.Split(m[1], ",") {
		if p = strings.TrimSpace(p); p != "" {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

// UsesStreamlit reports whether src imports streamlit.
func UsesStreamlit(src string) bool {
	return streamlitRe.MatchString(src)
}

func (r *Runner) runPython(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	src := string(data)
	dir := filepath.Dir(file)

	if reqs := Requirements(src); len(reqs) > 0 {
		fmt.Fprintf(r.Stdout, "Installing dependencies: %s\n", strings.Join(reqs, ", "))
		args := append([]string{"-m", "pip", "install"}, reqs...)
		// A failed install is not fatal; the app may still run.
		if err := r.exec(ctx, dir, r.Config.Python, args...); err != nil {
			if ctx.Err() != nil {
				return err
			}
			r.Log.Warn("pip install failed", zap.Strings("packages", reqs), zap.Error(err))
		}
	}

	if UsesStreamlit(src) {
		return r.exec(ctx, dir, r.Config.Streamlit, "run", file)
	}
	return r.exec(ctx, dir, r.Config.Python, file)
}
