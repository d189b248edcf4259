package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

func (r *Runner) runCpp(ctx context.Context, file string) error {
	if _, err := exec.LookPath(r.Config.Compiler); err == nil {
		exe, err := r.compile(ctx, file)
		if err == nil {
			return r.exec(ctx, filepath.Dir(file), exe)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !r.Config.OnlineCpp {
			return err
		}
		r.Log.Warn("local compile failed, using online compiler", zap.Error(err))
		fmt.Fprintln(r.Stdout, "Local compile failed. Using the online compiler...")
	} else if !r.Config.OnlineCpp {
		return fmt.Errorf("%w: compiler %q not found", ErrNoRunner, r.Config.Compiler)
	} else {
		fmt.Fprintln(r.Stdout, "Local C++ compiler not found. Using the online compiler...")
	}

	code, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	if err := r.Online(ctx, string(code)); err != nil {
		r.Log.Warn("online compiler automation failed", zap.Error(err))
		fmt.Fprintf(r.Stdout, "Automation failed (%v). Opening the website instead.\n", err)
		r.OpenURL(ProgramizURL)
	}
	return nil
}

// compile builds file next to itself and returns the executable path.
func (r *Runner) compile(ctx context.Context, file string) (string, error) {
	exe := strings.TrimSuffix(file, filepath.Ext(file))
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	fmt.Fprintln(r.Stdout, "Compiling locally...")

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Config.Compiler, file, "-o", exe)
	cmd.Dir = filepath.Dir(file)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("compiling %s: %w\n%s", filepath.Base(file), err, strings.TrimSpace(out.String()))
	}
	return exe, nil
}
