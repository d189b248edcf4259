package assistant

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/jorge-barreto/appgen/internal/config"
)

// CLI runs the assistant as a subprocess and returns its stdout.
type CLI struct {
	Command string
	Args    []string // $PROMPT and $MODEL are substituted per call
	Model   string
	Timeout time.Duration
	Dir     string

	filteredEnv []string
}

// NewCLI returns a subprocess assistant for cfg.
func NewCLI(cfg config.Assistant) *CLI {
	return &CLI{
		Command: cfg.Command,
		Args:    cfg.Args,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.Timeout) * time.Minute,
	}
}

func (c *CLI) Ask(ctx context.Context, prompt string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Command, expandArgs(c.Args, prompt, c.Model)...)
	cmd.Dir = c.Dir
	cmd.Env = c.env()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := exitCode(cmd.Run())
	if err != nil {
		return "", &GenerationError{Backend: c.Command, Err: err}
	}
	if ctx.Err() != nil {
		return "", &GenerationError{Backend: c.Command, Err: ctx.Err()}
	}
	if code != 0 {
		return "", &GenerationError{Backend: c.Command, ExitCode: code, Msg: strings.TrimSpace(stderr.String())}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", emptyOutput(c.Command)
	}
	return out, nil
}

// env returns the inherited environment minus CLAUDECODE*, so a claude
// backend does not refuse to start when appgen itself runs inside one.
func (c *CLI) env() []string {
	if c.filteredEnv == nil {
		for _, e := range os.Environ() {
			key, _, _ := strings.Cut(e, "=")
			if strings.HasPrefix(key, "CLAUDECODE") {
				continue
			}
			c.filteredEnv = append(c.filteredEnv, e)
		}
	}
	return c.filteredEnv
}

func expandArgs(args []string, prompt, model string) []string {
	r := strings.NewReplacer(
		"${PROMPT}", prompt,
		"$PROMPT", prompt,
		"${MODEL}", model,
		"$MODEL", model,
	)
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}
