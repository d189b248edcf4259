// Package assistant invokes the code-generation assistant.
package assistant

import (
	"context"
	"fmt"

	"github.com/jorge-barreto/appgen/internal/config"
)

// Assistant answers a prompt with free-form text.
type Assistant interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a failed assistant call.
type GenerationError struct {
	Backend  string
	ExitCode int    // non-zero for CLI backends that exited with a failure
	Msg      string // stderr or API message
	Err      error
}

func (e *GenerationError) Error() string {
	switch {
	case e.ExitCode != 0 && e.Msg != "":
		return fmt.Sprintf("%s: exit %d: %s", e.Backend, e.ExitCode, e.Msg)
	case e.ExitCode != 0:
		return fmt.Sprintf("%s: exit %d", e.Backend, e.ExitCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Backend, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Backend, e.Msg)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func emptyOutput(backend string) error {
	return &GenerationError{Backend: backend, Msg: "returned empty output"}
}

// New builds the assistant selected by cfg.
func New(ctx context.Context, cfg config.Assistant) (Assistant, error) {
	switch cfg.Backend {
	case config.BackendCLI, "":
		return NewCLI(cfg), nil
	case config.BackendGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case config.BackendOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown assistant backend %q", cfg.Backend)
	}
}
