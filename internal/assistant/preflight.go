package assistant

import (
	"fmt"
	"os/exec"

	"github.com/jorge-barreto/appgen/internal/config"
)

// Preflight checks that the configured backend can be reached: the binary
// for the cli backend, an API key for the others.
func Preflight(cfg config.Assistant) error {
	switch cfg.Backend {
	case config.BackendCLI, "":
		if _, err := exec.LookPath(cfg.Command); err != nil {
			return fmt.Errorf("assistant command %q not found in PATH", cfg.Command)
		}
	case config.BackendGemini:
		if cfg.APIKey == "" {
			return fmt.Errorf("gemini backend requires GEMINI_API_KEY")
		}
	case config.BackendOpenAI:
		if cfg.APIKey == "" {
			return fmt.Errorf("openai backend requires OPENAI_API_KEY")
		}
	}
	return nil
}
