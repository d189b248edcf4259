package config

import (
	"fmt"
	"strings"
)

const (
	BackendCLI    = "cli"
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

var defaultModels = map[string]string{
	BackendCLI:    "",
	BackendGemini: "gemini-2.5-flash",
	BackendOpenAI: "gpt-4o-mini",
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	a := &cfg.Assistant
	if a.Backend == "" {
		a.Backend = BackendCLI
	}
	def, ok := defaultModels[a.Backend]
	if !ok {
		return fmt.Errorf("config: assistant: unknown backend %q (must be cli, gemini, or openai)", a.Backend)
	}
	if a.Model == "" {
		a.Model = def
	}
	if a.Backend == BackendCLI {
		if strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("config: assistant: 'command' is required for the cli backend")
		}
		if !hasPromptArg(a.Args) {
			return fmt.Errorf("config: assistant: 'args' must reference $PROMPT")
		}
	}
	if a.Timeout < 0 {
		return fmt.Errorf("config: assistant: timeout must be >= 0")
	}
	if a.Timeout == 0 {
		a.Timeout = 10
	}

	if cfg.Context.MaxFiles < 0 {
		return fmt.Errorf("config: context: max-files must be >= 0")
	}
	if cfg.Context.MaxBytes < 0 {
		return fmt.Errorf("config: context: max-bytes must be >= 0")
	}
	if cfg.Context.MaxFiles == 0 {
		cfg.Context.MaxFiles = 3
	}
	if cfg.Context.MaxBytes == 0 {
		cfg.Context.MaxBytes = 2000
	}

	if cfg.AppsDir == "" {
		cfg.AppsDir = "."
	}
	if cfg.Registry == "" {
		return fmt.Errorf("config: 'registry' must not be empty")
	}
	if cfg.DefaultExt != "" && !strings.HasPrefix(cfg.DefaultExt, ".") {
		cfg.DefaultExt = "." + cfg.DefaultExt
	}

	if cfg.Export.Bucket != "" && cfg.Export.Endpoint == "" {
		return fmt.Errorf("config: export: 'endpoint' is required when 'bucket' is set")
	}
	return nil
}

func hasPromptArg(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, "$PROMPT") || strings.Contains(a, "${PROMPT}") {
			return true
		}
	}
	return false
}
