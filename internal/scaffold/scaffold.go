package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/ux"
)

var configTemplate = `# appgen project configuration.
# Every key is optional; the values below are the defaults.

apps-dir: .
registry: apps_registry.json
log-file: .appgen/appgen.log
default-ext: .py
allow-unsafe-paths: false

assistant:
  # cli runs a local command; gemini and openai call the hosted APIs
  # (GEMINI_API_KEY / OPENAI_API_KEY from the environment or .env).
  backend: cli
  command: gh
  args: [copilot, -p, $PROMPT, --silent]
  # model: ""
  timeout: 10

runners:
  python: python3
  streamlit: streamlit
  compiler: g++
  online-cpp: true
  headless: false

context:
  max-files: 3
  max-bytes: 2000

export:
  dir: exports
  # Upload ZIP exports to an S3-compatible bucket. Credentials come from
  # APPGEN_S3_ACCESS_KEY and APPGEN_S3_SECRET_KEY.
  # bucket: appgen-exports
  # endpoint: localhost:9000
  region: us-east-1
  use-ssl: true
`

var envTemplate = `# Secrets for appgen. This file is read on startup and never committed.
# GEMINI_API_KEY=
# OPENAI_API_KEY=
# APPGEN_S3_ACCESS_KEY=
# APPGEN_S3_SECRET_KEY=
`

var gitignoreTemplate = `appgen.log
`

// Init creates a new .appgen/ directory with a commented default config.
// A .env template is written to targetDir unless one already exists.
func Init(targetDir string, out io.Writer) error {
	dir := filepath.Join(targetDir, config.Dir)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s directory already exists in %s", config.Dir, targetDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", config.Dir, err)
	}

	configPath := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignoreTemplate), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	wroteEnv := false
	envPath := filepath.Join(targetDir, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		if err := os.WriteFile(envPath, []byte(envTemplate), 0600); err != nil {
			return fmt.Errorf("writing .env: %w", err)
		}
		wroteEnv = true
	}

	fmt.Fprintf(out, "\n%s%s✓ Initialized %s/ directory%s\n\n", ux.Bold, ux.Green, config.Dir, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	fmt.Fprintf(out, "    %s.appgen/config.yaml%s  assistant, runners and export settings\n", ux.Cyan, ux.Reset)
	if wroteEnv {
		fmt.Fprintf(out, "    %s.env%s                 API keys (keep out of version control)\n", ux.Cyan, ux.Reset)
	}
	fmt.Fprintf(out, "\n  Next steps:\n")
	fmt.Fprintf(out, "    1. Pick an assistant backend in %s.appgen/config.yaml%s\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    2. Run %sappgen doctor%s to check the environment\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    3. Run %sappgen%s to open the studio\n\n", ux.Cyan, ux.Reset)
	return nil
}
