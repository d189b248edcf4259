package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Dir is the per-project configuration directory.
const Dir = ".appgen"

// FileName is the config file inside Dir.
const FileName = "config.yaml"

type Assistant struct {
	Backend string   `yaml:"backend"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Model   string   `yaml:"model"`
	Timeout int      `yaml:"timeout"` // minutes
	APIKey  string   `yaml:"-"`
}

type Runners struct {
	Python    string `yaml:"python"`
	Streamlit string `yaml:"streamlit"`
	Compiler  string `yaml:"compiler"`
	OnlineCpp bool   `yaml:"online-cpp"`
	Headless  bool   `yaml:"headless"`
}

type Context struct {
	MaxFiles int `yaml:"max-files"`
	MaxBytes int `yaml:"max-bytes"`
}

type Export struct {
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use-ssl"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

type Config struct {
	Root             string    `yaml:"-"`
	AppsDir          string    `yaml:"apps-dir"`
	Registry         string    `yaml:"registry"`
	LogFile          string    `yaml:"log-file"`
	DefaultExt       string    `yaml:"default-ext"`
	AllowUnsafePaths bool      `yaml:"allow-unsafe-paths"`
	Assistant        Assistant `yaml:"assistant"`
	Runners          Runners   `yaml:"runners"`
	Context          Context   `yaml:"context"`
	Export           Export    `yaml:"export"`
}

// Default returns the configuration used when no config file exists.
func Default(root string) *Config {
	return &Config{
		Root:       root,
		AppsDir:    ".",
		Registry:   "apps_registry.json",
		LogFile:    filepath.Join(Dir, "appgen.log"),
		DefaultExt: ".py",
		Assistant: Assistant{
			Backend: BackendCLI,
			Command: "gh",
			Args:    []string{"copilot", "-p", "$PROMPT", "--silent"},
			Timeout: 10,
		},
		Runners: Runners{
			Python:    "python3",
			Streamlit: "streamlit",
			Compiler:  "g++",
			OnlineCpp: true,
		},
		Context: Context{MaxFiles: 3, MaxBytes: 2000},
		Export:  Export{Dir: "exports", Region: "us-east-1", UseSSL: true},
	}
}

// Load reads a YAML config file over the defaults, applies environment
// overrides, and validates the result. A missing file yields the defaults.
func Load(path, root string) (*Config, error) {
	cfg := Default(root)
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	cfg.Root = root
	if err := LoadEnv(root); err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads root/.env into the process environment if present.
// Variables already set are not overridden.
func LoadEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies secrets and overrides from the environment into cfg.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("APPGEN_BACKEND")); v != "" {
		cfg.Assistant.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("APPGEN_MODEL")); v != "" {
		cfg.Assistant.Model = v
	}
	switch cfg.Assistant.Backend {
	case BackendGemini:
		cfg.Assistant.APIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	case BackendOpenAI:
		cfg.Assistant.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Export.AccessKey = strings.TrimSpace(os.Getenv("APPGEN_S3_ACCESS_KEY"))
	cfg.Export.SecretKey = strings.TrimSpace(os.Getenv("APPGEN_S3_SECRET_KEY"))
}

// Path resolves p against the project root unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// FindRoot walks up from dir looking for .appgen/config.yaml.
func FindRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, Dir, FileName)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
