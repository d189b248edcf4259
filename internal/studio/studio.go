// Package studio implements the generate, save, refine and run flows that
// both the interactive menu and the subcommands drive.
package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/codeblock"
	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

// AppRunner starts a saved app.
type AppRunner interface {
	Run(ctx context.Context, path, language string) error
}

// Uploader copies an exported archive somewhere remote and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, zipPath string) (string, error)
}

// Studio wires the assistant, registry, runner and terminal together.
type Studio struct {
	Config    *config.Config
	Assistant assistant.Assistant
	Store     registry.Store
	Runner    AppRunner
	Uploader  Uploader // nil when uploads are not configured
	UI        ux.Prompter
	Out       *ux.Printer
	Log       *zap.Logger

	// AssumeYes answers every confirmation with yes.
	AssumeYes bool
	Now       func() time.Time
}

func (s *Studio) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Studio) appsRoot() string {
	return s.Config.Path(s.Config.AppsDir)
}

// ask sends prompt to the assistant behind a progress indicator.
func (s *Studio) ask(ctx context.Context, label, prompt string) (string, error) {
	start := time.Now()
	var answer string
	err := s.UI.Wait(ctx, label, func(ctx context.Context) error {
		var err error
		answer, err = s.Assistant.Ask(ctx, prompt)
		return err
	})
	s.Log.Info("assistant call",
		zap.String("step", label),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("response_bytes", len(answer)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (s *Studio) confirm(ctx context.Context, question string, def bool) (bool, error) {
	if s.AssumeYes {
		return true, nil
	}
	return s.UI.Confirm(ctx, question, def)
}

// extract parses an assistant answer. A truncated answer still yields the
// blocks that were complete, with a warning.
func (s *Studio) extract(answer string) ([]codeblock.Block, error) {
	blocks, err := codeblock.Extract(answer)
	if errors.Is(err, codeblock.ErrTruncated) {
		s.Out.Warn("Warning: %v. Only complete code blocks were kept.", err)
		s.Log.Warn("truncated assistant answer", zap.Error(err), zap.Int("blocks", len(blocks)))
		return blocks, nil
	}
	return blocks, err
}

// Apps returns the registry contents.
func (s *Studio) Apps() ([]registry.App, error) {
	return s.Store.Load()
}

// FindApp resolves an id, id prefix or name.
func (s *Studio) FindApp(ref string) (registry.App, error) {
	apps, err := s.Store.Load()
	if err != nil {
		return registry.App{}, err
	}
	return registry.Find(apps, ref)
}

// pickApp shows the app list and returns the selection; ok is false for Back.
func (s *Studio) pickApp(ctx context.Context, title string) (app registry.App, ok bool, err error) {
	apps, err := s.Store.Load()
	if err != nil {
		return registry.App{}, false, err
	}
	if len(apps) == 0 {
		s.Out.Warn("No apps found.")
		return registry.App{}, false, nil
	}
	labels := make([]string, 0, len(apps)+1)
	for _, a := range apps {
		labels = append(labels, a.Label())
	}
	labels = append(labels, "Back")

	i, err := s.UI.Select(ctx, title, labels)
	if err != nil || i == len(apps) {
		return registry.App{}, false, backOnAbort(err)
	}
	return apps[i], true, nil
}

// backOnAbort turns a user abort into a plain "go back".
func backOnAbort(err error) error {
	if errors.Is(err, ux.ErrAborted) {
		return nil
	}
	return err
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("app name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("app name %q must not contain path separators", name)
	}
	return nil
}
