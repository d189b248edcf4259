package studio

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/codeblock"
	"github.com/jorge-barreto/appgen/internal/materialize"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

var (
	modeOptions         = []string{"Standard (single assistant call)", "Multi-Agent (architect, developer, reviewer)"}
	languageOptions     = []string{"Python", "HTML", "C++"}
	colorOptions        = []string{"Default", "Dark Mode", "Cyberpunk"}
	complexityOptions   = []string{"Simple", "Complex"}
	architectureOptions = []string{"Standard", "MVC", "Microservices"}
	extraOptions        = []string{"Docker", "Unit Tests", "README"}
)

const fallbackPlan = "Standard Architecture Plan"

// Generate asks the assistant for a new app. In multi-agent mode an
// architect call produces a plan that the developer call follows.
func (s *Studio) Generate(ctx context.Context, req assistant.Request, multiAgent bool) (string, error) {
	if !multiAgent {
		return s.ask(ctx, "Generating app...", assistant.GenerationPrompt(req))
	}

	s.Out.Info("Activating multi-agent mode...")
	query := assistant.EnhancedQuery(req)

	plan, err := s.ask(ctx, "Architect agent: designing solution...", assistant.ArchitectPrompt(query))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.Log.Warn("architect step failed", zap.Error(err))
		plan = fallbackPlan
	}
	s.Out.MarkdownPanel("Architect Agent Plan", plan, ux.ColorBlue)

	code, err := s.ask(ctx, "Developer agent: writing code...", assistant.DeveloperPrompt(query, plan))
	if err != nil {
		return "", fmt.Errorf("developer agent: %w", err)
	}
	s.Out.Println(ux.Magenta + "Reviewer agent: code looks solid. Approved." + ux.Reset)
	return code, nil
}

// Save writes blocks as a new app and records it in the registry.
func (s *Studio) Save(req assistant.Request, blocks []codeblock.Block, name string) (registry.App, error) {
	if err := validName(name); err != nil {
		return registry.App{}, err
	}
	apps, err := s.Store.Load()
	if err != nil {
		return registry.App{}, err
	}
	for _, a := range apps {
		if a.Name == name {
			return registry.App{}, fmt.Errorf("an app named %q already exists", name)
		}
	}

	mode := materialize.Auto
	if req.Complex {
		mode = materialize.Multi
	}
	path, err := materialize.Materialize(s.appsRoot(), blocks, materialize.Options{
		Mode:             mode,
		BaseName:         name,
		Language:         req.Language,
		DefaultExt:       s.Config.DefaultExt,
		AllowUnsafePaths: s.Config.AllowUnsafePaths,
	})
	if err != nil {
		return registry.App{}, err
	}
	dir := filepath.Join(s.appsRoot(), name)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	extras := append([]string(nil), req.Extras...)
	app := registry.New(registry.App{
		Name:        name,
		Description: req.Query,
		Language:    req.Language,
		Path:        path,
		Dir:         dir,
		Multi:       mode == materialize.Multi || len(blocks) > 1,
		Features:    extras,
		Metadata: registry.Metadata{
			Query:        req.Query,
			ColorScheme:  req.ColorScheme,
			Architecture: req.Architecture,
			Extras:       extras,
			Complex:      req.Complex,
		},
	}, s.now())
	if err := s.Store.Append(app); err != nil {
		return registry.App{}, fmt.Errorf("saving registry: %w", err)
	}
	s.Log.Info("saved app", zap.String("name", name), zap.String("path", path), zap.Int("files", len(blocks)))
	return app, nil
}

// NewApp generates and saves an app without prompting.
func (s *Studio) NewApp(ctx context.Context, req assistant.Request, name string, multiAgent bool) (registry.App, error) {
	answer, err := s.Generate(ctx, req, multiAgent)
	if err != nil {
		return registry.App{}, err
	}
	blocks, err := s.extract(answer)
	if err != nil {
		return registry.App{}, err
	}
	if len(blocks) == 0 {
		return registry.App{}, fmt.Errorf("no code found in the assistant's answer: %w", materialize.ErrNoContent)
	}
	if name == "" {
		name = fmt.Sprintf("app_%d", s.now().Unix())
	}
	return s.Save(req, blocks, name)
}

// Create runs the interactive new-app flow.
func (s *Studio) Create(ctx context.Context) error {
	s.Out.Println("")
	s.Out.Info("Describe the app you want to create")
	query, err := s.UI.Ask(ctx, "Query", "")
	if err != nil || query == "" {
		return err
	}

	mode, err := s.UI.Select(ctx, "Generation Mode:", modeOptions)
	if err != nil {
		return backOnAbort(err)
	}
	req := assistant.Request{Query: query, Architecture: "Standard"}
	var i int
	if i, err = s.UI.Select(ctx, "Select Language:", languageOptions); err != nil {
		return backOnAbort(err)
	}
	req.Language = languageOptions[i]
	if i, err = s.UI.Select(ctx, "Select Color Scheme:", colorOptions); err != nil {
		return backOnAbort(err)
	}
	req.ColorScheme = colorOptions[i]
	if i, err = s.UI.Select(ctx, "Complexity:", complexityOptions); err != nil {
		return backOnAbort(err)
	}
	req.Complex = complexityOptions[i] == "Complex"

	advanced, err := s.UI.Confirm(ctx, "Advanced Options?", false)
	if err != nil {
		return err
	}
	if advanced {
		if i, err = s.UI.Select(ctx, "Architecture:", architectureOptions); err != nil {
			return backOnAbort(err)
		}
		req.Architecture = architectureOptions[i]
		picked, err := s.UI.MultiSelect(ctx, "Features:", extraOptions)
		if err != nil {
			return backOnAbort(err)
		}
		for _, p := range picked {
			req.Extras = append(req.Extras, extraOptions[p])
		}
	}

	answer, err := s.Generate(ctx, req, mode == 1)
	if err != nil {
		return err
	}
	return s.offerSave(ctx, req, answer)
}

func (s *Studio) offerSave(ctx context.Context, req assistant.Request, answer string) error {
	s.Out.MarkdownPanel("", answer, ux.ColorGreen)
	blocks, err := s.extract(answer)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		s.Out.Warn("No code found in response.")
		return nil
	}

	ok, err := s.UI.Confirm(ctx, "Save this app?", true)
	if err != nil || !ok {
		return err
	}
	name, err := s.UI.Ask(ctx, "App Name", fmt.Sprintf("app_%d", s.now().Unix()))
	if err != nil {
		return err
	}
	app, err := s.Save(req, blocks, name)
	if err != nil {
		return err
	}
	s.Out.Success("Saved %s to %s", app.Name, app.Path)

	chat, err := s.UI.Confirm(ctx, "Chat with the assistant about this app?", false)
	if err != nil {
		return err
	}
	if chat {
		return s.Chat(ctx, app)
	}
	run, err := s.UI.Confirm(ctx, "Run now?", false)
	if err != nil || !run {
		return err
	}
	return s.Run(ctx, app)
}
