package studio

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/backup"
	"github.com/jorge-barreto/appgen/internal/codeblock"
	"github.com/jorge-barreto/appgen/internal/contextgather"
	"github.com/jorge-barreto/appgen/internal/materialize"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

// Refine rewrites an app according to request. The app is backed up before
// the assistant is called; the answer is applied only after confirmation.
// It reports whether the app was changed.
func (s *Studio) Refine(ctx context.Context, app registry.App, request string) (bool, error) {
	ac, err := contextgather.Gather(app.Target(), contextgather.Full)
	if err != nil {
		return false, err
	}
	if err := s.backup(app); err != nil {
		return false, err
	}

	answer, err := s.ask(ctx, "Refining app...", assistant.RefinePrompt(ac.Render(), request))
	if err != nil {
		return false, err
	}
	s.Out.MarkdownPanel("", answer, ux.ColorGreen)

	blocks, err := s.extract(answer)
	if err != nil {
		return false, err
	}
	if len(blocks) == 0 {
		s.Out.Warn("No code blocks found in refinement.")
		return false, nil
	}
	ok, err := s.confirm(ctx, "Overwrite existing app with this update?", false)
	if err != nil || !ok {
		return false, err
	}
	return true, s.apply(app, blocks)
}

// RefineMenu runs the interactive refine flow.
func (s *Studio) RefineMenu(ctx context.Context) error {
	app, ok, err := s.pickApp(ctx, "Select App to Refine:")
	if err != nil || !ok {
		return err
	}
	request, err := s.UI.Ask(ctx, "Describe the fix or new feature", "")
	if err != nil || request == "" {
		return err
	}
	changed, err := s.Refine(ctx, app, request)
	if err != nil || !changed {
		return err
	}
	run, err := s.UI.Confirm(ctx, "Run updated app?", false)
	if err != nil || !run {
		return err
	}
	return s.Run(ctx, app)
}

// Chat answers questions about an app until the user types exit or quit.
// Code in an answer can be applied to the app after a backup.
func (s *Studio) Chat(ctx context.Context, app registry.App) error {
	limits := contextgather.Limits{MaxFiles: s.Config.Context.MaxFiles, MaxBytes: s.Config.Context.MaxBytes}
	ac, err := contextgather.Gather(app.Target(), limits)
	if err != nil {
		return err
	}
	code := ac.Render()
	s.Out.Panel("Chatting about "+app.Name, "Type 'exit' to stop.", ux.ColorCyan)

	for {
		msg, err := s.UI.Ask(ctx, "You", "")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		msg = strings.TrimSpace(msg)
		switch strings.ToLower(msg) {
		case "exit", "quit":
			return nil
		case "":
			continue
		}

		answer, err := s.ask(ctx, "Thinking...", assistant.ChatPrompt(app.Language, code, msg))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.Out.Error(err)
			continue
		}
		s.Out.MarkdownPanel("Assistant", answer, ux.ColorBlue)

		blocks, err := s.extract(answer)
		if err != nil || len(blocks) == 0 {
			continue
		}
		apply, err := s.UI.Confirm(ctx, "Apply the suggested code to the app?", false)
		if err != nil {
			return err
		}
		if !apply {
			continue
		}
		if err := s.backup(app); err != nil {
			s.Out.Error(err)
			continue
		}
		if err := s.apply(app, blocks); err != nil {
			s.Out.Error(err)
			continue
		}
		if ac, err := contextgather.Gather(app.Target(), limits); err == nil {
			code = ac.Render()
		}
	}
}

func (s *Studio) backup(app registry.App) error {
	dest, err := backup.Create(app.Target(), s.now())
	if err != nil {
		return err
	}
	s.Out.Success("Backup created: %s", dest)
	s.Log.Info("backup created", zap.String("app", app.Name), zap.String("backup", dest))
	return nil
}

func (s *Studio) apply(app registry.App, blocks []codeblock.Block) error {
	res, err := materialize.Apply(app.Target(), blocks, s.Config.AllowUnsafePaths)
	if err != nil {
		return err
	}
	for _, p := range res.Updated {
		s.Out.Success("Updated %s", p)
	}
	if len(res.Skipped) > 0 {
		s.Out.Warn("Skipped %d code block(s) with no target file.", len(res.Skipped))
	}
	s.Log.Info("applied update", zap.String("app", app.Name),
		zap.Strings("updated", res.Updated), zap.Ints("skipped", res.Skipped))
	return nil
}
