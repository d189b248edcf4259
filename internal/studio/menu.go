package studio

import (
	"context"
	"errors"
	"io"

	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

type action struct {
	name string
	run  func(s *Studio, ctx context.Context, app registry.App) error
}

var appActions = []action{
	{"Run App", func(s *Studio, ctx context.Context, a registry.App) error { return s.Run(ctx, a) }},
	{"Chat with Assistant", func(s *Studio, ctx context.Context, a registry.App) error { return s.Chat(ctx, a) }},
	{"Explain This App", func(s *Studio, ctx context.Context, a registry.App) error { return s.Explain(ctx, a) }},
	{"App Preview (Safe Mode)", func(s *Studio, _ context.Context, a registry.App) error { return s.Preview(a) }},
	{"Health Check", func(s *Studio, ctx context.Context, a registry.App) error {
		_, err := s.Health(ctx, a)
		return err
	}},
	{"Code Quality Score", func(s *Studio, ctx context.Context, a registry.App) error { return s.Score(ctx, a) }},
	{"Generate README", func(s *Studio, ctx context.Context, a registry.App) error {
		_, err := s.Readme(ctx, a)
		return err
	}},
	{"Create Backup", func(s *Studio, _ context.Context, a registry.App) error { return s.Backup(a) }},
	{"Export to ZIP", func(s *Studio, ctx context.Context, a registry.App) error {
		_, err := s.Export(ctx, a)
		return err
	}},
	{"Regenerate (Same Prompt)", func(s *Studio, ctx context.Context, a registry.App) error { return s.Regenerate(ctx, a) }},
	{"Why This Architecture?", func(s *Studio, ctx context.Context, a registry.App) error { return s.Why(ctx, a) }},
}

const (
	menuCreate = iota
	menuViewRun
	menuRefine
	menuExit
)

var mainOptions = []string{
	menuCreate:  "Create New App",
	menuViewRun: "View/Run Existing Apps",
	menuRefine:  "Refine/Fix Existing App",
	menuExit:    "Exit",
}

// MainMenu loops until the user exits or input ends. Errors from a flow are
// printed and the loop continues; only cancellation ends it early.
func (s *Studio) MainMenu(ctx context.Context) error {
	for {
		s.Out.Banner("Main Menu", ux.ColorBlue)
		choice, err := s.UI.Select(ctx, "Select an option:", mainOptions)
		if err != nil {
			if errors.Is(err, ux.ErrAborted) || errors.Is(err, io.EOF) {
				choice = menuExit
			} else {
				return err
			}
		}

		switch choice {
		case menuCreate:
			err = s.Create(ctx)
		case menuViewRun:
			err = s.ViewRun(ctx)
		case menuRefine:
			err = s.RefineMenu(ctx)
		case menuExit:
			s.Out.Warn("Goodbye!")
			return nil
		}

		switch {
		case err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, io.EOF):
			return nil
		default:
			s.Out.Error(err)
		}
	}
}

// ViewRun lets the user pick an app and one action to perform on it.
func (s *Studio) ViewRun(ctx context.Context) error {
	app, ok, err := s.pickApp(ctx, "Select an App:")
	if err != nil || !ok {
		return err
	}
	names := make([]string, 0, len(appActions)+1)
	for _, a := range appActions {
		names = append(names, a.name)
	}
	names = append(names, "Back")

	i, err := s.UI.Select(ctx, "Action for "+app.Name+":", names)
	if err != nil || i == len(appActions) {
		return backOnAbort(err)
	}
	return appActions[i].run(s, ctx, app)
}
