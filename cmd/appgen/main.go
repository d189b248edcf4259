package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/backup"
	"github.com/jorge-barreto/appgen/internal/codeblock"
	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/docs"
	"github.com/jorge-barreto/appgen/internal/doctor"
	"github.com/jorge-barreto/appgen/internal/logging"
	"github.com/jorge-barreto/appgen/internal/materialize"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/runner"
	"github.com/jorge-barreto/appgen/internal/scaffold"
	"github.com/jorge-barreto/appgen/internal/studio"
	"github.com/jorge-barreto/appgen/internal/ux"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:        "appgen",
		Usage:       "Generate, run, and refine small apps with an AI coding assistant",
		Description: "Run with no command to open the interactive studio. Run 'appgen docs' for configuration and usage topics.",
		Version:     version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "Write debug entries to the log file"},
		},
		Action: menuAction,
		Commands: []*cli.Command{
			initCmd(),
			menuCmd(),
			newCmd(),
			listCmd(),
			runCmd(),
			refineCmd(),
			chatCmd(),
			explainCmd(),
			readmeCmd(),
			scoreCmd(),
			whyCmd(),
			healthCmd(),
			previewCmd(),
			backupCmd(),
			exportCmd(),
			regenerateCmd(),
			extractCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .appgen/ directory with a default config",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, os.Stdout)
		},
	}
}

func menuCmd() *cli.Command {
	return &cli.Command{
		Name:   "menu",
		Usage:  "Open the interactive studio",
		Action: menuAction,
	}
}

func menuAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openStudio(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Log.Sync()

	result := doctor.Check(s.Config, s.Store)
	s.Out.Splash(version, result.Rows)
	if err := attachAssistant(ctx, s); err != nil {
		return err
	}
	return s.MainMenu(ctx)
}

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Generate and save a new app",
		ArgsUsage: "[description]",
		Description: "With a description the app is generated and saved without prompting.\n" +
			"Without one the interactive create flow starts.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Value: "Python", Usage: "Target language (Python, HTML, C++, ...)"},
			&cli.StringFlag{Name: "color", Value: "Default", Usage: "Color scheme"},
			&cli.BoolFlag{Name: "complex", Usage: "Ask for a multi-file app"},
			&cli.StringFlag{Name: "arch", Value: "Standard", Usage: "Architecture pattern"},
			&cli.StringSliceFlag{Name: "extra", Usage: "Extra deliverable (Docker, Unit Tests, README); repeatable"},
			&cli.StringFlag{Name: "name", Usage: "App name (default app_<unix time>)"},
			&cli.BoolFlag{Name: "multi-agent", Usage: "Plan with an architect call before generating"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStudio(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer s.Log.Sync()

			query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if query == "" {
				return s.Create(ctx)
			}
			req := assistant.Request{
				Query:        query,
				Language:     cmd.String("lang"),
				ColorScheme:  cmd.String("color"),
				Complex:      cmd.Bool("complex"),
				Architecture: cmd.String("arch"),
				Extras:       cmd.StringSlice("extra"),
			}
			app, err := s.NewApp(ctx, req, cmd.String("name"), cmd.Bool("multi-agent"))
			if err != nil {
				return err
			}
			s.Out.Success("App saved to %s", app.Path)
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List saved apps",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStudio(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer s.Log.Sync()

			apps, err := s.Apps()
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				s.Out.Warn("No apps found. Run 'appgen new' to create one.")
				return nil
			}
			for _, a := range apps {
				id := a.ID
				if len(id) > 8 {
					id = id[:8]
				}
				fmt.Fprintf(s.Out.W, "  %s%s%s  %s  %s%s%s\n", ux.Dim, id, ux.Reset, a.Label(), ux.Dim, a.CreatedAt, ux.Reset)
			}
			return nil
		},
	}
}

func runCmd() *cli.Command {
	return appCommand("run", "Run a saved app", false, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Run(ctx, app)
	})
}

func refineCmd() *cli.Command {
	cmd := appCommand("refine", "Apply a fix or feature request to an app", true, func(ctx context.Context, s *studio.Studio, app registry.App, rest []string) error {
		request := strings.TrimSpace(strings.Join(rest, " "))
		if request == "" {
			var err error
			request, err = s.UI.Ask(ctx, "Describe the fix or new feature", "")
			if err != nil {
				return err
			}
		}
		if request == "" {
			return fmt.Errorf("a change request is required")
		}
		changed, err := s.Refine(ctx, app, request)
		if err != nil {
			return err
		}
		if !changed {
			s.Out.Dim("App left unchanged.")
		}
		return nil
	})
	cmd.ArgsUsage = "<app> [request]"
	return cmd
}

func chatCmd() *cli.Command {
	return appCommand("chat", "Chat with the assistant about an app", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Chat(ctx, app)
	})
}

func explainCmd() *cli.Command {
	return appCommand("explain", "Explain an app's main file", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Explain(ctx, app)
	})
}

func readmeCmd() *cli.Command {
	return appCommand("readme", "Generate a README.md for an app", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		_, err := s.Readme(ctx, app)
		return err
	})
}

func scoreCmd() *cli.Command {
	return appCommand("score", "Rate an app's code quality", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Score(ctx, app)
	})
}

func whyCmd() *cli.Command {
	return appCommand("why", "Explain the architecture behind an app", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Why(ctx, app)
	})
}

func healthCmd() *cli.Command {
	return appCommand("health", "Run static checks on an app", false, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		report, err := s.Health(ctx, app)
		if err != nil {
			return err
		}
		if report != nil && !report.Healthy() {
			return fmt.Errorf("%d issue(s) found", len(report.Issues))
		}
		return nil
	})
}

func previewCmd() *cli.Command {
	return appCommand("preview", "Show an app's code without running it", false, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Preview(app)
	})
}

func backupCmd() *cli.Command {
	return appCommand("backup", "Copy an app next to itself", false, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Backup(app)
	})
}

func exportCmd() *cli.Command {
	return appCommand("export", "Zip an app and upload it when a bucket is configured", false, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		_, err := s.Export(ctx, app)
		return err
	})
}

func regenerateCmd() *cli.Command {
	return appCommand("regenerate", "Replay an app's original request", true, func(ctx context.Context, s *studio.Studio, app registry.App, _ []string) error {
		return s.Regenerate(ctx, app)
	})
}

// appCommand builds a command whose first argument names a saved app.
func appCommand(name, usage string, needAssistant bool, action func(ctx context.Context, s *studio.Studio, app registry.App, rest []string) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<app>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Answer yes to every confirmation"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref := cmd.Args().First()
			if ref == "" {
				return fmt.Errorf("app argument is required")
			}
			s, err := openStudio(ctx, cmd, needAssistant)
			if err != nil {
				return err
			}
			defer s.Log.Sync()
			s.AssumeYes = cmd.Bool("yes")

			app, err := s.FindApp(ref)
			if err != nil {
				return fmt.Errorf("%s: %w", ref, err)
			}
			return action(ctx, s, app, cmd.Args().Tail())
		},
	}
}

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Write the code blocks of a markdown answer to disk",
		ArgsUsage: "[file|-]",
		Description: "Reads markdown from the file, or stdin when the argument is absent or '-',\n" +
			"and materializes its fenced code blocks the same way generated apps are saved.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: ".", Usage: "Directory the app directory is created in"},
			&cli.StringFlag{Name: "name", Value: "extracted", Usage: "App directory name"},
			&cli.StringFlag{Name: "lang", Usage: "Language used to pick a single file's extension"},
			&cli.BoolFlag{Name: "multi", Usage: "Always write one file per block"},
			&cli.BoolFlag{Name: "allow-unsafe-paths", Usage: "Allow filenames that escape the app directory"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			text, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			out := ux.Stdout()
			blocks, err := codeblock.Extract(text)
			if errors.Is(err, codeblock.ErrTruncated) {
				out.Warn("%v; keeping %d complete block(s)", err, len(blocks))
			} else if err != nil {
				return err
			}

			mode := materialize.Auto
			if cmd.Bool("multi") {
				mode = materialize.Multi
			}
			path, err := materialize.Materialize(cmd.String("out"), blocks, materialize.Options{
				Mode:             mode,
				BaseName:         cmd.String("name"),
				Language:         cmd.String("lang"),
				DefaultExt:       cfg.DefaultExt,
				AllowUnsafePaths: cfg.AllowUnsafePaths || cmd.Bool("allow-unsafe-paths"),
			})
			if err != nil {
				return err
			}
			out.Success("Wrote %d block(s); primary file %s", len(blocks), path)
			return nil
		},
	}
}

func readInput(name string) (string, error) {
	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the assistant, interpreters, and registry",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStudio(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer s.Log.Sync()

			result := doctor.Check(s.Config, s.Store)
			s.Out.Splash(version, result.Rows)
			if !result.OK() {
				return fmt.Errorf("environment check failed:\n  %s", strings.Join(result.Problems, "\n  "))
			}
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'appgen docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// projectRoot walks up from cwd looking for .appgen/config.yaml and falls
// back to cwd, where the defaults apply.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, ok := config.FindRoot(dir); ok {
		return root, nil
	}
	return dir, nil
}

func loadConfig() (*config.Config, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.Dir, config.FileName), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openStudio loads the config and wires every collaborator. The assistant
// is only built when the command talks to it, so commands such as run and
// list work without API keys.
func openStudio(ctx context.Context, cmd *cli.Command, needAssistant bool) (*studio.Studio, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logPath := ""
	if cfg.LogFile != "" {
		logPath = cfg.Path(cfg.LogFile)
	}
	log, err := logging.New(logPath, cmd.Bool("debug"))
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded",
		zap.String("root", cfg.Root),
		zap.String("backend", cfg.Assistant.Backend),
		zap.String("command", cmd.Name))

	s := &studio.Studio{
		Config: cfg,
		Store:  registry.NewJSONStore(cfg.Path(cfg.Registry)),
		Runner: runner.New(cfg.Runners, log),
		UI:     ux.NewTerminal(),
		Out:    ux.Stdout(),
		Log:    log,
	}

	if needAssistant {
		if err := attachAssistant(ctx, s); err != nil {
			return nil, err
		}
	}

	up, err := backup.NewUploader(cfg.Export)
	if err != nil {
		return nil, err
	}
	if up != nil {
		s.Uploader = up
	}
	return s, nil
}

func attachAssistant(ctx context.Context, s *studio.Studio) error {
	if err := assistant.Preflight(s.Config.Assistant); err != nil {
		return fmt.Errorf("%w (run 'appgen doctor' for details)", err)
	}
	a, err := assistant.New(ctx, s.Config.Assistant)
	if err != nil {
		return err
	}
	s.Assistant = a
	return nil
}
