package studio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/backup"
	"github.com/jorge-barreto/appgen/internal/contextgather"
	"github.com/jorge-barreto/appgen/internal/health"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/runner"
	"github.com/jorge-barreto/appgen/internal/ux"
)

const previewBytes = 500

// snippet gathers the small code sample used by readme, score and why.
func (s *Studio) snippet(app registry.App) (string, error) {
	lim := contextgather.Snippet
	if !app.Multi {
		lim = contextgather.Limits{MaxBytes: 2 * contextgather.Snippet.MaxBytes}
	}
	ac, err := contextgather.Gather(app.Target(), lim)
	if err != nil {
		return "", err
	}
	return ac.Render(), nil
}

// Run starts the app after the user accepts the risk of running generated code.
func (s *Studio) Run(ctx context.Context, app registry.App) error {
	s.Out.Panel("", "⚠ This app was AI-generated and may execute system commands.\nRun only if you trust the code.", ux.ColorRed)
	ok, err := s.confirm(ctx, "Proceed anyway?", false)
	if err != nil || !ok {
		return err
	}
	s.Out.Success("Running %s...", app.Name)
	err = s.Runner.Run(ctx, app.Path, app.Language)
	switch {
	case errors.Is(err, runner.ErrNoRunner):
		s.Out.Warn("%v", err)
		return nil
	case err != nil && ctx.Err() != nil:
		s.Out.Warn("App stopped.")
		return ctx.Err()
	}
	return err
}

// Explain asks for a beginner-level walkthrough of the app's main file.
func (s *Studio) Explain(ctx context.Context, app registry.App) error {
	file, err := contextgather.MainFile(app.Path)
	if err != nil {
		return err
	}
	if file == "" {
		s.Out.Warn("No code files found in the app directory.")
		return nil
	}
	code, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	answer, err := s.ask(ctx, "Analyzing code...", assistant.ExplainPrompt(app.Language, string(code)))
	if err != nil {
		return err
	}
	s.Out.MarkdownPanel("Explanation: "+filepath.Base(file), answer, ux.ColorBlue)
	return nil
}

// Readme generates README.md next to the app's files and returns its path.
func (s *Studio) Readme(ctx context.Context, app registry.App) (string, error) {
	code, err := s.snippet(app)
	if err != nil {
		return "", err
	}
	answer, err := s.ask(ctx, "Writing README...", assistant.ReadmePrompt(app.Language, code))
	if err != nil {
		return "", err
	}
	// A fenced answer is unwrapped to its first block.
	if strings.HasPrefix(strings.TrimSpace(answer), "```") {
		if blocks, _ := s.extract(answer); len(blocks) > 0 {
			answer = blocks[0].Code
		}
	}

	path := filepath.Join(app.Root(), "README.md")
	if err := os.WriteFile(path, []byte(answer+"\n"), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	s.Out.Success("README.md generated at %s", path)
	return path, nil
}

// Score asks for a 1-10 rating of readability, security and performance.
func (s *Studio) Score(ctx context.Context, app registry.App) error {
	code, err := s.snippet(app)
	if err != nil {
		return err
	}
	answer, err := s.ask(ctx, "Scoring code...", assistant.ScorePrompt(app.Language, code))
	if err != nil {
		return err
	}
	s.Out.MarkdownPanel("Code Quality Score", answer, ux.ColorYellow)
	return nil
}

// Why asks the assistant to justify the app's architecture.
func (s *Studio) Why(ctx context.Context, app registry.App) error {
	code, err := s.snippet(app)
	if err != nil {
		return err
	}
	answer, err := s.ask(ctx, "Analyzing architecture...", assistant.WhyPrompt(app.Language, code))
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) == "" {
		answer = "No explanation generated."
	}
	s.Out.MarkdownPanel("Architecture Analysis", answer, ux.ColorMagenta)
	return nil
}

// Preview lists a directory app's files or shows the start of a file app.
// Nothing is executed.
func (s *Studio) Preview(app registry.App) error {
	target := app.Target()
	s.Out.Println(ux.Bold + "Previewing " + target + ux.Reset)
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		code, err := os.ReadFile(target)
		if err != nil {
			return err
		}
		s.Out.Preview(string(code), previewBytes)
		return nil
	}
	return filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		s.Out.Println("- " + filepath.ToSlash(rel))
		return nil
	})
}

// Health runs the static checks for the app's language.
func (s *Studio) Health(ctx context.Context, app registry.App) (*health.Report, error) {
	s.Out.Println(ux.Bold + "Running Health Check..." + ux.Reset)
	report, err := health.Check(ctx, app.Target(), app.Language)
	if errors.Is(err, health.ErrUnsupported) {
		s.Out.Warn("Health check supports Python apps only.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if report.Healthy() {
		s.Out.Panel("Health Check Passed", "No obvious issues found. Code looks healthy!", ux.ColorGreen)
		return report, nil
	}
	lines := make([]string, len(report.Issues))
	for i, issue := range report.Issues {
		lines[i] = issue.String()
	}
	s.Out.Panel("Health Check Issues", strings.Join(lines, "\n"), ux.ColorRed)
	return report, nil
}

// Backup copies the app next to itself.
func (s *Studio) Backup(app registry.App) error {
	return s.backup(app)
}

// Export zips the app into the export directory and uploads the archive
// when a bucket is configured.
func (s *Studio) Export(ctx context.Context, app registry.App) (string, error) {
	out := s.Config.Path(s.Config.Export.Dir)
	zipPath, err := backup.Zip(app.Target(), out, s.now())
	if err != nil {
		return "", err
	}
	s.Out.Success("App exported to %s", zipPath)
	s.Log.Info("exported app", zap.String("app", app.Name), zap.String("zip", zipPath))

	if s.Uploader == nil {
		return zipPath, nil
	}
	var url string
	err = s.UI.Wait(ctx, "Uploading export...", func(ctx context.Context) error {
		var err error
		url, err = s.Uploader.Upload(ctx, zipPath)
		return err
	})
	if err != nil {
		return zipPath, fmt.Errorf("upload: %w", err)
	}
	s.Out.Success("Uploaded to %s", url)
	return zipPath, nil
}

// Regenerate replays the app's original request and, after confirmation,
// applies the new code over the app.
func (s *Studio) Regenerate(ctx context.Context, app registry.App) error {
	meta := app.Metadata
	query := meta.Query
	if query == "" {
		query = app.Description
	}
	if query == "" {
		return fmt.Errorf("no metadata available to regenerate %s", app.Name)
	}
	req := assistant.Request{
		Query:        query,
		Language:     app.Language,
		ColorScheme:  meta.ColorScheme,
		Complex:      meta.Complex || app.Multi,
		Architecture: meta.Architecture,
		Extras:       meta.Extras,
	}

	answer, err := s.ask(ctx, "Regenerating with original prompt...", assistant.GenerationPrompt(req))
	if err != nil {
		return err
	}
	s.Out.MarkdownPanel("", answer, ux.ColorGreen)
	blocks, err := s.extract(answer)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		s.Out.Warn("No code found in response.")
		return nil
	}
	ok, err := s.confirm(ctx, "Replace the app with the regenerated code?", false)
	if err != nil || !ok {
		return err
	}
	if err := s.backup(app); err != nil {
		return err
	}
	return s.apply(app, blocks)
}
