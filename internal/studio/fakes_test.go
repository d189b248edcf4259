package studio

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

var fixedNow = time.Unix(1700000000, 0)

// fakeAssistant returns canned answers in order and records prompts.
type fakeAssistant struct {
	answers []string
	errs    map[int]error
	prompts []string
}

func (f *fakeAssistant) Ask(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if err := f.errs[i]; err != nil {
		return "", err
	}
	if i >= len(f.answers) {
		return "", errors.New("fake assistant: no more answers")
	}
	return f.answers[i], nil
}

// script is a Prompter that replays answers in order. Each answer is a
// string (Ask), bool (Confirm), int (Select), []int (MultiSelect) or error.
type script struct {
	t       *testing.T
	answers []any
	asked   []string
}

func (p *script) next(question string) any {
	p.t.Helper()
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected prompt %q", question)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *script) Ask(_ context.Context, question, def string) (string, error) {
	switch a := p.next(question).(type) {
	case error:
		return "", a
	case string:
		if a == "" {
			return def, nil
		}
		return a, nil
	default:
		p.t.Fatalf("prompt %q: want string answer, have %T", question, a)
		return "", nil
	}
}

func (p *script) Confirm(_ context.Context, question string, _ bool) (bool, error) {
	switch a := p.next(question).(type) {
	case error:
		return false, a
	case bool:
		return a, nil
	default:
		p.t.Fatalf("prompt %q: want bool answer, have %T", question, a)
		return false, nil
	}
}

func (p *script) Select(_ context.Context, title string, _ []string) (int, error) {
	switch a := p.next(title).(type) {
	case error:
		return 0, a
	case int:
		return a, nil
	default:
		p.t.Fatalf("prompt %q: want int answer, have %T", title, a)
		return 0, nil
	}
}

func (p *script) MultiSelect(_ context.Context, title string, _ []string) ([]int, error) {
	switch a := p.next(title).(type) {
	case error:
		return nil, a
	case []int:
		return a, nil
	default:
		p.t.Fatalf("prompt %q: want []int answer, have %T", title, a)
		return nil, nil
	}
}

func (p *script) Wait(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

func (p *script) done() {
	p.t.Helper()
	if len(p.answers) != 0 {
		p.t.Fatalf("%d scripted answers left unused: %v", len(p.answers), p.answers)
	}
}

type runCall struct{ path, language string }

type fakeRunner struct {
	calls []runCall
	err   error
}

func (r *fakeRunner) Run(_ context.Context, path, language string) error {
	r.calls = append(r.calls, runCall{path, language})
	return r.err
}

type fakeUploader struct{ uploaded []string }

func (u *fakeUploader) Upload(_ context.Context, zipPath string) (string, error) {
	u.uploaded = append(u.uploaded, zipPath)
	return "http://bucket/" + filepath.Base(zipPath), nil
}

type fixture struct {
	studio *Studio
	ai     *fakeAssistant
	ui     *script
	runner *fakeRunner
	out    *bytes.Buffer
	root   string
}

func newFixture(t *testing.T, answers ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default(root)
	f := &fixture{
		ai:     &fakeAssistant{answers: answers},
		ui:     &script{t: t},
		runner: &fakeRunner{},
		out:    &bytes.Buffer{},
		root:   root,
	}
	f.studio = &Studio{
		Config:    cfg,
		Assistant: f.ai,
		Store:     registry.NewJSONStore(filepath.Join(root, cfg.Registry)),
		Runner:    f.runner,
		UI:        f.ui,
		Out:       ux.NewPrinter(f.out),
		Log:       zap.NewNop(),
		Now:       func() time.Time { return fixedNow },
	}
	return f
}

func (f *fixture) script(answers ...any) {
	f.ui.answers = append(f.ui.answers, answers...)
}

func (f *fixture) apps(t *testing.T) []registry.App {
	t.Helper()
	apps, err := f.studio.Store.Load()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	return apps
}
