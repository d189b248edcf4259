package doctor

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

type brokenStore struct{}

func (brokenStore) Load() ([]registry.App, error) { return nil, errors.New("corrupt registry") }
func (brokenStore) Append(registry.App) error     { return nil }
func (brokenStore) Save([]registry.App) error     { return nil }

func fakeLookPath(t *testing.T, found ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func row(t *testing.T, r Result, module string) ux.StatusRow {
	t.Helper()
	for _, row := range r.Rows {
		if row.Module == module {
			return row
		}
	}
	t.Fatalf("no %s row in %+v", module, r.Rows)
	return ux.StatusRow{}
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default(t.TempDir())
	cfg.Assistant.Command = "sh"
	return cfg
}

func TestCheck_AllPresent(t *testing.T) {
	fakeLookPath(t, "python3", "streamlit", "g++")
	cfg := testConfig(t)
	store := registry.NewJSONStore(filepath.Join(cfg.Root, "apps.json"))
	if err := store.Append(registry.App{ID: "1", Name: "calc"}); err != nil {
		t.Fatal(err)
	}

	r := Check(cfg, store)
	if !r.OK() {
		t.Fatalf("expected OK, problems: %v", r.Problems)
	}
	if got := row(t, r, "Registry").Details; got != "1 apps" {
		t.Fatalf("registry details = %q", got)
	}
	if got := row(t, r, "Python").Details; got != "/usr/bin/python3" {
		t.Fatalf("python details = %q", got)
	}
	if row(t, r, "Assistant").Status != "ACTIVE" {
		t.Fatalf("assistant row = %+v", row(t, r, "Assistant"))
	}
	if len(r.Rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(r.Rows))
	}
}

func TestCheck_MissingOptionalToolsStillOK(t *testing.T) {
	fakeLookPath(t)
	cfg := testConfig(t)
	r := Check(cfg, registry.NewJSONStore(filepath.Join(cfg.Root, "apps.json")))
	if !r.OK() {
		t.Fatalf("optional tools should not fail the check: %v", r.Problems)
	}
	if py := row(t, r, "Python"); py.OK || py.Status != "MISSING" {
		t.Fatalf("python row = %+v", py)
	}
	if cpp := row(t, r, "C++"); !cpp.OK || cpp.Status != "ONLINE" {
		t.Fatalf("c++ row = %+v", cpp)
	}

	cfg.Runners.OnlineCpp = false
	r = Check(cfg, registry.NewJSONStore(filepath.Join(cfg.Root, "apps.json")))
	if cpp := row(t, r, "C++"); cpp.OK {
		t.Fatalf("c++ row without online fallback = %+v", cpp)
	}
}

func TestCheck_RequiredFailures(t *testing.T) {
	fakeLookPath(t)
	cfg := testConfig(t)
	cfg.Assistant.Command = "appgen-no-such-assistant"

	r := Check(cfg, brokenStore{})
	if r.OK() {
		t.Fatal("expected problems")
	}
	if len(r.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", r.Problems)
	}
	if !strings.Contains(r.Problems[0], "appgen-no-such-assistant") {
		t.Fatalf("problem[0] = %q", r.Problems[0])
	}
	if !strings.Contains(r.Problems[1], "corrupt registry") {
		t.Fatalf("problem[1] = %q", r.Problems[1])
	}
}

func TestCheck_APIBackend(t *testing.T) {
	fakeLookPath(t)
	cfg := testConfig(t)
	cfg.Assistant.Backend = config.BackendOpenAI
	cfg.Assistant.Model = "gpt-4o-mini"

	r := Check(cfg, registry.NewJSONStore(filepath.Join(cfg.Root, "apps.json")))
	if a := row(t, r, "Assistant"); a.OK {
		t.Fatalf("expected missing key, got %+v", a)
	}

	cfg.Assistant.APIKey = "sk-test"
	r = Check(cfg, registry.NewJSONStore(filepath.Join(cfg.Root, "apps.json")))
	if a := row(t, r, "Assistant"); !a.OK || a.Details != "openai (gpt-4o-mini)" {
		t.Fatalf("assistant row = %+v", a)
	}
}

func TestCheckExport(t *testing.T) {
	e := config.Export{Dir: "exports"}
	if got := checkExport(e); !got.OK || got.Status != "LOCAL" {
		t.Fatalf("local export = %+v", got)
	}
	e.Bucket, e.Endpoint = "apps", "localhost:9000"
	if got := checkExport(e); got.OK {
		t.Fatalf("bucket without keys = %+v", got)
	}
	e.AccessKey, e.SecretKey = "a", "b"
	if got := checkExport(e); !got.OK || got.Details != "s3://apps at localhost:9000" {
		t.Fatalf("bucket with keys = %+v", got)
	}
}
