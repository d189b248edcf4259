// Package doctor inspects the local environment appgen depends on.
package doctor

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jorge-barreto/appgen/internal/assistant"
	"github.com/jorge-barreto/appgen/internal/config"
	"github.com/jorge-barreto/appgen/internal/registry"
	"github.com/jorge-barreto/appgen/internal/ux"
)

var lookPath = exec.LookPath

// Result is the outcome of an environment check.
type Result struct {
	Rows     []ux.StatusRow
	Problems []string // failed required checks
}

// OK reports whether every required check passed.
func (r Result) OK() bool {
	return len(r.Problems) == 0
}

func (r *Result) add(row ux.StatusRow, required bool) {
	r.Rows = append(r.Rows, row)
	if required && !row.OK {
		r.Problems = append(r.Problems, fmt.Sprintf("%s: %s", row.Module, row.Details))
	}
}

// Check runs every environment probe. The assistant and the registry are
// required; interpreters and the compiler only limit which apps can run.
func Check(cfg *config.Config, store registry.Store) Result {
	var r Result
	r.add(ux.StatusRow{
		Module:  "OS",
		OK:      true,
		Status:  "OK",
		Details: runtime.GOOS + "/" + runtime.GOARCH,
	}, false)
	r.add(checkAssistant(cfg.Assistant), true)
	r.add(checkBinary("Python", cfg.Runners.Python, "needed to run Python apps"), false)
	r.add(checkBinary("Streamlit", cfg.Runners.Streamlit, "needed for Streamlit apps"), false)
	r.add(checkCompiler(cfg.Runners), false)
	r.add(checkRegistry(store), true)
	r.add(checkExport(cfg.Export), false)
	return r
}

func checkAssistant(a config.Assistant) ux.StatusRow {
	row := ux.StatusRow{Module: "Assistant"}
	if err := assistant.Preflight(a); err != nil {
		row.Status = "MISSING"
		row.Details = err.Error()
		return row
	}
	row.OK = true
	row.Status = "ACTIVE"
	switch a.Backend {
	case config.BackendCLI, "":
		row.Details = strings.TrimSpace(a.Command + " " + firstArg(a.Args))
	default:
		row.Details = a.Backend
		if a.Model != "" {
			row.Details += " (" + a.Model + ")"
		}
	}
	return row
}

func checkBinary(module, name, why string) ux.StatusRow {
	row := ux.StatusRow{Module: module}
	if name == "" {
		row.Status = "DISABLED"
		row.Details = why
		return row
	}
	path, err := lookPath(name)
	if err != nil {
		row.Status = "MISSING"
		row.Details = fmt.Sprintf("%s not found (%s)", name, why)
		return row
	}
	row.OK = true
	row.Status = "OK"
	row.Details = path
	return row
}

func checkCompiler(r config.Runners) ux.StatusRow {
	row := checkBinary("C++", r.Compiler, "needed to build C++ apps")
	if !row.OK && r.OnlineCpp {
		row.OK = true
		row.Status = "ONLINE"
		row.Details = "falls back to Programiz"
	}
	return row
}

func checkRegistry(store registry.Store) ux.StatusRow {
	row := ux.StatusRow{Module: "Registry"}
	apps, err := store.Load()
	if err != nil {
		row.Status = "ERROR"
		row.Details = err.Error()
		return row
	}
	row.OK = true
	row.Status = "LOADED"
	row.Details = fmt.Sprintf("%d apps", len(apps))
	return row
}

func checkExport(e config.Export) ux.StatusRow {
	row := ux.StatusRow{Module: "Export", OK: true, Status: "LOCAL", Details: e.Dir}
	if e.Bucket == "" {
		return row
	}
	row.Details = fmt.Sprintf("s3://%s at %s", e.Bucket, e.Endpoint)
	if e.AccessKey == "" || e.SecretKey == "" {
		row.OK = false
		row.Status = "NO KEYS"
		return row
	}
	row.Status = "S3"
	return row
}

func firstArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") && !strings.Contains(a, "$") {
			return a
		}
	}
	return ""
}
