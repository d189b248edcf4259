// Package registry records generated apps in a flat JSON list.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no app matches a reference.
var ErrNotFound = errors.New("app not found")

// Metadata holds the original generation request so an app can be regenerated.
type Metadata struct {
	Query        string   `json:"query"`
	ColorScheme  string   `json:"color_scheme,omitempty"`
	Architecture string   `json:"architecture,omitempty"`
	Extras       []string `json:"extras,omitempty"`
	Complex      bool     `json:"complex,omitempty"`
}

// App is one generated application.
type App struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Path        string   `json:"path"` // primary file
	Dir         string   `json:"dir,omitempty"`
	Multi       bool     `json:"multi,omitempty"`
	Features    []string `json:"features"`
	Metadata    Metadata `json:"metadata"`
	CreatedAt   string   `json:"created_at"`
}

// Root returns the directory holding the app's files. Records written
// before the directory was stored fall back to the primary file's directory.
func (a App) Root() string {
	if a.Dir != "" {
		return a.Dir
	}
	return filepath.Dir(a.Path)
}

// Target returns the location overwritten by refine and chat-apply: the app
// directory for multi-file apps, the primary file otherwise.
func (a App) Target() string {
	if a.Multi {
		return a.Root()
	}
	return a.Path
}

// Label is the one-line description used in menus.
func (a App) Label() string {
	desc := a.Description
	if r := []rune(desc); len(r) > 30 {
		desc = string(r[:30])
	}
	return fmt.Sprintf("%s (%s) - %s", a.Name, a.Language, desc)
}

// Store persists the app list.
type Store interface {
	Load() ([]App, error)
	Append(app App) error
	Save(apps []App) error
}

// New fills in the ID and creation time of an app record.
func New(app App, now time.Time) App {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt == "" {
		app.CreatedAt = now.Format("2006-01-02 15:04:05")
	}
	if app.Features == nil {
		app.Features = []string{}
	}
	return app
}

// Find returns the app matching ref by exact id, name, or unique id prefix.
func Find(apps []App, ref string) (App, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return App{}, fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	for _, a := range apps {
		if a.ID == ref || a.Name == ref {
			return a, nil
		}
	}
	var match []App
	for _, a := range apps {
		if strings.HasPrefix(a.ID, ref) {
			match = append(match, a)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return App{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	default:
		return App{}, fmt.Errorf("ambiguous app reference %q matches %d apps", ref, len(match))
	}
}

// Replace swaps the record with the same ID into apps.
func Replace(apps []App, app App) ([]App, error) {
	for i := range apps {
		if apps[i].ID == app.ID {
			apps[i] = app
			return apps, nil
		}
	}
	return apps, fmt.Errorf("%w: %q", ErrNotFound, app.ID)
}
