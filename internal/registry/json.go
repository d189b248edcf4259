package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONStore keeps the registry in a single indented JSON file.
type JSONStore struct {
	Path string
}

// NewJSONStore returns a store backed by path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Load reads the registry. Returns an empty list if the file does not exist.
func (s *JSONStore) Load() ([]App, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []App{}, nil
		}
		return nil, err
	}
	var apps []App
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", s.Path, err)
	}
	if apps == nil {
		apps = []App{}
	}
	return apps, nil
}

// Append adds app to the end of the registry.
func (s *JSONStore) Append(app App) error {
	apps, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(apps, app))
}

// Save replaces the registry contents.
func (s *JSONStore) Save(apps []App) error {
	if apps == nil {
		apps = []App{}
	}
	data, err := json.MarshalIndent(apps, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating registry dir: %w", err)
		}
	}
	return writeFileAtomic(s.Path, data, 0644)
}

// writeFileAtomic writes to a temp file in the same directory, fsyncs it,
// and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
