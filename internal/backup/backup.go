// Package backup snapshots and exports generated apps.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Name returns the backup path for an app: "<path>_backup_<unix>" for a
// directory, "<path>.bak_<unix>" for a file.
func Name(path string, dir bool, now time.Time) string {
	path = strings.TrimRight(path, string(filepath.Separator))
	if dir {
		return fmt.Sprintf("%s_backup_%d", path, now.Unix())
	}
	return fmt.Sprintf("%s.bak_%d", path, now.Unix())
}

// maxSuffix bounds the numbered names tried when a backup name is taken.
const maxSuffix = 100

// Create copies the app at path next to itself and returns the copy's path.
// It never overwrites an existing backup: when Name is taken, "_1", "_2" and
// so on are appended.
func Create(path string, now time.Time) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	base := Name(path, info.IsDir(), now)
	for n := 0; n <= maxSuffix; n++ {
		dest := base
		if n > 0 {
			dest = fmt.Sprintf("%s_%d", base, n)
		}
		if info.IsDir() {
			err = os.Mkdir(dest, info.Mode().Perm()|0700)
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			if err == nil {
				err = copyDir(path, dest)
			}
		} else {
			err = copyFile(path, dest, info.Mode().Perm())
			if errors.Is(err, fs.ErrExist) {
				continue
			}
		}
		if err != nil {
			return "", fmt.Errorf("backup: %w", err)
		}
		return dest, nil
	}
	return "", fmt.Errorf("backup: %s and %d numbered variants already exist", base, maxSuffix)
}

func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
