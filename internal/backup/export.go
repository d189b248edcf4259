package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Zip writes "app_export_<unix>.zip" into outDir. A directory app is stored
// under its own name; a file app is stored by its base name.
func Zip(path, outDir string, now time.Time) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	zipPath := filepath.Join(outDir, fmt.Sprintf("app_export_%d.zip", now.Unix()))

	f, err := os.OpenFile(zipPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	zw := zip.NewWriter(f)

	if info.IsDir() {
		err = addDir(zw, path, outDir)
	} else {
		err = addFile(zw, path, filepath.Base(path))
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("export: %w", err)
	}
	return zipPath, nil
}

// addDir stores every regular file under dir with paths relative to dir's
// parent. skip is left out in case the archive lands inside the app.
func addDir(zw *zip.Writer, dir, skip string) error {
	parent := filepath.Dir(strings.TrimRight(dir, string(filepath.Separator)))
	skipAbs, _ := filepath.Abs(skip)
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == skipAbs && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel))
	})
}

func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(w, src)
	return err
}
