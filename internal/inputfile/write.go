package inputfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Write writes doc into dir and returns the path written. With overwrite
// the file is dir/input.txt; otherwise the first free name from UniquePath.
func Write(doc *Document, dir string, overwrite bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	if !overwrite {
		return writeNew(path, doc.Bytes())
	}
	if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writeNew creates the first free name from UniquePath exclusively. When
// another writer claims that name first it moves on to the next one.
func writeNew(path string, data []byte) (string, error) {
	for {
		p, err := UniquePath(path)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", p, err)
		}
		_, werr := f.Write(data)
		if err := errors.Join(werr, f.Close()); err != nil {
			return "", fmt.Errorf("write %s: %w", p, err)
		}
		return p, nil
	}
}

// UniquePath returns path if nothing exists there, otherwise the first of
// "name(1).ext", "name(2).ext", ... that does not exist.
func UniquePath(path string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s(%d)%s", stem, n, ext)
	}
}
