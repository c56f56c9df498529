package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chaos-io/bgclear/transparent"
)

// ErrDirectoryNotFound is returned when the input root is missing or is not a directory.
var ErrDirectoryNotFound = errors.New("input directory not found")

// ImagePath is one candidate source file.
type ImagePath struct {
	Path string // absolute
	Stem string
}

// Enumerate walks root recursively and returns every non-directory entry.
// No extension filtering is done; files that are not images fail later at
// decode time. Order is the walk order. Unreadable entries below root are
// logged and skipped; only a failure on root itself is returned.
func Enumerate(root string) ([]ImagePath, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
		}
		return nil, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve input directory: %w", err)
	}

	var paths []ImagePath
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			slog.Warn("skip unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, ImagePath{Path: path, Stem: transparent.Stem(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}
	return paths, nil
}
