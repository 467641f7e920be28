package fileio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ListFiles enumerates files in dir matching the glob pattern (applied to
// the base name). With recursive set, subdirectories are walked too.
// Directories themselves are never returned.
func ListFiles(dir, pattern string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("list %s: not a directory", dir)
	}

	if !recursive {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		var files []string
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				files = append(files, m)
			}
		}
		sort.Strings(files)
		return files, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
