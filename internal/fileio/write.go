package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating parent directories when createDirs
// is set.
func WriteFile(path string, data []byte, createDirs bool) error {
	if createDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Backup copies path next to itself with a ".bak" suffix appended to the
// full name (invoice.xml becomes invoice.xml.bak). Returns the backup path.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	defer src.Close()

	backupPath := path + ".bak"
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return backupPath, nil
}
