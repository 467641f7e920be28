package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Info describes a file on disk.
type Info struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Ext      string    `json:"ext"`
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// Stat collects file information for display.
func Stat(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Info{
		Path:     path,
		Name:     fi.Name(),
		Ext:      strings.ToLower(filepath.Ext(path)),
		Size:     fi.Size(),
		Modified: fi.ModTime(),
	}, nil
}

// HumanSize renders a byte count as "1.5 MB" style text.
func HumanSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.2f %s", value, units[i])
}
