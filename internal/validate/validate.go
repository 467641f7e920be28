package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/beevik/etree"
)

// xmlExtensions is the allow-list of fiscal document extensions.
var xmlExtensions = map[string]bool{
	".xml":  true,
	".nfe":  true,
	".cte":  true,
	".mdfe": true,
}

// Validator checks XML well-formedness and file-level constraints. It keeps
// its own counters; methods are safe for concurrent use.
type Validator struct {
	mu     sync.Mutex
	stats  Stats
	errors []string
}

// Stats summarizes the validations a Validator has performed.
type Stats struct {
	Performed int `json:"validations_performed"`
	Valid     int `json:"valid"`
	Invalid   int `json:"invalid"`
}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// CheckString verifies that content is well-formed XML with a root element.
func (v *Validator) CheckString(content string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return v.fail(fmt.Errorf("invalid XML: %w", err))
	}
	if doc.Root() == nil {
		return v.fail(fmt.Errorf("invalid XML: no root element"))
	}
	v.pass()
	return nil
}

// CheckFile verifies that path exists, carries an allowed extension and
// contains well-formed XML.
func (v *Validator) CheckFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return v.fail(fmt.Errorf("file not found: %s", path))
	}
	if !HasXMLExtension(path) {
		return v.fail(fmt.Errorf("unsupported extension: %s", path))
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return v.fail(fmt.Errorf("invalid XML in %s: %w", path, err))
	}
	if doc.Root() == nil {
		return v.fail(fmt.Errorf("invalid XML in %s: no root element", path))
	}
	v.pass()
	return nil
}

// CheckSize rejects files larger than maxMB megabytes.
func (v *Validator) CheckSize(path string, maxMB float64) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	sizeMB := float64(fi.Size()) / (1024 * 1024)
	if sizeMB > maxMB {
		return v.fail(fmt.Errorf("file too large: %.2fMB (limit %.1fMB)", sizeMB, maxMB))
	}
	v.pass()
	return nil
}

// HasXMLExtension reports whether path carries one of the supported fiscal
// document extensions (.xml, .nfe, .cte, .mdfe).
func HasXMLExtension(path string) bool {
	return xmlExtensions[strings.ToLower(filepath.Ext(path))]
}

// Stats returns a copy of the validation counters.
func (v *Validator) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// LastErrors returns up to n of the most recent validation error messages.
func (v *Validator) LastErrors(n int) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n <= 0 || len(v.errors) == 0 {
		return nil
	}
	if n > len(v.errors) {
		n = len(v.errors)
	}
	out := make([]string, n)
	copy(out, v.errors[len(v.errors)-n:])
	return out
}

// Reset clears the counters and recorded errors.
func (v *Validator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = Stats{}
	v.errors = nil
}

func (v *Validator) pass() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Performed++
	v.stats.Valid++
}

func (v *Validator) fail(err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Performed++
	v.stats.Invalid++
	v.errors = append(v.errors, err.Error())
	return err
}
