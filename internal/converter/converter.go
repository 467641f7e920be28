package converter

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/beevik/etree"

	"github.com/rezonia/xmlconv/internal/config"
	"github.com/rezonia/xmlconv/internal/convert"
	"github.com/rezonia/xmlconv/internal/fileio"
	"github.com/rezonia/xmlconv/internal/validate"
	"github.com/rezonia/xmlconv/internal/value"
)

// Converter orchestrates the conversion of XML documents to JSON values:
// validate, parse, map, and optionally serialize to a file. Safe for
// concurrent use.
type Converter struct {
	settings convert.Settings
	encode   value.EncodeOptions

	createOutputDir bool
	backupOriginal  bool
	maxFileSizeMB   float64
	workers         int

	validator *validate.Validator
	converted atomic.Int64
	failed    atomic.Int64
}

// Stats aggregates the counters of a Converter and its collaborators.
type Stats struct {
	Conversions int64          `json:"conversions"`
	Failures    int64          `json:"failures"`
	Validator   validate.Stats `json:"validator"`
}

// New creates a Converter from a layered configuration.
func New(cfg config.Config) *Converter {
	c := &Converter{
		settings:  convert.DefaultSettings(),
		validator: validate.New(),
	}
	if cfg.CleanNamespaces != nil {
		c.settings.CleanNamespaces = *cfg.CleanNamespaces
	}
	if cfg.PreserveAttributes != nil {
		c.settings.PreserveAttributes = *cfg.PreserveAttributes
	}
	if cfg.AutoTypeConversion != nil {
		c.settings.AutoTypeConversion = *cfg.AutoTypeConversion
	}
	if cfg.Indent != nil {
		c.encode.Indent = *cfg.Indent
	}
	if cfg.EscapeASCII != nil {
		c.encode.EscapeASCII = *cfg.EscapeASCII
	}
	if cfg.CreateOutputDir != nil {
		c.createOutputDir = *cfg.CreateOutputDir
	}
	if cfg.BackupOriginal != nil {
		c.backupOriginal = *cfg.BackupOriginal
	}
	if cfg.MaxFileSizeMB != nil {
		c.maxFileSizeMB = *cfg.MaxFileSizeMB
	}
	if cfg.Workers != nil {
		c.workers = *cfg.Workers
	}
	return c
}

// NewDefault creates a Converter with the built-in defaults.
func NewDefault() *Converter {
	return New(config.Defaults())
}

// Option overrides settings for a single call. Overrides layer on top of the
// converter's configuration, which layers on top of the built-in defaults.
type Option func(*callConfig)

type callConfig struct {
	settings  convert.Settings
	encode    value.EncodeOptions
	recursive bool
}

// WithCleanNamespaces toggles namespace stripping for one call.
func WithCleanNamespaces(on bool) Option {
	return func(cc *callConfig) { cc.settings.CleanNamespaces = on }
}

// WithPreserveAttributes toggles the "@attributes" key for one call.
func WithPreserveAttributes(on bool) Option {
	return func(cc *callConfig) { cc.settings.PreserveAttributes = on }
}

// WithTypeConversion toggles scalar coercion for one call.
func WithTypeConversion(on bool) Option {
	return func(cc *callConfig) { cc.settings.AutoTypeConversion = on }
}

// WithIndent sets the JSON indentation for one call; 0 is compact.
func WithIndent(spaces int) Option {
	return func(cc *callConfig) { cc.encode.Indent = spaces }
}

// WithEscapeASCII toggles \uXXXX escaping of non-ASCII output for one call.
func WithEscapeASCII(on bool) Option {
	return func(cc *callConfig) { cc.encode.EscapeASCII = on }
}

// WithRecursive makes ConvertBatch walk subdirectories too. Other operations
// ignore it.
func WithRecursive(on bool) Option {
	return func(cc *callConfig) { cc.recursive = on }
}

func (c *Converter) callConfig(opts []Option) callConfig {
	cc := callConfig{settings: c.settings, encode: c.encode}
	for _, opt := range opts {
		opt(&cc)
	}
	return cc
}

// ConvertString converts an XML string into a value keyed by its root tag.
func (c *Converter) ConvertString(xml string, opts ...Option) (any, error) {
	cc := c.callConfig(opts)

	if err := c.validator.CheckString(xml); err != nil {
		c.failed.Add(1)
		return nil, NewInvalidDocumentError("", "not well-formed XML", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		c.failed.Add(1)
		return nil, NewInvalidDocumentError("", "not well-formed XML", err)
	}
	root := doc.Root()

	result := value.NewMap()
	result.Set(convert.RootTag(root, cc.settings), convert.MapElement(root, cc.settings))
	c.converted.Add(1)
	return result, nil
}

// ConvertFile converts an XML file. When jsonPath is non-empty the result is
// also serialized there using the effective indentation and escaping.
func (c *Converter) ConvertFile(xmlPath, jsonPath string, opts ...Option) (any, error) {
	if _, err := os.Stat(xmlPath); err != nil {
		return nil, NewNotFoundError(xmlPath)
	}
	if !validate.HasXMLExtension(xmlPath) {
		return nil, NewInvalidDocumentError(xmlPath, "extension not allowed", nil)
	}
	if c.maxFileSizeMB > 0 {
		if err := c.validator.CheckSize(xmlPath, c.maxFileSizeMB); err != nil {
			return nil, NewInvalidDocumentError(xmlPath, "file too large", err)
		}
	}

	content, err := fileio.ReadText(xmlPath)
	if err != nil {
		return nil, NewDecodeError(xmlPath, err)
	}

	if c.backupOriginal {
		if _, err := fileio.Backup(xmlPath); err != nil {
			return nil, NewWriteError(xmlPath, err)
		}
	}

	result, err := c.ConvertString(content, opts...)
	if err != nil {
		if ide, ok := err.(*InvalidDocumentError); ok && ide.Path == "" {
			ide.Path = xmlPath
		}
		return nil, err
	}

	if jsonPath != "" {
		if err := c.writeResult(result, jsonPath, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ConvertBatch converts every file in dir matching pattern, writing JSON
// siblings into outDir (default: dir/converted). One failing document never
// aborts the batch; the result maps each input path to its outcome.
func (c *Converter) ConvertBatch(dir, pattern, outDir string, opts ...Option) (map[string]bool, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, NewNotFoundError(dir)
	}
	if pattern == "" {
		pattern = "*.xml"
	}
	if outDir == "" {
		outDir = filepath.Join(dir, "converted")
	}

	files, err := fileio.ListFiles(dir, pattern, c.callConfig(opts).recursive)
	if err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(files))
	if len(files) == 0 {
		return results, nil
	}

	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		work = make(chan string)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range work {
				jsonPath := filepath.Join(outDir, stem(file)+".json")
				_, err := c.ConvertFile(file, jsonPath, opts...)
				mu.Lock()
				results[file] = err == nil
				mu.Unlock()
			}
		}()
	}
	for _, file := range files {
		work <- file
	}
	close(work)
	wg.Wait()

	return results, nil
}

// Serialize renders a converted value as JSON using the effective options.
func (c *Converter) Serialize(v any, opts ...Option) ([]byte, error) {
	cc := c.callConfig(opts)
	return value.Encode(v, cc.encode)
}

// Validator exposes the converter's validator, e.g. for validate-only runs.
func (c *Converter) Validator() *validate.Validator {
	return c.validator
}

// Stats returns the converter's counters.
func (c *Converter) Stats() Stats {
	return Stats{
		Conversions: c.converted.Load(),
		Failures:    c.failed.Load(),
		Validator:   c.validator.Stats(),
	}
}

func (c *Converter) writeResult(result any, jsonPath string, opts []Option) error {
	data, err := c.Serialize(result, opts...)
	if err != nil {
		return NewWriteError(jsonPath, err)
	}
	if err := fileio.WriteFile(jsonPath, data, c.createOutputDir); err != nil {
		return NewWriteError(jsonPath, err)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
