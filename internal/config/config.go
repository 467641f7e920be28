package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds converter defaults, loadable from a YAML file. Values here
// sit between the built-in defaults and per-call overrides.
type Config struct {
	CleanNamespaces    *bool `yaml:"clean_namespaces"`
	PreserveAttributes *bool `yaml:"preserve_attributes"`
	AutoTypeConversion *bool `yaml:"auto_type_conversion"`

	Indent      *int  `yaml:"indent"`
	EscapeASCII *bool `yaml:"escape_ascii"`

	CreateOutputDir *bool    `yaml:"create_output_dir"`
	BackupOriginal  *bool    `yaml:"backup_original"`
	MaxFileSizeMB   *float64 `yaml:"max_file_size_mb"`
	Workers         *int     `yaml:"workers"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CleanNamespaces:    ptr(true),
		PreserveAttributes: ptr(true),
		AutoTypeConversion: ptr(true),
		Indent:             ptr(2),
		EscapeASCII:        ptr(false),
		CreateOutputDir:    ptr(true),
		BackupOriginal:     ptr(false),
		MaxFileSizeMB:      ptr(50.0),
		Workers:            ptr(4),
	}
}

// Load reads a YAML config file and layers it over the defaults. Fields the
// file does not set keep their default values.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg.merge(fileCfg)
	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.CleanNamespaces != nil {
		c.CleanNamespaces = other.CleanNamespaces
	}
	if other.PreserveAttributes != nil {
		c.PreserveAttributes = other.PreserveAttributes
	}
	if other.AutoTypeConversion != nil {
		c.AutoTypeConversion = other.AutoTypeConversion
	}
	if other.Indent != nil {
		c.Indent = other.Indent
	}
	if other.EscapeASCII != nil {
		c.EscapeASCII = other.EscapeASCII
	}
	if other.CreateOutputDir != nil {
		c.CreateOutputDir = other.CreateOutputDir
	}
	if other.BackupOriginal != nil {
		c.BackupOriginal = other.BackupOriginal
	}
	if other.MaxFileSizeMB != nil {
		c.MaxFileSizeMB = other.MaxFileSizeMB
	}
	if other.Workers != nil {
		c.Workers = other.Workers
	}
}

func ptr[T any](v T) *T {
	return &v
}
