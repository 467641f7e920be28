// Package convlib provides a public API for converting XML documents to JSON
// and extracting business data from Brazilian NFe fiscal documents.
//
// Example usage:
//
//	conv := convlib.New()
//	result, err := conv.ConvertString(`<person><name>Ana</name></person>`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := conv.Serialize(result, convlib.WithIndent(2))
//	fmt.Println(string(data))
package convlib

import (
	"github.com/rezonia/xmlconv/internal/config"
	"github.com/rezonia/xmlconv/internal/convert"
	"github.com/rezonia/xmlconv/internal/converter"
	"github.com/rezonia/xmlconv/internal/nfe"
	"github.com/rezonia/xmlconv/internal/value"
)

// Re-export core types for public API
type (
	Converter    = converter.Converter
	Option       = converter.Option
	Stats        = converter.Stats
	Config       = config.Config
	Map          = value.Map
	List         = value.List
	Extractor    = nfe.Extractor
	CleanOptions = value.CleanOptions
)

// Re-export error types
type (
	NotFoundError        = converter.NotFoundError
	InvalidDocumentError = converter.InvalidDocumentError
	DecodeError          = converter.DecodeError
	WriteError           = converter.WriteError
)

// Re-export per-call options
var (
	WithCleanNamespaces    = converter.WithCleanNamespaces
	WithPreserveAttributes = converter.WithPreserveAttributes
	WithTypeConversion     = converter.WithTypeConversion
	WithIndent             = converter.WithIndent
	WithEscapeASCII        = converter.WithEscapeASCII
	WithRecursive          = converter.WithRecursive
)

// Re-export post-processing and Brazilian formatting helpers
var (
	CleanEmpty         = value.CleanEmpty
	StripNamespace     = convert.StripNamespace
	StripAllNamespaces = convert.StripAllNamespaces
	Summarize          = nfe.Summarize
	ParseMonetary      = nfe.ParseMonetary
	FormatCurrency     = nfe.FormatCurrency
	FormatCNPJ         = nfe.FormatCNPJ
	FormatCPF          = nfe.FormatCPF
	FormatCEP          = nfe.FormatCEP
	FormatPhone        = nfe.FormatPhone
)

// New creates a Converter with the built-in defaults.
func New() *Converter {
	return converter.NewDefault()
}

// NewWithConfig creates a Converter from a layered configuration.
func NewWithConfig(cfg Config) *Converter {
	return converter.New(cfg)
}

// LoadConfig reads a YAML configuration file layered over the defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// NewExtractor creates an NFe business data extractor.
func NewExtractor() *Extractor {
	return nfe.NewExtractor()
}
