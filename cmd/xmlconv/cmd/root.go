package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/config"
	"github.com/rezonia/xmlconv/internal/converter"
	"github.com/rezonia/xmlconv/internal/validate"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configFile   string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xmlconv",
	Short: "Convert XML documents to JSON",
	Long: `xmlconv is a CLI tool for converting XML documents to JSON.

Supports:
  - Generic XML to JSON conversion with namespace cleaning and type coercion
  - Brazilian fiscal documents (NFe, CTe, MDFe) with business data extraction
  - Batch conversion of whole directories
  - Legacy encodings (UTF-8, Latin-1, Windows-1252)

Examples:
  # Convert a single XML file
  xmlconv convert document.xml

  # Convert a whole directory
  xmlconv batch ./invoices

  # Extract business fields from an NFe
  xmlconv extract nota.xml

  # Validate fiscal documents
  xmlconv validate *.xml --nfe`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (YAML, env: XMLCONV_CONFIG)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if configFile == "" {
		configFile = os.Getenv("XMLCONV_CONFIG")
	}

	if configFile == "" {
		cfg = config.Defaults()
		return
	}

	loaded, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loaded
	printVerbose("Loaded config from %s\n", configFile)
}

func newConverter() *converter.Converter {
	return converter.New(cfg)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// collectFiles expands arguments into a flat list of convertible files.
// Arguments may be file paths, directories or glob patterns.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && validate.HasXMLExtension(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && validate.HasXMLExtension(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func jsonSibling(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".json"
}
