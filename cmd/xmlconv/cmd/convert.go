package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/converter"
)

var (
	convertOutput  string
	convertIndent  int
	convertCompact bool
	convertASCII   bool
	keepNamespaces bool
	noAttributes   bool
	noTypes        bool
	convertBackup  bool
	convertStats   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an XML file to JSON",
	Long: `Convert a single XML file to JSON.

The result is written next to the input file as <name>.json unless
--output or --stdout is given. Legacy encodings (Latin-1, Windows-1252)
are decoded transparently.

Examples:
  xmlconv convert document.xml
  xmlconv convert document.xml -o result.json
  xmlconv convert document.xml --stdout --compact
  xmlconv convert nota.nfe --keep-namespaces --no-types`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var convertStdout bool

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default: input with .json extension)")
	convertCmd.Flags().BoolVar(&convertStdout, "stdout", false, "Write JSON to stdout instead of a file")
	convertCmd.Flags().IntVar(&convertIndent, "indent", -1, "JSON indentation in spaces")
	convertCmd.Flags().BoolVar(&convertCompact, "compact", false, "Compact JSON output (no indentation)")
	convertCmd.Flags().BoolVar(&convertASCII, "ascii", false, "Escape non-ASCII characters as \\uXXXX")
	convertCmd.Flags().BoolVar(&keepNamespaces, "keep-namespaces", false, "Keep namespace prefixes in element names")
	convertCmd.Flags().BoolVar(&noAttributes, "no-attributes", false, "Drop XML attributes from the output")
	convertCmd.Flags().BoolVar(&noTypes, "no-types", false, "Keep all values as strings")
	convertCmd.Flags().BoolVar(&convertBackup, "backup", false, "Copy the input to <name>.bak before converting")
	convertCmd.Flags().BoolVar(&convertStats, "stats", false, "Print conversion statistics to stderr")
}

func convertOptions() []converter.Option {
	var opts []converter.Option
	if keepNamespaces {
		opts = append(opts, converter.WithCleanNamespaces(false))
	}
	if noAttributes {
		opts = append(opts, converter.WithPreserveAttributes(false))
	}
	if noTypes {
		opts = append(opts, converter.WithTypeConversion(false))
	}
	if convertCompact {
		opts = append(opts, converter.WithIndent(0))
	} else if convertIndent >= 0 {
		opts = append(opts, converter.WithIndent(convertIndent))
	}
	if convertASCII {
		opts = append(opts, converter.WithEscapeASCII(true))
	}
	return opts
}

func runConvert(cmd *cobra.Command, args []string) error {
	file := args[0]
	opts := convertOptions()
	if convertBackup {
		b := true
		cfg.BackupOriginal = &b
	}
	conv := newConverter()
	if convertStats {
		defer printStats(conv)
	}

	if convertStdout {
		result, err := conv.ConvertFile(file, "", opts...)
		if err != nil {
			return err
		}
		data, err := conv.Serialize(result, opts...)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	output := convertOutput
	if output == "" {
		output = jsonSibling(file)
	}

	printVerbose("Converting %s -> %s\n", file, output)
	if _, err := conv.ConvertFile(file, output, opts...); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s\n", file, output)
	return nil
}

func printStats(conv *converter.Converter) {
	stats := conv.Stats()
	fmt.Fprintf(os.Stderr, "conversions: %d, failures: %d, validations: %d\n",
		stats.Conversions, stats.Failures, stats.Validator.Performed)
}
