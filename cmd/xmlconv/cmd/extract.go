package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/nfe"
	"github.com/rezonia/xmlconv/internal/value"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract business data from an NFe document",
	Long: `Extract the main business fields from a Brazilian NFe fiscal document.

The output includes issuer and recipient identification (with formatted
CNPJ/CPF), totals as currency strings, line items and the authorization
protocol. Files that are valid XML but not NFe documents are rejected.

Examples:
  xmlconv extract nota.xml
  xmlconv extract nota.xml -o nota-info.json
  xmlconv extract nota.xml -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	file := args[0]
	conv := newConverter()
	extractor := nfe.NewExtractor()

	result, err := conv.ConvertFile(file, "")
	if err != nil {
		return err
	}

	info, found := extractor.Extract(result)
	if !found {
		return fmt.Errorf("%s is not an NFe document", file)
	}

	if outputFormat == "table" {
		return printExtractTable(info)
	}

	data, err := conv.Serialize(info)
	if err != nil {
		return err
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", extractOutput, err)
		}
		fmt.Printf("Extracted %s -> %s\n", file, extractOutput)
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}

func printExtractTable(info *value.Map) error {
	summary := nfe.Summarize(info)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	summary.Range(func(key string, v any) bool {
		fmt.Fprintf(tw, "%s\t%v\n", key, v)
		return true
	})
	return tw.Flush()
}
