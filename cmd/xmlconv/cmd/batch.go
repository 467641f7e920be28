package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/converter"
)

var (
	batchPattern   string
	batchOutDir    string
	batchRecursive bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Convert all XML files in a directory",
	Long: `Convert every XML file in a directory to JSON.

Results are written into <directory>/converted unless --output-dir is
given. A file that fails to convert is reported and skipped; it never
aborts the rest of the batch.

Examples:
  xmlconv batch ./invoices
  xmlconv batch ./invoices --pattern "*.nfe" --output-dir ./json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchPattern, "pattern", "p", "*.xml", "Glob pattern for input files")
	batchCmd.Flags().StringVarP(&batchOutDir, "output-dir", "d", "", "Output directory (default: <directory>/converted)")
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "Walk subdirectories too")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	conv := newConverter()

	printVerbose("Converting %s (pattern %s)\n", dir, batchPattern)

	opts := convertOptions()
	if batchRecursive {
		opts = append(opts, converter.WithRecursive(true))
	}
	results, err := conv.ConvertBatch(dir, batchPattern, batchOutDir, opts...)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("No files matching %s in %s\n", batchPattern, dir)
		return nil
	}

	files := make([]string, 0, len(results))
	for file := range results {
		files = append(files, file)
	}
	sort.Strings(files)

	succeeded := 0
	for _, file := range files {
		if results[file] {
			succeeded++
			fmt.Printf("%s %s\n", color.GreenString("✓"), file)
		} else {
			fmt.Printf("%s %s\n", color.RedString("✗"), file)
		}
	}

	fmt.Printf("\nConverted %d/%d files\n", succeeded, len(files))
	if succeeded < len(files) {
		return fmt.Errorf("%d files failed to convert", len(files)-succeeded)
	}
	return nil
}
