package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/fileio"
	"github.com/rezonia/xmlconv/internal/validate"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about XML files",
	Long: `Display information about XML files without converting them.

Shows:
  - File metadata (size, modification time)
  - Declared encoding
  - Root element, namespace and element counts

Examples:
  xmlconv info document.xml
  xmlconv info *.xml -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// FileReport combines file metadata with the document structure report
type FileReport struct {
	fileio.Info
	Encoding  string                   `json:"encoding,omitempty"`
	Structure validate.StructureReport `json:"structure"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	if outputFormat == "json" {
		reports := make([]*FileReport, 0, len(files))
		for _, file := range files {
			report, err := fileReport(file)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}

	for _, file := range files {
		printFileInfo(file)
		fmt.Println()
	}
	return nil
}

func fileReport(filePath string) (*FileReport, error) {
	info, err := fileio.Stat(filePath)
	if err != nil {
		return nil, err
	}

	report := &FileReport{
		Info:     *info,
		Encoding: validate.SniffEncoding(filePath),
	}

	content, err := fileio.ReadText(filePath)
	if err != nil {
		report.Structure.Error = err.Error()
		return report, nil
	}

	report.Structure = validate.Structure(content, nil)
	return report, nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	report, err := fileReport(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %s\n", fileio.HumanSize(report.Size))
	fmt.Printf("  Modified: %s\n", report.Modified.Format("2006-01-02 15:04:05"))
	if report.Encoding != "" {
		fmt.Printf("  Encoding: %s\n", report.Encoding)
	}

	s := report.Structure
	if s.Error != "" {
		fmt.Printf("  Error: %s\n", s.Error)
		return
	}

	fmt.Printf("  Root: %s\n", s.RootElement)
	if s.Namespace != "" {
		fmt.Printf("  Namespace: %s\n", s.Namespace)
	}
	fmt.Printf("  Elements: %d\n", s.TotalElements)
	fmt.Printf("  Attributes: %d\n", s.AttributesCount)
}
