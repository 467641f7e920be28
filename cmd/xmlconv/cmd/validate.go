package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rezonia/xmlconv/internal/fileio"
	"github.com/rezonia/xmlconv/internal/validate"
)

var nfeCheck bool

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate XML files",
	Long: `Validate one or more XML files for well-formedness.

With --nfe the files are additionally checked against the expected NFe
document shape: root element, fiscal namespace, required sections and
the 44-digit access key.

Examples:
  xmlconv validate document.xml
  xmlconv validate *.xml --nfe
  xmlconv validate invoices/ -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&nfeCheck, "nfe", false, "Check NFe document structure")
}

// FileValidation holds the result of validating a single file
type FileValidation struct {
	File     string              `json:"file"`
	Valid    bool                `json:"valid"`
	Errors   []string            `json:"errors,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
	NFe      *validate.NFeReport `json:"nfe,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	validator := validate.New()
	results := make([]*FileValidation, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(validator, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("%s %s: VALID\n", color.GreenString("✓"), r.File)
			} else {
				fmt.Printf("%s %s: INVALID\n", color.RedString("✗"), r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  %s %s\n", color.YellowString("⚠"), w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(validator *validate.Validator, filePath string) *FileValidation {
	result := &FileValidation{
		File:  filePath,
		Valid: true,
	}

	if err := validator.CheckFile(filePath); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if !nfeCheck {
		return result
	}

	content, err := fileio.ReadText(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	report := validate.NFeStructure(content)
	result.NFe = &report

	if !report.IsNFe {
		result.Valid = false
		result.Errors = append(result.Errors, "not an NFe document")
		return result
	}
	if !report.CorrectNamespace {
		result.Warnings = append(result.Warnings, "missing NFe namespace")
	}
	if !report.HasKey {
		result.Warnings = append(result.Warnings, "missing or malformed access key")
	}
	for _, missing := range report.MissingElements {
		result.Warnings = append(result.Warnings, fmt.Sprintf("missing element: %s", missing))
	}

	return result
}
