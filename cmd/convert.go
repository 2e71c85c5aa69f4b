// Package cmd provides command-line interface for workbook conversion.
// This file contains the convert command that turns a dialogue workbook
// into Naninovel script files.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hansbonini/nanitools/pkg"
	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/hansbonini/nanitools/pkg/workbook"
	"github.com/spf13/cobra"
)

// convertCmd converts a dialogue workbook into script files.
var convertCmd = &cobra.Command{
	Use:   "convert [workbook.xlsx] [output_directory]",
	Short: "Convert a dialogue workbook into Naninovel scripts",
	Long: `Convert a dialogue workbook into Naninovel scripts.

This command will:
- Build the character table from the Character sheet
- Compile every other sheet (except Stage) into script lines
- Inline sheets reached through choice jumps into the sheet that references them
- Write one .nani file per remaining sheet

When no workbook is given, the first .xlsx file in the current directory is used.
When no output directory is given, a folder named after the workbook is created next to it.

Examples:
  nanitools convert
  nanitools convert story.xlsx
  nanitools convert story.xlsx ./scripts/
  nanitools convert --report report.yaml story.xlsx`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reportFile, err := cmd.Flags().GetString("report")
		if err != nil {
			return fmt.Errorf("error getting report flag: %w", err)
		}

		inputFile, err := resolveWorkbook(args)
		if err != nil {
			return err
		}

		outputDir := pkg.DefaultOutputDir(inputFile)
		if len(args) > 1 {
			outputDir = args[1]
		}

		fmt.Printf("Processing workbook: %s\n", inputFile)
		fmt.Printf("Output directory: %s\n", outputDir)

		processor := pkg.NewConvertProcessor(cfg)
		result, err := processor.ConvertFile(inputFile, outputDir)
		if err != nil {
			return fmt.Errorf("failed to convert workbook: %w", err)
		}

		if reportFile != "" {
			if err := pkg.ExportReport(result, reportFile); err != nil {
				return err
			}
		}

		fmt.Println("Workbook converted successfully!")
		fmt.Printf("- Scripts written: %d\n", len(result.Written))
		for _, path := range result.Written {
			fmt.Printf("  %s\n", path)
		}
		if len(result.Merged) > 0 {
			fmt.Printf("- Sheets inlined: %d\n", len(result.Merged))
		}
		if result.DroppedRows > 0 {
			fmt.Printf("- Rows skipped with warnings: %d\n", result.DroppedRows)
		}
		if result.FailedWrites > 0 {
			fmt.Printf("- Files that could not be written: %d\n", result.FailedWrites)
		}

		if abs, err := filepath.Abs(outputDir); err == nil {
			fmt.Printf("Open the output folder manually: %s\n", abs)
		} else {
			common.LogWarn("%s: %v", common.ErrFailedToResolveOutputDir, err)
		}
		return nil
	},
}

// resolveWorkbook returns the workbook argument or discovers one in the working directory.
func resolveWorkbook(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", common.FormatError(common.ErrFailedToLocateWorkbook, err)
	}
	path, err := workbook.Locate(cwd)
	if err != nil {
		return "", err
	}
	common.LogInfo(common.InfoWorkbookFound, path)
	return path, nil
}

// init initializes the convert command with its flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("report", "r", "", "Write a YAML conversion report to this file")
}
