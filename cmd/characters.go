package cmd

import (
	"fmt"

	"github.com/hansbonini/nanitools/pkg"
	"github.com/spf13/cobra"
)

// charactersCmd prints the character table the converter would use.
var charactersCmd = &cobra.Command{
	Use:   "characters [workbook.xlsx]",
	Short: "Print the character table of a workbook as YAML",
	Long: `Print the character table of a workbook as YAML.

Shows every accepted row of the Character sheet with its display name,
id and whether show/hide directives are emitted for it.

Example:
  nanitools characters story.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		inputFile, err := resolveWorkbook(args)
		if err != nil {
			return err
		}

		registry, err := pkg.NewConvertProcessor(cfg).LoadCharacters(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load characters: %w", err)
		}
		return pkg.ExportCharacters(registry, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(charactersCmd)
}
