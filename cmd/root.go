// Package cmd provides command-line interface functionality for NaniTools.
// NaniTools converts dialogue workbooks into linear Naninovel scripts.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/hansbonini/nanitools/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	ConfigFile string
	Verbose    bool
	LogFile    string
}

var (
	opts      globalOptions
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the NaniTools application.
var rootCmd = &cobra.Command{
	Use:   "nanitools",
	Short: "Convert dialogue workbooks into Naninovel scripts",
	Long: `NaniTools - converts spreadsheet workbooks of dialogue rows into
linear Naninovel scripts (.nani).

Currently supports:
  - Dialogue sheets with speaker, dialogue and choice columns
  - A Character sheet mapping display names to ids and portraits
  - Inlining choice target sheets into the sheet that jumps to them

Examples:
  nanitools convert story.xlsx
  nanitools convert story.xlsx ./scripts/ --report report.yaml
  nanitools convert -v --config columns.yaml story.xlsx
  nanitools characters story.xlsx

Use 'nanitools [command] --help' for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.SetVerboseMode(opts.Verbose)
		if opts.LogFile != "" {
			closer, err := common.SetLogFile(opts.LogFile)
			if err != nil {
				return err
			}
			logCloser = closer
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration selected by --config
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// addGlobalFlags registers the flags shared by every command
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file (column names, reserved sheets, extension)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose output (show debug messages)")
	flags.StringVar(&opts.LogFile, "log-file", "", "Also write log output to this file (rotated at 10 MB)")
}

// init initializes the root command with flags and configuration settings.
func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	cobra.OnFinalize(func() {
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
	})
}
