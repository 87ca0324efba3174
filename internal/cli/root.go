package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/logging"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

var rootCmd = &cobra.Command{
	Use:   "schemactl",
	Short: "Prepare and apply the Bonfie Art ERP database schema",
	Long: `schemactl prepares the SQL files of the Bonfie Art ERP schema project.

  clean     collapse runs of blank lines in a schema dump
  compose   wrap the cleaned schema into a complete, self-contained script
  extract   show the bootstrap section found in the initialization script
  apply     run a composed script against PostgreSQL

Paths default to the project layout and can be set in schemactl.yaml.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing path
  11 - Database connection failed
  12 - User denied apply approval
  13 - SQL execution failed
  14 - Input file not found
  15 - Normalization altered SQL content
  16 - Input file is not valid UTF-8`,
	SilenceUsage: true,
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "--version" {
		printVersionInfo(stdout, stderr)
		return schemactl.ExitSuccess
	}
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return schemactl.ExitCodeForError(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a config file (default: ./schemactl.yaml if present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func newLogger(cmd *cobra.Command) schemactl.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}
