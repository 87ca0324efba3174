package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
	"github.com/bonfie-erp/schemactl/internal/normalize"
	"github.com/bonfie-erp/schemactl/internal/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Collapse runs of blank lines in a SQL file",
	Long: `Clean rewrites a SQL file so that every run of blank or whitespace-only
lines becomes a single empty line. Non-blank lines are copied unchanged.

The normalized SQL fingerprint (comments and whitespace ignored) is checked
before writing; the command fails with exit code 15 if it would differ.

Examples:
  # Clean using paths from schemactl.yaml (or schema_clean.sql -> schema_final.sql)
  schemactl clean

  # Explicit paths
  schemactl clean --input dump.sql --output dump.clean.sql`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

type cleanFlagValues struct {
	input, output string
}

var cleanFlags cleanFlagValues

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanFlags.input, "input", "i", "",
		"SQL file to clean (overrides paths.input_path)")
	cleanCmd.Flags().StringVarP(&cleanFlags.output, "output", "o", "",
		"Destination file (overrides paths.output_path); may equal --input")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	inputPath, err := resolvePath(cleanFlags.input, cfg.Paths.InputPath, "input", "input_path")
	if err != nil {
		return err
	}
	outputPath, err := resolvePath(cleanFlags.output, cfg.Paths.OutputPath, "output", "output_path")
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	result, err := normalize.File(filesystem.NewOSFileSystem(), logger, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Success("File cleaned successfully!"))
	fmt.Fprintf(out, "Original lines: %d\n", result.OriginalLines)
	fmt.Fprintf(out, "Cleaned lines: %d\n", result.CleanedLines)
	fmt.Fprintf(out, "Removed %d lines\n", result.Removed())
	fmt.Fprintf(out, "Output file: %s\n", outputPath)
	return nil
}
