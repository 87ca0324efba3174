package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/extract"
	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the bootstrap section of the initialization script",
	Long: `Extract prints the bootstrap section compose finds in the initialization
script, so it can be reviewed or spliced by hand.

The section is the text from the start marker up to (not including) the end
marker. Without both markers, every INSERT INTO public.roles, classrooms or
tutoring_center_settings statement is collected instead.
An end marker that appears before the start marker counts as missing, so
the statement scan is used.

The fragment goes to stdout; the strategy used goes to stderr. Finding
nothing is not an error.

Examples:
  schemactl extract
  schemactl extract --init init.sql > bootstrap.sql`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

type extractFlagValues struct {
	init                   string
	startMarker, endMarker string
}

var extractFlags extractFlagValues

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFlags.init, "init", "",
		"Initialization script (overrides paths.init_path)")
	extractCmd.Flags().StringVar(&extractFlags.startMarker, "start-marker", "",
		"Line that opens the bootstrap section (overrides markers.start)")
	extractCmd.Flags().StringVar(&extractFlags.endMarker, "end-marker", "",
		"Line that closes the bootstrap section (overrides markers.end)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	initPath, err := resolvePath(extractFlags.init, cfg.Paths.InitPath, "init", "init_path")
	if err != nil {
		return err
	}

	content, err := filesystem.ReadText(filesystem.NewOSFileSystem(), initPath)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	markers := resolveMarkers(extractFlags.startMarker, extractFlags.endMarker, cfg)
	result, strategy := extract.Bootstrap(string(content), markers, extract.DefaultNeedles)
	if !result.Found {
		logger.Warn("No bootstrap section found in %s", initPath)
		return nil
	}

	logger.Info("Strategy: %s (%d bytes at %d-%d of %s)",
		strategy, result.Span.Len(), result.Span.Start, result.Span.End, initPath)
	text := result.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
