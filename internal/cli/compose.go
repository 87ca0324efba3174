package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/compose"
	"github.com/bonfie-erp/schemactl/internal/config"
	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
	"github.com/bonfie-erp/schemactl/internal/ui"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Build the complete schema script",
	Long: `Compose wraps the cleaned schema into a complete, self-contained script:

  PART 1  session settings and extensions (uuid-ossp, pgcrypto)
  PART 2  the schema file, verbatim
  PART 3  starter roles, classrooms and tutoring center settings
  PART 4  a NOTICE banner naming the administrator account to create

The initialization script is searched for a bootstrap section (between the
PART 2 and PART 3 markers, or failing that the known INSERT statements).
It is reported but only added to PART 3 with --splice-bootstrap.

Examples:
  schemactl compose
  schemactl compose --schema schema_final.sql --init init.sql --output COMPLETE_SCHEMA.sql
  SCHEMACTL_ADMIN_PASSWORD=... schemactl compose --admin-email owner@example.com`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

type composeFlagValues struct {
	schema, init, output      string
	spliceBootstrap           bool
	adminEmail, adminPassword string
	startMarker, endMarker    string
}

var composeFlags composeFlagValues

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().StringVar(&composeFlags.schema, "schema", "",
		"Structural schema file (overrides paths.schema_path)")
	composeCmd.Flags().StringVar(&composeFlags.init, "init", "",
		"Initialization script searched for a bootstrap section (overrides paths.init_path)")
	composeCmd.Flags().StringVarP(&composeFlags.output, "output", "o", "",
		"Destination file (overrides paths.complete_path)")
	composeCmd.Flags().BoolVar(&composeFlags.spliceBootstrap, "splice-bootstrap", false,
		"Append the extracted bootstrap section to PART 3")
	composeCmd.Flags().StringVar(&composeFlags.adminEmail, "admin-email", "",
		"Administrator email shown in the closing banner (default "+compose.DefaultAdminEmail+")")
	composeCmd.Flags().StringVar(&composeFlags.adminPassword, "admin-password", "",
		"Administrator password shown in the closing banner\n"+
			"Prefer $"+config.EnvAdminPassword+" to keep it out of shell history")
	composeCmd.Flags().StringVar(&composeFlags.startMarker, "start-marker", "",
		"Line that opens the bootstrap section (overrides markers.start)")
	composeCmd.Flags().StringVar(&composeFlags.endMarker, "end-marker", "",
		"Line that closes the bootstrap section (overrides markers.end)")
}

// buildComposeOptions merges flags over schemactl.yaml over the defaults.
func buildComposeOptions(cfg *config.ProjectConfig) (compose.Options, error) {
	schemaPath, err := resolvePath(composeFlags.schema, cfg.Paths.SchemaPath, "schema", "schema_path")
	if err != nil {
		return compose.Options{}, err
	}
	initPath, err := resolvePath(composeFlags.init, cfg.Paths.InitPath, "init", "init_path")
	if err != nil {
		return compose.Options{}, err
	}
	outputPath, err := resolvePath(composeFlags.output, cfg.Paths.CompletePath, "output", "complete_path")
	if err != nil {
		return compose.Options{}, err
	}

	admin := compose.DefaultAdmin()
	if cfg.Admin.Email != "" {
		admin.Email = cfg.Admin.Email
	}
	if cfg.Admin.Password != "" {
		admin.Password = cfg.Admin.Password
	}
	if composeFlags.adminEmail != "" {
		admin.Email = composeFlags.adminEmail
	}
	if composeFlags.adminPassword != "" {
		admin.Password = composeFlags.adminPassword
	}

	return compose.Options{
		SchemaPath:      schemaPath,
		InitPath:        initPath,
		OutputPath:      outputPath,
		Markers:         resolveMarkers(composeFlags.startMarker, composeFlags.endMarker, cfg),
		SpliceBootstrap: composeFlags.spliceBootstrap,
		Admin:           admin,
	}, nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := buildComposeOptions(cfg)
	if err != nil {
		return err
	}
	opts.Logger = newLogger(cmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := compose.File(ctx, filesystem.NewOSFileSystem(), opts)
	if err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Success("Comprehensive schema created: "+summary.OutputPath))
	fmt.Fprintln(out, "This file includes:")
	fmt.Fprintf(out, "  - Everything from %s (%d bytes)\n", opts.SchemaPath, summary.SchemaBytes)
	fmt.Fprintln(out, "  - Initial data (roles, classrooms, settings)")
	if summary.Spliced {
		fmt.Fprintf(out, "  - Bootstrap section from %s (%s, %d bytes)\n", opts.InitPath, summary.Strategy, summary.BootstrapBytes)
	}
	fmt.Fprintf(out, "  - Administrator notice for %s\n", opts.Admin.Email)
	fmt.Fprintf(out, "%s %s\n", ui.Label("Bootstrap:"), bootstrapStatus(summary))
	fmt.Fprintf(out, "%s %s\n", ui.Label("Output:"), ui.Muted(fmt.Sprintf("%s (%d bytes, sha256 %s)", summary.OutputPath, summary.OutputBytes, summary.Output.Short())))
	fmt.Fprintf(out, "%s %s\n", ui.Label("Generation:"), ui.Muted(summary.GenerationID.String()))
	return nil
}

func bootstrapStatus(s compose.Summary) string {
	switch {
	case s.BootstrapBytes == 0:
		return "none found"
	case s.Spliced:
		return fmt.Sprintf("%s, spliced", s.Strategy)
	default:
		return fmt.Sprintf("%s, %d bytes (not spliced)", s.Strategy, s.BootstrapBytes)
	}
}
