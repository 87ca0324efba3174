package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/db"
	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
	"github.com/bonfie-erp/schemactl/internal/ui"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

var applyCmd = &cobra.Command{
	Use:   "apply <script>",
	Short: "Run a composed schema script against PostgreSQL",
	Long: `Apply executes a composed script (normally COMPLETE_SCHEMA.sql) against the
database named in the connection string, as a single request.

Server NOTICE messages are printed as they arrive. The composed script sets
client_min_messages to warning, so its closing banner is normally silent.

Before running, you are asked to type the database name. Use --yes in
scripts and CI; without it a non-interactive run is refused (exit code 12).

Connection lookup order:
  1. --connection
  2. $SCHEMACTL_DATABASE_URL
  3. $DATABASE_URL (a .env file in the working directory is loaded)
  4. database.url in schemactl.yaml

Examples:
  schemactl apply COMPLETE_SCHEMA.sql --connection postgresql://postgres@localhost/bonfie
  DATABASE_URL=postgresql://... schemactl apply COMPLETE_SCHEMA.sql --yes`,
	Args: RequireScriptPath,
	RunE: runApply,
}

type applyFlagValues struct {
	connection string
	yes        bool
	timeout    time.Duration
}

var applyFlags = applyFlagValues{timeout: schemactl.DefaultApplyTimeout}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applyFlags.connection, "connection", "",
		"PostgreSQL connection string (URI or keyword/value format)\n"+
			"Example: postgresql://user@localhost:5432/bonfie")
	applyCmd.Flags().BoolVarP(&applyFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")
	applyCmd.Flags().DurationVar(&applyFlags.timeout, "timeout", schemactl.DefaultApplyTimeout,
		"Upper bound for the whole run, including connection retries\n"+
			"Examples: 30s, 5m, 1h")
}

func runApply(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	logger := newLogger(cmd)

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	connStr, err := resolveConnection(applyFlags.connection, cfg, logger)
	if err != nil {
		return err
	}
	target, err := db.ParseTarget(connStr)
	if err != nil {
		return err
	}
	if applyFlags.timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s: %w", applyFlags.timeout, schemactl.ErrInvalidConfig)
	}

	script, err := filesystem.ReadText(filesystem.NewOSFileSystem(), scriptPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), applyFlags.timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\n[INTERRUPT] Received interrupt signal, cancelling apply...")
			cancel()
		case <-ctx.Done():
		}
	}()

	approver, err := ui.SelectApprover(applyFlags.yes, ui.DetectMode())
	if err != nil {
		return err
	}
	approved, err := approver.RequestApproval(ctx, target.Database)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("apply to %s cancelled: %w", target.Database, schemactl.ErrApprovalDenied)
	}

	pool, err := db.NewConnector(connStr, logger).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger.Verbose("Executing %s (%d bytes) on %s", scriptPath, len(script), target)
	result, err := db.ApplyScript(ctx, pool, string(script))
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), ui.Success(fmt.Sprintf("Applied %s to %s in %s",
		scriptPath, target.Database, result.Duration.Round(time.Millisecond))))
	return nil
}
