package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireScriptPath validates that exactly one script path argument is provided.
func RequireScriptPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <script>

Usage: %s

Example:
  %s COMPLETE_SCHEMA.sql --connection postgresql://postgres@localhost/bonfie`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
