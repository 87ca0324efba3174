package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

func resetFlags(t *testing.T) {
	t.Helper()
	cleanFlags = cleanFlagValues{}
	composeFlags = composeFlagValues{}
	extractFlags = extractFlagValues{}
	applyFlags = applyFlagValues{timeout: schemactl.DefaultApplyTimeout}
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))
}

// runCLI executes the CLI in a fresh working directory.
func runCLI(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	resetFlags(t)
	t.Chdir(dir)
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
