package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bonfie-erp/schemactl/internal/config"
	"github.com/bonfie-erp/schemactl/internal/extract"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// Connection environment variables, in lookup order.
var connectionEnvVars = []string{config.EnvDatabaseURL, "DATABASE_URL"}

// loadProjectConfig loads godotenv and the project configuration.
// A missing ./schemactl.yaml yields the defaults; a missing --config file
// is an error.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	explicit, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.ProjectConfig
		err error
	)
	if explicit != "" {
		cfg, err = config.LoadFile(explicit)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicit != "" {
				return nil, fmt.Errorf("config file %s not found: %w", explicit, schemactl.ErrInvalidConfig)
			}
			cfg = config.Defaults()
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config: %v: %w", err, schemactl.ErrInvalidConfig)
	}
	return cfg, nil
}

// resolvePath returns the flag value if set, otherwise the config value.
func resolvePath(flagValue, cfgValue, flagName, configKey string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(cfgValue); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s path is not set (use --%s or paths.%s in schemactl.yaml): %w",
		flagName, flagName, configKey, schemactl.ErrInvalidConfig)
}

// resolveMarkers layers flag values over the config over the built-in markers.
func resolveMarkers(startFlag, endFlag string, cfg *config.ProjectConfig) extract.Markers {
	m := extract.DefaultMarkers()
	if cfg.Markers.Start != "" {
		m.Start = cfg.Markers.Start
	}
	if cfg.Markers.End != "" {
		m.End = cfg.Markers.End
	}
	if startFlag != "" {
		m.Start = startFlag
	}
	if endFlag != "" {
		m.End = endFlag
	}
	return m
}

// resolveConnection returns the connection string.
// Priority: --connection > $SCHEMACTL_DATABASE_URL > $DATABASE_URL > database.url.
func resolveConnection(flagValue string, cfg *config.ProjectConfig, logger schemactl.Logger) (string, error) {
	if flagValue != "" {
		logger.Verbose("Using connection from --connection")
		return flagValue, nil
	}
	for _, name := range connectionEnvVars {
		if v := os.Getenv(name); v != "" {
			logger.Verbose("Using connection from $%s", name)
			return v, nil
		}
	}
	if cfg != nil && cfg.Database.URL != "" {
		logger.Verbose("Using connection from schemactl.yaml")
		return cfg.Database.URL, nil
	}
	return "", fmt.Errorf(`no database connection configured

Provide one of:
  --connection postgresql://user@host:5432/dbname
  $%s or $DATABASE_URL
  database.url in schemactl.yaml: %w`, config.EnvDatabaseURL, schemactl.ErrInvalidConfig)
}
