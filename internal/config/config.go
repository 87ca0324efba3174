// Package config loads schemactl.yaml, the optional project file that
// replaces per-invocation path flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "schemactl.yaml"

// Environment overrides, applied after the file is read.
const (
	EnvAdminPassword = "SCHEMACTL_ADMIN_PASSWORD"
	EnvDatabaseURL   = "SCHEMACTL_DATABASE_URL"
)

// Default paths, relative to the project root.
const (
	DefaultInputPath    = "schema_clean.sql"
	DefaultOutputPath   = "schema_final.sql"
	DefaultSchemaPath   = "schema_final.sql"
	DefaultInitPath     = "supabase/migrations/INIT_NEW_DATABASE.sql"
	DefaultCompletePath = "COMPLETE_SCHEMA.sql"
)

type PathsConfig struct {
	// InputPath and OutputPath are the clean command's source and target.
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`

	// SchemaPath, InitPath and CompletePath drive compose.
	SchemaPath   string `yaml:"schema_path"`
	InitPath     string `yaml:"init_path"`
	CompletePath string `yaml:"complete_path"`
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type MarkersConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths"`
	Admin    AdminConfig    `yaml:"admin"`
	Markers  MarkersConfig  `yaml:"markers"`
	Database DatabaseConfig `yaml:"database"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			InputPath:    DefaultInputPath,
			OutputPath:   DefaultOutputPath,
			SchemaPath:   DefaultSchemaPath,
			InitPath:     DefaultInitPath,
			CompletePath: DefaultCompletePath,
		},
	}
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file. Keys absent from the file keep their
// Defaults value; environment overrides are applied last.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func (cfg *ProjectConfig) ApplyEnv() {
	if v := os.Getenv(EnvAdminPassword); v != "" {
		cfg.Admin.Password = v
	}
}
