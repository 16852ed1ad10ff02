// Package config handles the kidbank.yaml application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the data directory.
const FileName = "kidbank.yaml"

// EnvDataDir overrides the data directory when set.
const EnvDataDir = "KIDBANK_DATA_DIR"

// Config represents the top-level kidbank.yaml configuration.
type Config struct {
	Family  string        `yaml:"family"`
	Goals   GoalsConfig   `yaml:"goals"`
	Control ControlConfig `yaml:"control"`
	Git     GitConfig     `yaml:"git"`
}

// GoalsConfig tunes goal projections.
type GoalsConfig struct {
	HorizonDays int `yaml:"horizon_days"`
}

// ControlConfig holds the parental access challenge.
type ControlConfig struct {
	Answer string `yaml:"answer"`
}

// GitConfig controls the versioning commits.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads kidbank.yaml from the data directory. A missing file is
// not an error; defaults apply.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to kidbank.yaml in the data directory.
func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new family.
func Default() *Config {
	return &Config{
		Goals: GoalsConfig{
			HorizonDays: 365,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "KidBank",
			AuthorEmail: "kidbank@localhost",
		},
	}
}

// DataDir resolves the data directory: an explicit flag value wins,
// then the KIDBANK_DATA_DIR environment variable (a .env in the
// working directory is honored), then the fallback. The .env load is
// best effort; a missing file is normal.
func DataDir(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	_ = godotenv.Load()
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return fallback
}
