package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAmountColumn is the column that gets numeric normalisation when the
// config does not name one.
const DefaultAmountColumn = "Amount"

// Config is the in-memory representation of ~/.tagsheet/tagsheet.yaml.
type Config struct {
	AmountColumn     string   `yaml:"amount_column"`
	BuiltinTags      []string `yaml:"builtin_tags,omitempty"`
	ExportDir        string   `yaml:"export_dir,omitempty"`
	OverwriteExports bool     `yaml:"overwrite_exports,omitempty"`
	DecodeWorkers    int      `yaml:"decode_workers,omitempty"`
}

// Dir returns the absolute path to ~/.tagsheet/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tagsheet"), nil
}

// Path returns the absolute path to ~/.tagsheet/tagsheet.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tagsheet.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written on first tagsheet init and used
// whenever no config file exists.
func DefaultConfig() *Config {
	return &Config{
		AmountColumn:  DefaultAmountColumn,
		BuiltinTags:   []string{"Business", "Personal", "Important"},
		ExportDir:     ".",
		DecodeWorkers: 4,
	}
}

// Load reads and parses the config at path. An empty path means the default
// location. A missing file is not an error: defaults are returned.
// Environment overrides (see ApplyEnv) are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	cfg.ExportDir, err = ExpandPath(cfg.ExportDir)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays TAGSHEET_* values from the environment and ~/.tagsheet/.env.
func (c *Config) ApplyEnv() error {
	if v, err := GetConfigValue("TAGSHEET_AMOUNT_COLUMN"); err != nil {
		return err
	} else if v != "" {
		c.AmountColumn = v
	}
	if v, err := GetConfigValue("TAGSHEET_EXPORT_DIR"); err != nil {
		return err
	} else if v != "" {
		c.ExportDir = v
	}
	return nil
}

func (c *Config) normalize() {
	c.AmountColumn = strings.TrimSpace(c.AmountColumn)
	if c.AmountColumn == "" {
		c.AmountColumn = DefaultAmountColumn
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.DecodeWorkers <= 0 {
		c.DecodeWorkers = 4
	}
}

// Save marshals cfg and writes it to path (the default location when empty).
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
