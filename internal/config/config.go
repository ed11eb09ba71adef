package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the YAML configuration file looked up in the project root
	FileName = ".i18nprune.config"
	// TOMLFileName is the TOML alternative, used when FileName is absent
	TOMLFileName = ".i18nprune.toml"
)

// ErrConfigExists is returned by WriteDefault when a config file is already present
var ErrConfigExists = errors.New(FileName + " already exists")

// Config represents the i18nprune configuration file
type Config struct {
	Src          string        `yaml:"src" toml:"src"`                   // Source directory to scan
	Translations string        `yaml:"translations" toml:"translations"` // Translation file or directory
	Include      []string      `yaml:"include" toml:"include"`           // Source globs relative to src
	Ignores      IgnoresConfig `yaml:"ignores" toml:"ignores"`

	path string
}

// IgnoresConfig contains ignore rules for the scan and the cleanup
type IgnoresConfig struct {
	Keys    []string `yaml:"keys" toml:"keys"`       // Keys or groups never removed (e.g., built at runtime)
	Folders []string `yaml:"folders" toml:"folders"` // Folders to skip when scanning sources
}

// Path returns the file the config was loaded from, or "" for the default config
func (c *Config) Path() string {
	return c.path
}

// LoadConfig loads .i18nprune.config (or .i18nprune.toml) from the specified directory.
// Relative src and translations paths are resolved against that directory.
func LoadConfig(fs afero.Fs, rootPath string) (*Config, error) {
	for _, name := range []string{FileName, TOMLFileName} {
		configPath := filepath.Join(rootPath, name)

		exists, err := afero.Exists(fs, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to check config file: %w", err)
		}
		if !exists {
			continue
		}

		data, err := afero.ReadFile(fs, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var cfg Config
		if name == TOMLFileName {
			err = toml.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		cfg.path = configPath
		cfg.Src = resolve(rootPath, cfg.Src)
		cfg.Translations = resolve(rootPath, cfg.Translations)
		return &cfg, nil
	}

	// No config file, return default config
	return &Config{}, nil
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// DefaultContent is written by WriteDefault
const DefaultContent = `# .i18nprune.config
# Configuration file for i18nprune

# Source directory to scan (auto-detected when empty)
# src: src

# Translation file, or a directory of translation files (auto-detected when empty)
# translations: src/locales

# Source files to scan, relative to src (default: **/*.{vue,ts,tsx})
include:
  # - "**/*.vue"
  # - "**/*.ts"

ignores:
  # Keys that are built at runtime and cannot be found by the scanner.
  # A group keeps all of its descendants.
  keys:
    # - menu.items
    # - errors

  # Folders to skip when scanning
  folders:
    # - generated
    # - src/legacy
`

// WriteDefault creates a default .i18nprune.config in dir and returns its path
func WriteDefault(fs afero.Fs, dir string) (string, error) {
	configPath := filepath.Join(dir, FileName)

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrConfigExists
	}

	if err := afero.WriteFile(fs, configPath, []byte(DefaultContent), 0644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", FileName, err)
	}
	return configPath, nil
}
