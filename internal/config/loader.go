package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project-local configuration file name,
// searched in the working directory.
const DefaultConfigFile = ".porespy.yaml"

// ConfigFileName is the file name inside the XDG config directory.
const ConfigFileName = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal: it is when the path
// was given explicitly, and harmless when discovery came up empty.
var ErrConfigNotFound = errors.New("configuration file not found")

// Load reads a YAML configuration file. Fields the file does not set
// keep their defaults, so a partial file is a valid file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Discover locates the configuration file. An explicit path wins,
// then DefaultConfigFile in the working directory, then
// ConfigFileName in the XDG config directory. Returns "" when none
// exists.
func Discover(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	p := filepath.Join(XDGConfigDir(), ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
