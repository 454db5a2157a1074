package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".neocc"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// XDGConfigFile is the file name looked up in the XDG config directory.
const XDGConfigFile = "config.yaml"

// LoadConfigFile decodes a YAML config file. Unknown keys are rejected so
// that a misspelt setting does not silently keep its default. An empty
// file is valid and changes nothing.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // the path comes from the user on purpose
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cf, nil
}

// configCandidates lists the implicit config locations, most specific
// first.
func configCandidates() []string {
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, DefaultConfigFile))
	}
	return append(out, filepath.Join(XDGConfigDir(), XDGConfigFile))
}

// FindConfigFile returns configPath when it exists. Without an explicit
// path it returns the first existing file among ./.neocc, ~/.neocc and
// $XDG_CONFIG_HOME/neocc/config.yaml. It returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if fileExists(configPath) {
			return configPath
		}
		return ""
	}
	for _, p := range configCandidates() {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyEnv overrides settings from NEOCC_* environment variables. Unset
// variables leave the current values untouched.
func ApplyEnv(c *Config) error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the config
// file (explicit path or the first one found), then the environment.
// An explicit path that does not exist is an error.
func Load(explicitPath string) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = explicitPath

	path := FindConfigFile(explicitPath)
	switch {
	case path != "":
		cf, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cf.Apply(cfg)
	case explicitPath != "":
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, explicitPath)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
