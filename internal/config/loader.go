package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/cribdrag/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".cribdrag"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .cribdrag configuration file.
type File struct {
	// Fixture replaces the default fixture when any of its fields is set.
	Fixture model.Fixture `yaml:"fixture,omitempty"`

	// Dictionary is the word-list path.
	Dictionary string `yaml:"dictionary,omitempty"`

	// Strict enables key-length validation.
	Strict bool `yaml:"strict,omitempty"`

	// History enables the session history database.
	History bool `yaml:"history,omitempty"`

	// Concurrency overrides the drag concurrency.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Env holds settings read from the environment. Boolean settings can only
// switch features on.
type Env struct {
	Dictionary string `env:"CRIBDRAG_DICTIONARY"`
	DBDir      string `env:"CRIBDRAG_DB_DIR"`
	Strict     bool   `env:"CRIBDRAG_STRICT"`
	History    bool   `env:"CRIBDRAG_HISTORY"`
	Verbose    bool   `env:"CRIBDRAG_VERBOSE"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (*Env, error) {
	return loadEnv(env.Options{})
}

// loadEnv reads Env using opts, which tests use to supply a fixed environment.
func loadEnv(opts env.Options) (*Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return nil, err
	}
	return &e, nil
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .cribdrag in the current directory
// 3. Look for .cribdrag in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
