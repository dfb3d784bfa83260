// Package config loads the assistant configuration from a YAML file with
// sensible defaults and environment fallbacks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in config.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ProviderConfig configures the remote model client.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// AgentConfig configures the orchestration loop.
type AgentConfig struct {
	MaxIterations   int     `yaml:"maxIterations"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"maxOutputTokens"`

	// SilentOnCap returns an empty reply instead of an error when the
	// iteration cap is exhausted.
	SilentOnCap bool `yaml:"silentOnCap"`
}

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Config is the full assistant configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Agent    AgentConfig    `yaml:"agent"`
	Storage  StorageConfig  `yaml:"storage"`
}

// DefaultPath returns the default config file location, ~/.smartpad/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".smartpad", "config.yaml")
}

func defaults() *Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".smartpad")
	}
	return &Config{
		Agent: AgentConfig{
			MaxIterations:   5,
			Temperature:     0.7,
			MaxOutputTokens: 1024,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dataDir, "smartpad.db"),
		},
	}
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error: defaults plus environment apply. The API key
// falls back to GEMINI_API_KEY when the file leaves it empty.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Agent.MaxIterations < 1 {
		return fmt.Errorf("agent.maxIterations must be at least 1, got %d", c.Agent.MaxIterations)
	}
	return nil
}
