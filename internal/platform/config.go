package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no service address is configured.
const DefaultBaseURL = "http://localhost:8080"

// Config holds the runtime configuration shared by the CLI and library
// consumers. Values are resolved in order: defaults, config.yaml in the
// state directory, then INKPAD_* environment variables (a .env file is
// honored when present).
type Config struct {
	BaseURL  string `yaml:"base_url"`
	StateDir string `yaml:"state_dir"`
}

// DefaultStateDir returns the per-user state directory.
func DefaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "inkpad"), nil
}

// LoadConfig resolves the effective configuration.
func LoadConfig() (Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	stateDir, err := DefaultStateDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		BaseURL:  DefaultBaseURL,
		StateDir: stateDir,
	}

	if dir := os.Getenv("INKPAD_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}

	path := filepath.Join(cfg.StateDir, "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// Environment wins over the config file.
	if url := os.Getenv("INKPAD_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}
	if dir := os.Getenv("INKPAD_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}
	return cfg, nil
}
