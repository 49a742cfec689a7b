// Package config loads user preferences for the neighbor client apps.
// Precedence: built-in defaults, then ~/.neighbor/config.yaml, then
// NEIGHBOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides, e.g. NEIGHBOR_API_BASE_URL.
const envPrefix = "neighbor"

// Config holds user preferences shared by the shopper app and the dashboard.
type Config struct {
	// APIBaseURL is the root of the Neighbor backend API.
	APIBaseURL string `yaml:"api_base_url" envconfig:"API_BASE_URL"`
	// Theme selects the color scheme: "light", "dark" or "auto".
	Theme string `yaml:"theme" envconfig:"THEME"`
	// DefaultCityID and DefaultCityName are the fallback search location used
	// when GPS is denied or unavailable.
	DefaultCityID   int    `yaml:"default_city_id" envconfig:"DEFAULT_CITY_ID"`
	DefaultCityName string `yaml:"default_city_name" envconfig:"DEFAULT_CITY_NAME"`
	// RadiusKm is the initial GPS search radius.
	RadiusKm float64 `yaml:"radius_km" envconfig:"RADIUS_KM"`
}

// Default returns the built-in configuration. The default city mirrors the
// app's launch market.
func Default() Config {
	return Config{
		APIBaseURL:      "http://localhost:8000",
		Theme:           "auto",
		DefaultCityID:   8,
		DefaultCityName: "Owerri",
		RadiusKm:        10,
	}
}

// Dir returns the config directory, honoring NEIGHBOR_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("NEIGHBOR_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".neighbor"), nil
}

// File returns the full path of the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration, applying the precedence chain. A missing file
// is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path, err := File()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fresh install
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration to disk, creating the directory if needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path, err := File()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations the apps cannot start with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api_base_url must not be empty")
	}
	if c.DefaultCityID <= 0 {
		return fmt.Errorf("default_city_id must be positive, got %d", c.DefaultCityID)
	}
	if c.RadiusKm <= 0 {
		return fmt.Errorf("radius_km must be positive, got %g", c.RadiusKm)
	}
	switch c.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("theme must be light, dark or auto, got %q", c.Theme)
	}
	return nil
}
