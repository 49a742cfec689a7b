package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FreshInstallUsesDefaults(t *testing.T) {
	t.Setenv("NEIGHBOR_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NEIGHBOR_CONFIG_DIR", dir)
	yaml := "theme: dark\ndefault_city_id: 3\ndefault_city_name: Aba\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 3, cfg.DefaultCityID)
	assert.Equal(t, "Aba", cfg.DefaultCityName)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NEIGHBOR_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: dark\n"), 0o644))
	t.Setenv("NEIGHBOR_THEME", "light")
	t.Setenv("NEIGHBOR_API_BASE_URL", "https://api.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NEIGHBOR_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("NEIGHBOR_CONFIG_DIR", t.TempDir())

	want := Default()
	want.Theme = "dark"
	want.RadiusKm = 25
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty base url", func(c *Config) { c.APIBaseURL = "" }, true},
		{"zero city", func(c *Config) { c.DefaultCityID = 0 }, true},
		{"negative radius", func(c *Config) { c.RadiusKm = -1 }, true},
		{"unknown theme", func(c *Config) { c.Theme = "solarized" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
