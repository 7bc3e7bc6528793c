package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"GAMIFIER_API_URL", "GAMIFIER_API_TIMEOUT", "GAMIFIER_API_RATE_LIMIT",
	"GAMIFIER_STORAGE_PATH",
	"GAMIFIER_AUDIO_ENABLED", "GAMIFIER_AUDIO_VOLUME", "GAMIFIER_AUDIO_SAMPLE_RATE", "GAMIFIER_AUDIO_OUTPUT",
	"GAMIFIER_THEME", "GAMIFIER_THEME_SOUNDS", "GAMIFIER_THEME_ANIMATIONS", "GAMIFIER_THEME_EFFECTS", "GAMIFIER_APP_NAME",
	"LOG_LEVEL", "LOG_DEV", "GAMIFIER_METRICS_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RateLimit)

	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.3, cfg.Audio.Volume)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)

	assert.Equal(t, "starfleet", cfg.Theme.Name)
	assert.True(t, cfg.Theme.EnableSounds)
	assert.Equal(t, "Starfleet Gamifier", cfg.Theme.AppName)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.Path)
}

func TestCorporate(t *testing.T) {
	cfg := Corporate()

	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.2, cfg.Audio.Volume)
	assert.Equal(t, "corporate", cfg.Theme.Name)
	assert.False(t, cfg.Theme.EnableSounds)
	assert.True(t, cfg.Theme.EnableAnimations)
	assert.False(t, cfg.Theme.EnableEffects)
	assert.Equal(t, "Corporate Gamifier", cfg.Theme.AppName)
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t)

	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.Equal(t, Default().API, cfg.API)
	assert.Equal(t, Default().Theme, cfg.Theme)
	assert.Equal(t, DefaultStoragePath(), cfg.Storage.Path)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	clearEnv(t)

	envVars := map[string]string{
		"GAMIFIER_API_URL":        "https://gamifier.example.com/api",
		"GAMIFIER_API_TIMEOUT":    "5s",
		"GAMIFIER_API_RATE_LIMIT": "2.5",
		"GAMIFIER_STORAGE_PATH":   "/tmp/gamifier.json",
		"GAMIFIER_AUDIO_ENABLED":  "false",
		"GAMIFIER_AUDIO_VOLUME":   "0.2",
		"GAMIFIER_THEME":          "corporate",
		"GAMIFIER_THEME_SOUNDS":   "false",
		"GAMIFIER_APP_NAME":       "Corporate Gamifier",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"GAMIFIER_METRICS_FILE":   "/tmp/gamifier.prom",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://gamifier.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.5, cfg.API.RateLimit)
	assert.Equal(t, "/tmp/gamifier.json", cfg.Storage.Path)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.2, cfg.Audio.Volume)
	assert.Equal(t, "corporate", cfg.Theme.Name)
	assert.False(t, cfg.Theme.EnableSounds)
	assert.True(t, cfg.Theme.EnableAnimations)
	assert.Equal(t, "Corporate Gamifier", cfg.Theme.AppName)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/tmp/gamifier.prom", cfg.Metrics.File)
}

func TestLoadInvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAMIFIER_AUDIO_VOLUME", "loud")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 0.3, cfg.Audio.Volume)
}

func TestThemeConfig(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		effects   string
		wantTheme string
		wantFX    bool
	}{
		{name: "default values", wantTheme: "starfleet", wantFX: true},
		{name: "corporate theme", theme: "corporate", wantTheme: "corporate", wantFX: true},
		{name: "effects off", effects: "false", wantTheme: "starfleet", wantFX: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.theme != "" {
				t.Setenv("GAMIFIER_THEME", tt.theme)
			}
			if tt.effects != "" {
				t.Setenv("GAMIFIER_THEME_EFFECTS", tt.effects)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantTheme, cfg.Theme.Name)
			assert.Equal(t, tt.wantFX, cfg.Theme.EnableEffects)
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAMIFIER_API_URL", "https://env.example.com/api")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "gamifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://file.example.com/api
  timeout: 5s
audio:
  volume: 0.1
theme:
  name: corporate
  enable_sounds: false
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0.1, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Enabled, "absent keys keep their defaults")
	assert.Equal(t, "corporate", cfg.Theme.Name)
	assert.False(t, cfg.Theme.EnableSounds)
	assert.Equal(t, "warn", cfg.Logging.Level, "absent keys keep the environment")
	assert.Equal(t, DefaultStoragePath(), cfg.Storage.Path)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestResolveCorporate(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAMIFIER_AUDIO_VOLUME", "0.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Resolve(Sources{Corporate: true})
	require.NoError(t, err)

	assert.Equal(t, "corporate", cfg.Theme.Name)
	assert.False(t, cfg.Theme.EnableSounds)
	assert.False(t, cfg.Theme.EnableEffects)
	assert.Equal(t, "Corporate Gamifier", cfg.Theme.AppName)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.Volume, "the environment wins over corporate defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestResolveCorporateWithFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gamifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://file.example.com/api
theme:
  enable_effects: true
`), 0o644))

	cfg, err := Resolve(Sources{Corporate: true, File: path})
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "corporate", cfg.Theme.Name)
	assert.True(t, cfg.Theme.EnableEffects, "the file wins over corporate defaults")
	assert.False(t, cfg.Audio.Enabled)
}
