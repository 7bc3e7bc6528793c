package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Audio   AudioConfig   `yaml:"audio"`
	Theme   ThemeConfig   `yaml:"theme"`
	Logging LogConfig     `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string        `envconfig:"GAMIFIER_API_URL" default:"http://localhost:8080/api" yaml:"base_url"`
	Timeout   time.Duration `envconfig:"GAMIFIER_API_TIMEOUT" default:"30s" yaml:"timeout"`
	RateLimit float64       `envconfig:"GAMIFIER_API_RATE_LIMIT" default:"0" yaml:"rate_limit"`
}

// StorageConfig holds the location of the persistent key-value file.
type StorageConfig struct {
	Path string `envconfig:"GAMIFIER_STORAGE_PATH" yaml:"path"`
}

// AudioConfig holds audio cue defaults.
type AudioConfig struct {
	Enabled    bool    `envconfig:"GAMIFIER_AUDIO_ENABLED" default:"true" yaml:"enabled"`
	Volume     float64 `envconfig:"GAMIFIER_AUDIO_VOLUME" default:"0.3" yaml:"volume"`
	SampleRate int     `envconfig:"GAMIFIER_AUDIO_SAMPLE_RATE" default:"44100" yaml:"sample_rate"`
	Output     string  `envconfig:"GAMIFIER_AUDIO_OUTPUT" yaml:"output"`
}

// ThemeConfig holds the built-in default theme.
type ThemeConfig struct {
	Name             string `envconfig:"GAMIFIER_THEME" default:"starfleet" yaml:"name"`
	EnableSounds     bool   `envconfig:"GAMIFIER_THEME_SOUNDS" default:"true" yaml:"enable_sounds"`
	EnableAnimations bool   `envconfig:"GAMIFIER_THEME_ANIMATIONS" default:"true" yaml:"enable_animations"`
	EnableEffects    bool   `envconfig:"GAMIFIER_THEME_EFFECTS" default:"true" yaml:"enable_effects"`
	AppName          string `envconfig:"GAMIFIER_APP_NAME" default:"Starfleet Gamifier" yaml:"app_name"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// MetricsConfig controls the metrics text-file dump.
type MetricsConfig struct {
	File string `envconfig:"GAMIFIER_METRICS_FILE" yaml:"file"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath()
	}
	return &cfg, nil
}

// LoadFile loads the environment, then overlays the YAML file at path. Keys
// present in the file win over the environment; absent keys keep their
// environment or default value.
func LoadFile(path string) (*Config, error) {
	return Resolve(Sources{File: path})
}

// Sources selects the layers Resolve stacks on the built-in defaults.
type Sources struct {
	// Corporate swaps the built-in defaults for Corporate's.
	Corporate bool
	// File is a YAML overlay; empty means none.
	File string
}

// Resolve builds the configuration as defaults < environment < file.
func Resolve(src Sources) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if src.Corporate {
		applyCorporate(cfg)
	}
	if src.File == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(src.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", src.File, err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath()
	}
	return cfg, nil
}

// applyCorporate replaces the defaults Corporate changes, leaving values that
// came from the environment alone.
func applyCorporate(cfg *Config) {
	corp := Corporate()
	unset := func(key string) bool {
		_, ok := os.LookupEnv(key)
		return !ok
	}
	if unset("GAMIFIER_AUDIO_ENABLED") {
		cfg.Audio.Enabled = corp.Audio.Enabled
	}
	if unset("GAMIFIER_AUDIO_VOLUME") {
		cfg.Audio.Volume = corp.Audio.Volume
	}
	if unset("GAMIFIER_THEME") {
		cfg.Theme.Name = corp.Theme.Name
	}
	if unset("GAMIFIER_THEME_SOUNDS") {
		cfg.Theme.EnableSounds = corp.Theme.EnableSounds
	}
	if unset("GAMIFIER_THEME_ANIMATIONS") {
		cfg.Theme.EnableAnimations = corp.Theme.EnableAnimations
	}
	if unset("GAMIFIER_THEME_EFFECTS") {
		cfg.Theme.EnableEffects = corp.Theme.EnableEffects
	}
	if unset("GAMIFIER_APP_NAME") {
		cfg.Theme.AppName = corp.Theme.AppName
	}
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath(),
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.3,
			SampleRate: 44100,
		},
		Theme: ThemeConfig{
			Name:             "starfleet",
			EnableSounds:     true,
			EnableAnimations: true,
			EnableEffects:    true,
			AppName:          "Starfleet Gamifier",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Corporate returns the defaults used by corporate deployments: quiet,
// no LCARS effects.
func Corporate() *Config {
	cfg := Default()
	cfg.Audio.Enabled = false
	cfg.Audio.Volume = 0.2
	cfg.Theme = ThemeConfig{
		Name:             "corporate",
		EnableSounds:     false,
		EnableAnimations: true,
		EnableEffects:    false,
		AppName:          "Corporate Gamifier",
	}
	return cfg
}

// DefaultStoragePath returns ~/.gamifier/storage.json, or a path in the
// working directory when no home directory is available.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".gamifier", "storage.json")
	}
	return filepath.Join(home, ".gamifier", "storage.json")
}
