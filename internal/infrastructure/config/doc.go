// Package config provides 12-factor configuration for the gamifier client.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - API: backend base URL, request timeout, client-side rate limit
//   - Storage: persistent key-value file (auth token, theme preference)
//   - Audio: cue defaults (enabled, volume) and PCM output
//   - Theme: built-in default theme and its feature flags
//   - Logging: log level and output format
//   - Metrics: optional Prometheus text-file dump
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	client := api.NewClient(api.Options{BaseURL: cfg.API.BaseURL})
//
// Environment Variables:
//   - GAMIFIER_API_URL, GAMIFIER_API_TIMEOUT, GAMIFIER_API_RATE_LIMIT
//   - GAMIFIER_STORAGE_PATH
//   - GAMIFIER_AUDIO_ENABLED, GAMIFIER_AUDIO_VOLUME, GAMIFIER_AUDIO_SAMPLE_RATE, GAMIFIER_AUDIO_OUTPUT
//   - GAMIFIER_THEME, GAMIFIER_THEME_SOUNDS, GAMIFIER_THEME_ANIMATIONS, GAMIFIER_THEME_EFFECTS, GAMIFIER_APP_NAME
//   - LOG_LEVEL, LOG_DEV
//   - GAMIFIER_METRICS_FILE
package config
