package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/audio"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/gamifier"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/config"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/storage"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/theme"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/ui"
	"go.uber.org/zap"
)

// App wires the client core together.
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	Store    storage.Store
	Metrics  *monitoring.Metrics
	API      *api.Client
	Client   *gamifier.Client
	Theme    *theme.Service
	Audio    *audio.Service
	Status   *gamifier.StatusMonitor
	Console  *gamifier.Console
	Renderer *ui.Renderer
}

// Options overrides pieces of the wiring, mainly for tests.
type Options struct {
	// Logger replaces the logger built from the configuration.
	Logger *logging.Logger
	// Store replaces the file store at Config.Storage.Path.
	Store storage.Store
	// Scheduler replaces the wall-clock audio scheduler.
	Scheduler audio.Scheduler
	// AudioFactory replaces the backend chosen from Config.Audio.Output.
	AudioFactory audio.Factory
	// Output receives rendered views; defaults to stdout.
	Output io.Writer
	// OrganizationID scopes dashboard queries.
	OrganizationID string
}

// New builds every service from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	store := opts.Store
	if store == nil {
		store = storage.NewFileStore(cfg.Storage.Path)
	}

	metrics := monitoring.NewMetrics()

	apiClient := api.NewClient(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		Store:     store,
		Metrics:   metrics,
		Logger:    logger,
	})

	themeService := theme.NewService(theme.Options{
		Store: store,
		Default: theme.Config{
			Name:             theme.Name(cfg.Theme.Name),
			EnableSounds:     cfg.Theme.EnableSounds,
			EnableAnimations: cfg.Theme.EnableAnimations,
			EnableEffects:    cfg.Theme.EnableEffects,
			AppName:          cfg.Theme.AppName,
		},
		Logger:  logger,
		Metrics: metrics,
	})

	factory := opts.AudioFactory
	if factory == nil {
		factory = audioFactory(cfg.Audio)
	}
	audioService := audio.NewService(audio.Options{
		Enabled:   cfg.Audio.Enabled,
		Volume:    cfg.Audio.Volume,
		Factory:   factory,
		Scheduler: opts.Scheduler,
		Logger:    logger,
		Metrics:   metrics,
	})

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	client := gamifier.NewClient(apiClient)
	status := gamifier.NewStatusMonitor()

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Metrics: metrics,
		API:     apiClient,
		Client:  client,
		Theme:   themeService,
		Audio:   audioService,
		Status:  status,
		Console: gamifier.NewConsole(gamifier.ConsoleOptions{
			Client:         client,
			Audio:          audioService,
			Theme:          themeService,
			Status:         status,
			Logger:         logger,
			AudioEnabled:   cfg.Audio.Enabled,
			OrganizationID: opts.OrganizationID,
		}),
		Renderer: ui.NewRenderer(out, themeService),
	}

	logger.Debug("application wired",
		zap.String("api", apiClient.BaseURL()),
		zap.String("theme", string(themeService.CurrentThemeName())),
		zap.Bool("audio", audioService.IsEnabled()),
	)
	return a, nil
}

func audioFactory(cfg config.AudioConfig) audio.Factory {
	if cfg.Output == "" {
		return audio.NullFactory()
	}
	return audio.FileFactory(cfg.Output, cfg.SampleRate)
}

// Login stores the bearer token used by every later request.
func (a *App) Login(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := a.Store.Set(storage.AuthTokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	a.Logger.Info("token saved")
	return nil
}

// Logout forgets the bearer token.
func (a *App) Logout() error {
	if err := a.Store.Remove(storage.AuthTokenKey); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	a.Logger.Info("token removed")
	return nil
}

// Close releases the audio backend, dumps metrics if configured and flushes
// the logger.
func (a *App) Close() error {
	var errs []error

	a.Renderer.Close()
	a.Console.Close()

	if err := a.Audio.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close audio: %w", err))
	}
	if path := a.Config.Metrics.File; path != "" {
		if err := a.Metrics.WriteToFile(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	// Sync on stderr fails on some platforms; ignore it.
	_ = a.Logger.Sync()

	return errors.Join(errs...)
}
