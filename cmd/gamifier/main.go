package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/app"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Flags override the environment when set.
var (
	flagConfig    string
	flagAPIURL    string
	flagTimeout   time.Duration
	flagStorage   string
	flagTheme     string
	flagMute      bool
	flagVolume    float64
	flagAudioOut  string
	flagLogLevel  string
	flagDev       bool
	flagMetrics   string
	flagOrg       string
	flagCorporate bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gamifier",
		Short:         "Starfleet Gamifier terminal client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "YAML config file layered over the environment")
	flags.StringVar(&flagAPIURL, "api", "", "Backend base URL (env GAMIFIER_API_URL)")
	flags.DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (env GAMIFIER_API_TIMEOUT)")
	flags.StringVar(&flagStorage, "storage", "", "Path of the local key-value store")
	flags.StringVar(&flagTheme, "theme", "", "Default theme when none is saved")
	flags.BoolVar(&flagMute, "mute", false, "Disable audio cues")
	flags.Float64Var(&flagVolume, "volume", -1, "Audio volume between 0 and 1")
	flags.StringVar(&flagAudioOut, "audio-out", "", "Append rendered cues as raw s16le PCM to this file")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&flagDev, "dev", false, "Development logging")
	flags.StringVar(&flagMetrics, "metrics-file", "", "Write Prometheus metrics here on exit")
	flags.StringVar(&flagOrg, "org", "", "Organization ID")
	flags.BoolVar(&flagCorporate, "corporate", false, "Start from the corporate defaults")

	root.AddCommand(
		newStatusCmd(),
		newDashboardCmd(),
		newLeaderboardCmd(),
		newMissionsCmd(),
		newCaptureCmd(),
		newThemeCmd(),
		newCueCmd(),
		newImportCmd(),
		newLoginCmd(),
		newLogoutCmd(),
	)
	return root
}

// loadConfig layers flags over the environment over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(config.Sources{Corporate: flagCorporate, File: flagConfig})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = flagTimeout
	}
	if flagStorage != "" {
		cfg.Storage.Path = flagStorage
	}
	if flagTheme != "" {
		cfg.Theme.Name = flagTheme
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	if flagVolume >= 0 {
		cfg.Audio.Volume = flagVolume
	}
	if flagAudioOut != "" {
		cfg.Audio.Output = flagAudioOut
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagDev {
		cfg.Logging.Development = true
	}
	if flagMetrics != "" {
		cfg.Metrics.File = flagMetrics
	}
	return cfg, nil
}

// withApp builds the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, app.Options{Output: cmd.OutOrStdout(), OrganizationID: flagOrg})
	if err != nil {
		return err
	}

	stopLoading := a.Renderer.WatchLoading(cmd.ErrOrStderr(), a.API.Loading())
	runErr := fn(cmd.Context(), a)
	stopLoading()
	if closeErr := a.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}
