package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/app"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/audio"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/gamifier"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/theme"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

// cueGrace bounds how long a command waits for its feedback cue.
const cueGrace = 3 * time.Second

func drainCues(ctx context.Context, a *app.App) {
	ctx, cancel := context.WithTimeout(ctx, cueGrace)
	defer cancel()
	_ = a.Audio.Drain(ctx)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the backend connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				r := a.Renderer
				printf(cmd, "%s\n", r.Header())

				user, err := a.Console.Boot(ctx)
				printf(cmd, "API:    %s\n", a.API.BaseURL())
				printf(cmd, "Status: %s\n", r.Status(a.Status.Status()))
				if err == nil {
					printf(cmd, "User:   %s %s\n", user.Name, user.Surname)
				}
				drainCues(ctx, a)
				return err
			})
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show points, rank, active missions and the top of the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				printf(cmd, "%s  %s\n", a.Renderer.Header(), a.Renderer.Status(a.Status.Status()))
				view, err := a.Console.LoadDashboard(ctx)
				defer drainCues(ctx, a)
				if err != nil {
					printf(cmd, "%s\n", a.Renderer.Error(err))
					return err
				}
				printf(cmd, "%s\n", a.Renderer.Dashboard(view))
				return nil
			})
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var (
		month      string
		department string
		allTime    bool
		size       int
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the monthly, all-time or department leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				page := gamifier.PageRequest{Size: size}

				var (
					result gamifier.Page[gamifier.LeaderboardEntry]
					title  string
					err    error
				)
				switch {
				case department != "":
					period := gamifier.PeriodMonthly
					if allTime {
						period = gamifier.PeriodAllTime
					}
					title = fmt.Sprintf("%s (%s)", department, period)
					result, err = a.Client.DepartmentLeaderboard(ctx, gamifier.DepartmentQuery{
						OrganizationID: flagOrg,
						Department:     department,
						Period:         period,
						YearMonth:      month,
					}, page)
				case allTime:
					title = "All time"
					result, err = a.Client.AllTimeLeaderboard(ctx, flagOrg, page)
				default:
					title = "Monthly"
					if month != "" {
						title += " " + month
					}
					result, err = a.Client.MonthlyLeaderboard(ctx, flagOrg, month, page)
				}
				a.Status.Observe(err)
				if err != nil {
					printf(cmd, "%s\n", a.Renderer.Error(err))
					return err
				}
				printf(cmd, "%s\n", a.Renderer.Leaderboard(title, result.Content))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&department, "department", "", "Restrict to one department")
	cmd.Flags().BoolVar(&allTime, "all-time", false, "Rank by total points")
	cmd.Flags().IntVar(&size, "size", 0, "Page size")
	return cmd
}

func newMissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missions [user-id]",
		Short: "Show mission progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var (
					missions []gamifier.MissionProgressSummary
					err      error
				)
				if len(args) == 1 {
					missions, err = a.Client.UserMissionsProgress(ctx, args[0])
				} else {
					missions, err = a.Client.MissionsProgress(ctx)
				}
				a.Status.Observe(err)
				if err != nil {
					printf(cmd, "%s\n", a.Renderer.Error(err))
					return err
				}
				printf(cmd, "%s\n", a.Renderer.Missions(missions))
				return nil
			})
		},
	}
}

func newCaptureCmd() *cobra.Command {
	var (
		user     string
		date     string
		reporter string
		evidence string
	)
	cmd := &cobra.Command{
		Use:   "capture <action-type-id>",
		Short: "Log an action for points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if user == "" {
					me, err := a.Console.Boot(ctx)
					if err != nil {
						return err
					}
					user = me.UserID
				}
				if date == "" {
					date = time.Now().Format("2006-01-02")
				}
				action, err := a.Console.CaptureAction(ctx, gamifier.CaptureActionRequest{
					OrganizationID: flagOrg,
					UserID:         user,
					ActionTypeID:   args[0],
					Date:           date,
					ReporterType:   gamifier.ReporterType(strings.ToUpper(reporter)),
					ReporterID:     user,
					Evidence:       evidence,
				})
				defer drainCues(ctx, a)
				if err != nil {
					printf(cmd, "%s\n", a.Renderer.Error(err))
					return err
				}
				printf(cmd, "Captured action %s (%s)\n", action.ID, action.Status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User ID (default current user)")
	cmd.Flags().StringVar(&date, "date", "", "Action date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&reporter, "reporter", string(gamifier.ReporterSelf), "Reporter type: self, peer or manager")
	cmd.Flags().StringVar(&evidence, "evidence", "", "Supporting evidence")
	return cmd
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [name]",
		Short:     "Show or change the theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.Starfleet), string(theme.Corporate)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if len(args) == 1 {
					if _, err := theme.ParseName(args[0]); err != nil {
						return err
					}
					if a.Theme.SetTheme(args[0]) {
						a.Audio.PlayClick()
					}
				}
				current := a.Theme.CurrentTheme()
				printf(cmd, "%s\n", a.Renderer.Header())
				for _, name := range a.Theme.AvailableThemes() {
					marker := " "
					if name == current.Name {
						marker = "*"
					}
					printf(cmd, "%s %s\n", marker, name)
				}
				drainCues(ctx, a)
				return nil
			})
		},
	}
}

func newCueCmd() *cobra.Command {
	names := make([]string, 0, len(audio.Cues()))
	for _, cue := range audio.Cues() {
		names = append(names, string(cue))
	}
	return &cobra.Command{
		Use:       "cue <name>",
		Short:     "Play an audio cue (" + strings.Join(names, ", ") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cue, err := audio.ParseCue(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if !a.Audio.IsEnabled() {
					printf(cmd, "Audio is disabled\n")
					return nil
				}
				a.Audio.Play(cue)
				wait, cancel := context.WithTimeout(ctx, audio.SequenceDuration(cue)+time.Second)
				defer cancel()
				return a.Audio.Drain(wait)
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <actions|users> <file-or-glob>",
		Short: "Bulk import actions or users from CSV files",
		Long: `Bulk import actions or users from CSV files.

The second argument may be a glob such as 'exports/**/*.csv'; every match is
uploaded in turn.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind != "actions" && kind != "users" {
				return fmt.Errorf("unknown import kind %q (want actions or users)", kind)
			}
			if flagOrg == "" {
				return errors.New("--org is required for imports")
			}
			paths, err := importPaths(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				defer drainCues(ctx, a)
				failed := false
				for _, path := range paths {
					file, err := api.ReadFile(path)
					if err != nil {
						return err
					}
					var result gamifier.ImportResult
					if kind == "actions" {
						result, err = a.Client.ImportActions(ctx, flagOrg, file)
					} else {
						result, err = a.Client.ImportUsers(ctx, flagOrg, file)
					}
					a.Status.Observe(err)
					if err != nil {
						a.Audio.PlayError()
						printf(cmd, "%s\n%s\n", path, a.Renderer.Error(err))
						return err
					}
					failed = failed || result.FailedImports > 0
					printf(cmd, "%s\n%s\n", path, a.Renderer.ImportResult(result))
				}
				if failed {
					a.Audio.PlayAlert()
				} else {
					a.Audio.PlaySuccess()
				}
				return nil
			})
		},
	}
}

// importPaths expands a glob pattern, or returns a plain path unchanged.
func importPaths(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob failed: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	return matches, nil
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Save the bearer token sent with every request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				if err := a.Login(args[0]); err != nil {
					return err
				}
				printf(cmd, "Token saved\n")
				return nil
			})
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				if err := a.Logout(); err != nil {
					return err
				}
				printf(cmd, "Token removed\n")
				return nil
			})
		},
	}
}
