package gamifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/audio"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/theme"
	"go.uber.org/zap"
)

// DefaultPreviewSize is the number of leaderboard rows on the dashboard.
const DefaultPreviewSize = 5

// DashboardView is everything the dashboard screen shows.
type DashboardView struct {
	User           Dashboard
	ActiveMissions []MissionProgressSummary
	Leaderboard    []LeaderboardEntry
}

// ConsoleOptions wires a Console.
type ConsoleOptions struct {
	Client *Client
	Audio  *audio.Service
	Theme  *theme.Service
	Status *StatusMonitor
	Logger *logging.Logger
	// AudioEnabled is the user's own audio switch; cues play only when it
	// and the theme's sounds flag are both on.
	AudioEnabled bool
	// OrganizationID scopes the leaderboard preview.
	OrganizationID string
}

// Console glues the services together for the feature views: it loads data,
// tracks connection status and plays feedback cues.
type Console struct {
	client *Client
	audio  *audio.Service
	theme  *theme.Service
	status *StatusMonitor
	logger *zap.Logger
	orgID  string

	mu           sync.Mutex
	audioEnabled bool
	user         *Dashboard

	unsubscribe func()
}

// NewConsole creates a console and keeps the audio service in step with the
// theme.
func NewConsole(opts ConsoleOptions) *Console {
	status := opts.Status
	if status == nil {
		status = NewStatusMonitor()
	}
	c := &Console{
		client:       opts.Client,
		audio:        opts.Audio,
		theme:        opts.Theme,
		status:       status,
		logger:       opts.Logger.Component("console"),
		orgID:        opts.OrganizationID,
		audioEnabled: opts.AudioEnabled,
	}
	if c.theme != nil {
		c.unsubscribe = c.theme.Subscribe(func(change theme.Change) {
			c.syncAudio(change.Theme.EnableSounds)
		})
	} else {
		c.syncAudio(true)
	}
	return c
}

// Close stops following theme changes.
func (c *Console) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Status returns the connection status monitor.
func (c *Console) Status() *StatusMonitor {
	return c.status
}

// User returns the user loaded by Boot.
func (c *Console) User() (Dashboard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return Dashboard{}, false
	}
	return *c.user, true
}

func (c *Console) syncAudio(themeSounds bool) {
	if c.audio == nil {
		return
	}
	c.mu.Lock()
	enabled := c.audioEnabled && themeSounds
	c.mu.Unlock()
	c.audio.SetEnabled(enabled)
}

func (c *Console) themeSounds() bool {
	if c.theme == nil {
		return true
	}
	return c.theme.IsFeatureEnabled(theme.FeatureSounds)
}

// AudioEnabled reports whether cues currently play.
func (c *Console) AudioEnabled() bool {
	return c.audio != nil && c.audio.IsEnabled()
}

// SetAudioEnabled changes the user's audio switch.
func (c *Console) SetAudioEnabled(enabled bool) {
	c.mu.Lock()
	c.audioEnabled = enabled
	c.mu.Unlock()
	c.syncAudio(c.themeSounds())
}

// ToggleAudio flips the user's audio switch and confirms with a success cue
// when sound ends up on.
func (c *Console) ToggleAudio() bool {
	c.mu.Lock()
	enabled := !c.audioEnabled
	c.audioEnabled = enabled
	c.mu.Unlock()

	c.syncAudio(c.themeSounds())
	on := c.AudioEnabled()
	if on {
		c.play(audio.CueSuccess)
	}
	return on
}

// SwitchTheme alternates between the starfleet and corporate themes.
func (c *Console) SwitchTheme() theme.Name {
	if c.theme == nil {
		return ""
	}
	next := theme.Starfleet
	if c.theme.IsStarfleetTheme() {
		next = theme.Corporate
	}
	c.theme.SetTheme(string(next))
	c.play(audio.CueClick)
	return next
}

// Boot loads the current user and announces startup.
func (c *Console) Boot(ctx context.Context) (Dashboard, error) {
	user, err := c.client.CurrentUser(ctx)
	c.status.Observe(err)
	if err != nil {
		c.logger.Warn("failed to load current user", zap.Error(err))
		c.play(audio.CueError)
		return Dashboard{}, fmt.Errorf("failed to load current user: %w", err)
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	c.logger.Info("console ready", zap.String("user_id", user.UserID))
	c.play(audio.CueStartup)
	return user, nil
}

// LoadDashboard fetches the current user, active missions and the
// leaderboard preview. A failure plays the error cue and is returned; it
// never panics.
func (c *Console) LoadDashboard(ctx context.Context) (view *DashboardView, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dashboard failed: %v", r)
			view = nil
		}
		if err != nil {
			c.logger.Warn("failed to load dashboard data", zap.Error(err))
			c.play(audio.CueError)
			return
		}
		c.play(audio.CueSuccess)
	}()

	user, err := c.client.CurrentUser(ctx)
	c.status.Observe(err)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	missions, err := c.client.ActiveMissions(ctx)
	c.status.Observe(err)
	if err != nil {
		return nil, fmt.Errorf("failed to load active missions: %w", err)
	}
	preview, err := c.client.LeaderboardPreview(ctx, c.orgID, DefaultPreviewSize)
	c.status.Observe(err)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard preview: %w", err)
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	return &DashboardView{User: user, ActiveMissions: missions, Leaderboard: preview}, nil
}

// CaptureAction submits an action with click, then success or error cues.
func (c *Console) CaptureAction(ctx context.Context, req CaptureActionRequest) (Action, error) {
	c.play(audio.CueClick)

	action, err := c.client.CaptureAction(ctx, req)
	c.status.Observe(err)
	if err != nil {
		c.logger.Warn("failed to capture action", zap.Error(err))
		c.play(audio.CueError)
		return Action{}, err
	}
	c.play(audio.CueSuccess)
	return action, nil
}

// Notify announces a notification.
func (c *Console) Notify(title string) {
	c.logger.Info("notification", zap.String("title", title))
	c.play(audio.CueNotification)
}

func (c *Console) play(cue audio.Cue) {
	if c.audio != nil {
		c.audio.Play(cue)
	}
}
