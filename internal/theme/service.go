package theme

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/notify"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/storage"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ThemePersistenceError reports a storage failure while saving or restoring
// the selection. It is logged, never returned.
type ThemePersistenceError struct {
	Op  string
	Err error
}

func (e *ThemePersistenceError) Error() string {
	return fmt.Sprintf("theme persistence: %s: %v", e.Op, e.Err)
}

func (e *ThemePersistenceError) Unwrap() error {
	return e.Err
}

// Change describes what presentation code must do to apply a theme.
type Change struct {
	Theme         Config
	Class         string
	RemoveClasses []string
	Title         string
	Variables     map[string]string
}

// Options configures a Service.
type Options struct {
	// Store persists the selection; nil keeps it in memory only.
	Store storage.Store
	// Default is used when nothing valid is persisted.
	Default Config
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Service holds the current theme.
type Service struct {
	mu       sync.RWMutex
	current  Config
	defaults Config

	store   storage.Store
	logger  *zap.Logger
	metrics *monitoring.Metrics

	notifier notify.Notifier[Change]
}

// NewService restores the persisted theme, falling back to the default.
func NewService(opts Options) *Service {
	s := &Service{
		store:   opts.Store,
		logger:  opts.Logger.Component("theme"),
		metrics: opts.Metrics,
	}
	s.defaults = s.resolveDefault(opts.Default)
	s.current = s.restore()
	return s
}

func (s *Service) resolveDefault(cfg Config) Config {
	if cfg.Name == "" {
		return builtins[Starfleet]
	}
	if _, ok := builtins[cfg.Name]; !ok {
		s.logger.Warn("unknown default theme, using starfleet", zap.String("theme", string(cfg.Name)))
		return builtins[Starfleet]
	}
	if cfg.AppName == "" {
		cfg.AppName = builtins[cfg.Name].AppName
	}
	return cfg
}

func (s *Service) restore() Config {
	if s.store == nil {
		return s.defaults
	}

	raw, ok, err := s.store.Get(storage.ThemeKey)
	if err != nil {
		s.logger.Warn("failed to load saved theme, using default",
			zap.Error(&ThemePersistenceError{Op: "load", Err: err}))
		return s.defaults
	}
	if !ok || raw == "" {
		s.logger.Debug("no saved theme, using default", zap.String("theme", string(s.defaults.Name)))
		return s.defaults
	}

	var name string
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &name); err != nil {
		s.logger.Warn("failed to load saved theme, using default",
			zap.Error(&ThemePersistenceError{Op: "decode", Err: err}))
		return s.defaults
	}
	cfg, known := builtins[Name(name)]
	if !known {
		s.logger.Warn("saved theme is unknown, using default", zap.String("theme", name))
		return s.defaults
	}
	return cfg
}

// SetTheme switches to the named theme and persists it. Unknown names are
// ignored; the return value reports whether name was known.
func (s *Service) SetTheme(name string) bool {
	cfg, ok := builtins[Name(name)]
	if !ok {
		s.logger.Debug("ignoring unknown theme", zap.String("theme", name))
		return false
	}

	s.notifier.Update(func() (Change, bool) {
		s.mu.Lock()
		changed := s.current != cfg
		s.current = cfg
		s.mu.Unlock()

		s.save(cfg.Name)
		if changed {
			s.logger.Info("theme changed", zap.String("theme", name))
			if s.metrics != nil {
				s.metrics.IncThemeChange(name)
			}
		}
		return changeFor(cfg), changed
	})
	return true
}

func (s *Service) save(name Name) {
	if s.store == nil {
		return
	}
	raw, err := sonic.ConfigStd.MarshalToString(string(name))
	if err == nil {
		err = s.store.Set(storage.ThemeKey, raw)
	}
	if err != nil {
		s.logger.Warn("failed to save theme preference",
			zap.Error(&ThemePersistenceError{Op: "save", Err: err}))
	}
}

// Subscribe calls fn with the current theme now and on every change. fn may
// call SetTheme; the resulting change is delivered after fn returns. The
// returned func unsubscribes.
func (s *Service) Subscribe(fn func(Change)) func() {
	return s.notifier.Subscribe(fn, func() Change {
		return changeFor(s.CurrentTheme())
	})
}

// CurrentTheme returns the active configuration.
func (s *Service) CurrentTheme() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentThemeName returns the active theme's name.
func (s *Service) CurrentThemeName() Name {
	return s.CurrentTheme().Name
}

// AppName returns the display name for the active theme.
func (s *Service) AppName() string {
	return s.CurrentTheme().AppName
}

// IsFeatureEnabled reports a flag of the active theme.
func (s *Service) IsFeatureEnabled(f Feature) bool {
	return s.CurrentTheme().Enabled(f)
}

// AvailableThemes lists selectable themes.
func (s *Service) AvailableThemes() []Name {
	return Names()
}

func (s *Service) IsCorporateTheme() bool { return s.CurrentThemeName() == Corporate }
func (s *Service) IsStarfleetTheme() bool { return s.CurrentThemeName() == Starfleet }

func changeFor(cfg Config) Change {
	names := Names()
	remove := make([]string, len(names))
	for i, name := range names {
		remove[i] = ClassFor(name)
	}
	return Change{
		Theme:         cfg,
		Class:         cfg.Class(),
		RemoveClasses: remove,
		Title:         cfg.AppName,
		Variables:     Variables(cfg.Name),
	}
}
