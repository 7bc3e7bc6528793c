package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultVolume is the initial gain.
	DefaultVolume = 0.3
)

// AudioUnavailableError reports a backend that could not be created or failed
// to play. It is logged, never returned to callers.
type AudioUnavailableError struct {
	Op  string
	Err error
}

func (e *AudioUnavailableError) Error() string {
	return fmt.Sprintf("audio unavailable: %s: %v", e.Op, e.Err)
}

func (e *AudioUnavailableError) Unwrap() error {
	return e.Err
}

// Options configures a Service.
type Options struct {
	Enabled   bool
	Volume    float64
	Factory   Factory
	Scheduler Scheduler
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
}

// DefaultOptions returns an enabled service at the default volume with a
// discarding backend.
func DefaultOptions() Options {
	return Options{
		Enabled: true,
		Volume:  DefaultVolume,
	}
}

// Service plays cue sequences. Cues never block and never fail.
type Service struct {
	mu      sync.RWMutex
	enabled bool
	volume  float64

	initMu  sync.Mutex
	backend Backend
	factory Factory

	scheduler Scheduler
	logger    *zap.Logger
	metrics   *monitoring.Metrics

	pendingMu sync.Mutex
	pending   int
	idle      chan struct{}
}

// NewService creates a service. The backend is not created until a tone
// actually plays.
func NewService(opts Options) *Service {
	factory := opts.Factory
	if factory == nil {
		factory = NullFactory()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = SystemScheduler{}
	}
	return &Service{
		enabled:   opts.Enabled,
		volume:    clampVolume(opts.Volume),
		factory:   factory,
		scheduler: scheduler,
		logger:    opts.Logger.Component("audio"),
		metrics:   opts.Metrics,
	}
}

// IsEnabled reports whether cues play.
func (s *Service) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled turns cues on or off. Tones already scheduled check the flag
// when they fire.
func (s *Service) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Volume returns the current gain in [0, 1].
func (s *Service) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// SetVolume clamps v to [0, 1]. NaN is treated as 0.
func (s *Service) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
}

// Play schedules the cue's sequence. It is a no-op when disabled.
func (s *Service) Play(cue Cue) {
	if !s.IsEnabled() {
		return
	}
	seq, ok := sequences[cue]
	if !ok {
		s.logger.Warn("unknown cue", zap.String("cue", string(cue)))
		return
	}
	if s.metrics != nil {
		s.metrics.IncCue(string(cue))
	}
	s.track(len(seq))
	for _, step := range seq {
		tone := step.Tone
		s.scheduler.AfterFunc(step.Offset, func() {
			defer s.track(-1)
			s.PlayTone(tone.Frequency, tone.Duration)
		})
	}
}

// Drain blocks until every scheduled tone has fired or ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	s.pendingMu.Lock()
	idle := s.idle
	s.pendingMu.Unlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) track(delta int) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending += delta
	switch {
	case s.pending > 0 && s.idle == nil:
		s.idle = make(chan struct{})
	case s.pending == 0 && s.idle != nil:
		close(s.idle)
		s.idle = nil
	}
}

// PlayTone plays a single tone now. Failures are logged and swallowed.
func (s *Service) PlayTone(frequency float64, duration time.Duration) {
	s.mu.RLock()
	enabled, volume := s.enabled, s.volume
	s.mu.RUnlock()
	if !enabled {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.fail(&AudioUnavailableError{Op: "play", Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	backend, err := s.ensureBackend()
	if err != nil {
		s.fail(err)
		return
	}
	if err := backend.Play(Tone{Frequency: frequency, Duration: duration}, volume); err != nil {
		s.fail(&AudioUnavailableError{Op: "play", Err: err})
		return
	}
	if s.metrics != nil {
		s.metrics.IncTone()
	}
}

// Close releases the backend. A later tone creates a new one.
func (s *Service) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.backend == nil {
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	return err
}

func (s *Service) PlayClick()        { s.Play(CueClick) }
func (s *Service) PlayHover()        { s.Play(CueHover) }
func (s *Service) PlaySuccess()      { s.Play(CueSuccess) }
func (s *Service) PlayError()        { s.Play(CueError) }
func (s *Service) PlayNotification() { s.Play(CueNotification) }
func (s *Service) PlayAlert()        { s.Play(CueAlert) }
func (s *Service) PlayStartup()      { s.Play(CueStartup) }

func (s *Service) ensureBackend() (Backend, error) {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.backend != nil {
		return s.backend, nil
	}
	backend, err := s.factory()
	if err != nil {
		return nil, &AudioUnavailableError{Op: "init", Err: err}
	}
	if backend == nil {
		return nil, &AudioUnavailableError{Op: "init", Err: fmt.Errorf("factory returned no backend")}
	}
	s.backend = backend
	return backend, nil
}

func (s *Service) fail(err error) {
	s.logger.Warn("audio not available", zap.Error(err))
	if s.metrics != nil {
		s.metrics.IncAudioFailure()
	}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
