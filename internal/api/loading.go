package api

import (
	"sync"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/notify"
)

// LoadingState is the shared in-flight indicator. It counts requests rather
// than storing a flag, so overlapping calls keep it true until the last one
// settles.
type LoadingState struct {
	mu       sync.Mutex
	inFlight int

	// notifier orders transitions; callbacks run with no lock held and may
	// issue requests through the same client.
	notifier notify.Notifier[bool]

	// onChange mirrors the counter, e.g. into a gauge.
	onChange func(int)
}

// NewLoadingState returns a state that is not loading.
func NewLoadingState() *LoadingState {
	return &LoadingState{}
}

// IsLoading reports whether at least one request is in flight.
func (l *LoadingState) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// InFlight returns the number of requests currently in flight.
func (l *LoadingState) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Subscribe registers fn for loading transitions. fn is called with the
// current value, then once per false->true and true->false transition.
// Transitions caused from inside fn are delivered after fn returns. The
// returned func unsubscribes.
func (l *LoadingState) Subscribe(fn func(loading bool)) func() {
	return l.notifier.Subscribe(fn, l.IsLoading)
}

func (l *LoadingState) begin() {
	l.update(1)
}

func (l *LoadingState) end() {
	l.update(-1)
}

func (l *LoadingState) update(delta int) {
	l.notifier.Update(func() (bool, bool) {
		l.mu.Lock()
		before := l.inFlight > 0
		l.inFlight += delta
		if l.inFlight < 0 {
			l.inFlight = 0
		}
		count := l.inFlight
		onChange := l.onChange
		l.mu.Unlock()

		if onChange != nil {
			onChange(count)
		}
		after := count > 0
		return after, before != after
	})
}
