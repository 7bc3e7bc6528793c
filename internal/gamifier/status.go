package gamifier

import (
	"sync"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/notify"
)

// ConnectionStatus is the backend reachability shown in the shell.
type ConnectionStatus string

const (
	ConnectionConnecting   ConnectionStatus = "connecting"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionDisconnected ConnectionStatus = "disconnected"
)

// StatusMonitor derives the connection status from call outcomes.
type StatusMonitor struct {
	mu     sync.Mutex
	status ConnectionStatus

	notifier notify.Notifier[ConnectionStatus]
}

// NewStatusMonitor starts in the connecting state.
func NewStatusMonitor() *StatusMonitor {
	return &StatusMonitor{status: ConnectionConnecting}
}

// Status returns the current status.
func (m *StatusMonitor) Status() ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Observe updates the status from a call result. Success and 4xx mean the
// backend answered; network failures and 5xx mean it is unavailable. Other
// errors, such as validation or decoding, leave the status unchanged.
func (m *StatusMonitor) Observe(err error) {
	if err == nil {
		m.Set(ConnectionConnected)
		return
	}
	if api.IsNetworkError(err) {
		m.Set(ConnectionDisconnected)
		return
	}
	if status, ok := api.StatusCode(err); ok {
		if status >= 500 {
			m.Set(ConnectionDisconnected)
		} else {
			m.Set(ConnectionConnected)
		}
	}
}

// Set changes the status, notifying subscribers when it differs.
func (m *StatusMonitor) Set(status ConnectionStatus) {
	m.notifier.Update(func() (ConnectionStatus, bool) {
		m.mu.Lock()
		defer m.mu.Unlock()
		changed := m.status != status
		m.status = status
		return status, changed
	})
}

// Subscribe calls fn with the current status now and on every change. fn may
// call back into the monitor; those changes are delivered after it returns.
func (m *StatusMonitor) Subscribe(fn func(ConnectionStatus)) func() {
	return m.notifier.Subscribe(fn, m.Status)
}
