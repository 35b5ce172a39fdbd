package hotkey

import (
	"sync"
)

// Listener is the opaque OS-level key hook. Implementations run on their own
// goroutine and invoke the activation callback whenever the bound
// combination is pressed; they never touch application state directly.
type Listener interface {
	// Start installs the hook for the binding. An implementation should
	// return an error wrapping ErrListenerPermission when the OS denies
	// low-level key-hook registration.
	Start(b Binding, activated func()) error

	// Stop removes the hook. Idempotent.
	Stop()
}

// Manager owns the active binding and its listener, and bridges activation
// events into the interaction loop through a bounded channel.
type Manager struct {
	mu       sync.Mutex
	listener Listener
	binding  Binding
	active   bool

	activations chan struct{}
}

// activationBuffer bounds the activation channel. Toggles are rare; a small
// buffer absorbs a burst without ever blocking the listener goroutine.
const activationBuffer = 8

// NewManager creates a manager that installs hooks through the given
// listener. No binding is active until SetBinding succeeds.
func NewManager(listener Listener) *Manager {
	return &Manager{
		listener:    listener,
		activations: make(chan struct{}, activationBuffer),
	}
}

// Activations returns the channel on which hotkey activations are delivered
// to the interaction loop. If the loop lags behind the buffer, extra
// activations are dropped rather than blocking the listener thread.
func (m *Manager) Activations() <-chan struct{} {
	return m.activations
}

// Binding returns the currently active binding (zero if none).
func (m *Manager) Binding() Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.binding
}

// IsActive reports whether a listener is currently installed.
func (m *Manager) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// SetBinding validates spec and atomically replaces the active binding.
//
// On any failure the previous binding remains fully active: validation runs
// before the old listener is stopped, and a failed start of the new binding
// rolls back to the old one. The manager is never left with no listener and
// no reported error.
func (m *Manager) SetBinding(spec string) error {
	binding, err := ParseBinding(spec)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.binding
	wasActive := m.active

	if wasActive {
		m.listener.Stop()
		m.active = false
	}

	if err := m.listener.Start(binding, m.emit); err != nil {
		if wasActive {
			// Roll back. If the old binding fails to re-install the caller
			// still gets the original error; the rollback error would only
			// repeat it.
			if rbErr := m.listener.Start(prev, m.emit); rbErr == nil {
				m.active = true
			}
		}
		return err
	}

	m.binding = binding
	m.active = true
	return nil
}

// Stop removes the active listener, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active {
		m.listener.Stop()
		m.active = false
	}
}

// emit delivers one activation without blocking the listener goroutine.
func (m *Manager) emit() {
	select {
	case m.activations <- struct{}{}:
	default:
		// Loop is behind; drop rather than block the hook thread.
	}
}
