// Package state owns window visibility and the text snapshot preserved
// across visibility toggles. The machine consumes hotkey-toggle signals and
// exposes transition behavior to the UI layer; it never touches pane
// contents directly, only through injected hooks.
package state

import (
	"errors"
	"sync"
)

// Visibility is the window visibility state.
type Visibility uint8

const (
	// Visible means the window is shown. Initial state.
	Visible Visibility = iota
	// Hidden means the window is hidden with a preserved snapshot.
	Hidden
)

// String returns a string representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Snapshot preserves pane contents across a hide. It exists only while the
// machine is Hidden: captured at the Visible-to-Hidden transition, consumed
// and cleared at the Hidden-to-Visible transition.
type Snapshot struct {
	Input  string
	Output string
}

// Machine errors.
var (
	// ErrTerminated indicates the machine has processed an exit and accepts
	// no further transitions.
	ErrTerminated = errors.New("state machine terminated")

	// ErrNotHidden indicates an exit was requested while visible.
	ErrNotHidden = errors.New("exit is only valid while hidden")
)

// Hooks connect the machine to the UI layer. All hooks run on the caller's
// goroutine (the interaction loop).
type Hooks struct {
	// Capture returns the current pane contents at hide time.
	Capture func() (input, output string)

	// Restore applies a snapshot back to the pane at show time.
	Restore func(input, output string)

	// Focus asks the UI to gain focus after a show transition.
	Focus func()
}

// Machine is the interaction state machine. Transitions are not
// interruptible: a toggle signal received while a transition is in flight is
// queued and applied after the UI acknowledges completion via
// TransitionDone.
type Machine struct {
	mu sync.Mutex

	visibility Visibility
	snapshot   *Snapshot
	hooks      Hooks

	inFlight   bool
	queued     int
	terminated bool
}

// New creates a machine in the Visible state.
func New(hooks Hooks) *Machine {
	return &Machine{visibility: Visible, hooks: hooks}
}

// Visibility returns the current visibility state.
func (m *Machine) Visibility() Visibility {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visibility
}

// HasSnapshot reports whether a preserved snapshot currently exists.
// The invariant is: a snapshot exists iff the machine is Hidden.
func (m *Machine) HasSnapshot() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot != nil
}

// Toggle processes one hotkey signal (or the equivalent close/restore
// action). If a transition is already in flight the signal is queued, not
// dropped, and applied after TransitionDone.
func (m *Machine) Toggle() error {
	m.mu.Lock()
	if m.terminated {
		m.mu.Unlock()
		return ErrTerminated
	}
	if m.inFlight {
		m.queued++
		m.mu.Unlock()
		return nil
	}
	m.inFlight = true
	m.mu.Unlock()

	m.transition()
	return nil
}

// transition performs one visibility flip. Must be called with inFlight set
// and the mutex released: hooks call back into the UI layer.
func (m *Machine) transition() {
	m.mu.Lock()
	from := m.visibility
	m.mu.Unlock()

	switch from {
	case Visible:
		var snap Snapshot
		if m.hooks.Capture != nil {
			snap.Input, snap.Output = m.hooks.Capture()
		}
		m.mu.Lock()
		m.snapshot = &snap
		m.visibility = Hidden
		m.mu.Unlock()

	case Hidden:
		m.mu.Lock()
		snap := m.snapshot
		m.snapshot = nil
		m.visibility = Visible
		m.mu.Unlock()

		if snap != nil && m.hooks.Restore != nil {
			m.hooks.Restore(snap.Input, snap.Output)
		}
		if m.hooks.Focus != nil {
			m.hooks.Focus()
		}
	}
}

// TransitionDone is called by the UI layer once the visible effect of the
// current transition has completed (window hidden, or shown and painted).
// If toggle signals were queued while the transition was in flight, the next
// one starts immediately and the machine stays in flight until the UI
// acknowledges it in turn.
func (m *Machine) TransitionDone() {
	m.mu.Lock()
	if !m.inFlight {
		m.mu.Unlock()
		return
	}
	if m.queued == 0 {
		m.inFlight = false
		m.mu.Unlock()
		return
	}
	m.queued--
	m.mu.Unlock()

	m.transition()
}

// Exit terminates the machine. Valid only while Hidden; afterwards every
// transition fails with ErrTerminated.
func (m *Machine) Exit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.terminated {
		return ErrTerminated
	}
	if m.visibility != Hidden {
		return ErrNotHidden
	}
	m.terminated = true
	m.snapshot = nil
	return nil
}

// Terminated reports whether the machine has exited.
func (m *Machine) Terminated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.terminated
}
