// Package hotkey validates, normalizes, and manages the global hotkey
// binding. The OS-level key hook is an opaque Listener collaborator; this
// package owns the binding rules and the stop/replace/start rebind dance.
package hotkey

import (
	"errors"
	"fmt"

	"github.com/dshills/transmute/internal/hotkey/key"
)

// Binding errors.
var (
	// ErrInvalidBinding covers malformed specs, zero-modifier combos, and
	// reserved combinations. Rejected before any listener change.
	ErrInvalidBinding = errors.New("invalid hotkey binding")

	// ErrListenerPermission indicates the OS denied key-hook registration.
	// Surfaced once at startup or rebind time; there is no retry loop.
	ErrListenerPermission = errors.New("hotkey listener permission denied")
)

// DefaultSpec is the out-of-the-box binding. The Primary modifier resolves
// to Ctrl or Cmd depending on platform, inside the listener collaborator.
const DefaultSpec = "primary+alt+t"

// Binding is a validated, normalized modifier+key combination.
type Binding struct {
	event key.Event
}

// Event returns the parsed combination.
func (b Binding) Event() key.Event {
	return b.event
}

// String returns the canonical combination string.
func (b Binding) String() string {
	return b.event.String()
}

// IsZero reports whether the binding is unset.
func (b Binding) IsZero() bool {
	return b.event.IsZero()
}

// reserved is the fixed blocklist of shortcuts the application must never
// shadow: clipboard, undo/redo, save, select-all, quit, and find, with both
// Ctrl and Meta as the primary modifier, plus the Primary placeholder form.
var reserved = func() []key.Event {
	letters := []rune{'c', 'v', 'x', 'z', 'y', 's', 'a', 'q', 'w', 'f'}
	mods := []key.Modifier{key.ModCtrl, key.ModMeta, key.ModPrimary}

	var events []key.Event
	for _, mod := range mods {
		for _, r := range letters {
			events = append(events, key.NewRuneEvent(r, mod))
		}
	}
	return events
}()

// IsReserved reports whether the combination is on the blocklist.
func IsReserved(ev key.Event) bool {
	for _, blocked := range reserved {
		if ev.Equals(blocked) {
			return true
		}
	}
	return false
}

// ParseBinding parses and validates a human-entered combination.
//
// It fails with ErrInvalidBinding when the spec does not parse into
// {modifiers}+{key}, when it carries zero modifiers, or when it collides
// with the reserved-shortcut blocklist.
func ParseBinding(spec string) (Binding, error) {
	ev, err := key.Parse(spec)
	if err != nil {
		return Binding{}, fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	if ev.Modifiers.IsEmpty() {
		return Binding{}, fmt.Errorf("%w: %q has no modifiers", ErrInvalidBinding, spec)
	}
	if IsReserved(ev) {
		return Binding{}, fmt.Errorf("%w: %s is a reserved shortcut", ErrInvalidBinding, ev)
	}
	return Binding{event: ev}, nil
}

// DefaultBinding returns the platform-default binding.
func DefaultBinding() Binding {
	b, err := ParseBinding(DefaultSpec)
	if err != nil {
		// The default spec is a compile-time constant; this cannot happen.
		panic(err)
	}
	return b
}
