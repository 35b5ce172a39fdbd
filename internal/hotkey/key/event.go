package key

import (
	"strings"
	"unicode"
)

// Event is one modifier+key combination. For hotkey purposes there is no
// timestamp: an Event is an identity, not an occurrence.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events, always lowercased so that
	// "Ctrl+Alt+T" and "ctrl+alt+t" compare equal.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: mods}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsZero reports whether the event is unset.
func (e Event) IsZero() bool {
	return e.Key == KeyNone && e.Rune == 0 && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same combination.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// String returns the canonical combination string, e.g. "Ctrl+Alt+T" or
// "Primary+Shift+F5". This form parses back to an equal Event.
func (e Event) String() string {
	var parts []string
	if mods := e.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}

	switch e.Key {
	case KeyRune:
		parts = append(parts, strings.ToUpper(string(e.Rune)))
	case KeyNone:
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "+")
}
