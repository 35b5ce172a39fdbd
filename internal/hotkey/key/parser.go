// Package key parses and normalizes human-entered key combinations into the
// canonical form the OS-level hotkey listener expects. Which physical key
// the "Primary" modifier maps to differs by platform and is resolved by the
// listener collaborator, not here.
package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a combination specification into an Event.
//
// Supported formats:
//   - Modifiers joined by "+" with one trailing non-modifier key:
//     "ctrl+alt+t", "Primary+Shift+F5", "meta+space"
//   - A bare special key or single character: "F5", "t" (no modifiers)
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], mods), nil
	}

	// A multi-rune trailing part that is neither a special key nor a
	// modifier is malformed; so is a modifier in key position.
	if ModifierFromName(keyPart) != ModNone {
		return Event{}, fmt.Errorf("%w: %q has no non-modifier key", ErrInvalidSpec, spec)
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// Normalize parses spec and re-formats it in canonical form
// ("ctrl+alt+t" becomes "Ctrl+Alt+T").
func Normalize(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}

// MustParse parses a specification and panics on error. Use only for
// known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
