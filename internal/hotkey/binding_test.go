package hotkey

import (
	"errors"
	"testing"

	"github.com/dshills/transmute/internal/hotkey/key"
)

func TestParseBindingValid(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"ctrl+alt+t", "Ctrl+Alt+T"},
		{"primary+alt+t", "Primary+Alt+T"},
		{"cmd+shift+F5", "Meta+Shift+F5"},
		{"ctrl+alt+space", "Ctrl+Alt+Space"},
	}

	for _, tt := range tests {
		b, err := ParseBinding(tt.spec)
		if err != nil {
			t.Errorf("ParseBinding(%q) error = %v", tt.spec, err)
			continue
		}
		if b.String() != tt.want {
			t.Errorf("ParseBinding(%q).String() = %q, want %q", tt.spec, b.String(), tt.want)
		}
	}
}

func TestParseBindingRejections(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"malformed", "this is not a combo"},
		{"empty", ""},
		{"zero modifiers", "t"},
		{"zero modifiers special", "F5"},
		{"reserved copy ctrl", "ctrl+c"},
		{"reserved paste meta", "cmd+v"},
		{"reserved undo primary", "primary+z"},
		{"reserved save", "ctrl+s"},
		{"reserved quit", "meta+q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBinding(tt.spec); !errors.Is(err, ErrInvalidBinding) {
				t.Errorf("ParseBinding(%q) error = %v, want ErrInvalidBinding", tt.spec, err)
			}
		})
	}
}

func TestReservedWithExtraModifierIsAllowed(t *testing.T) {
	// Ctrl+Shift+C is not Ctrl+C; only exact blocklist members are refused.
	if _, err := ParseBinding("ctrl+shift+c"); err != nil {
		t.Errorf("ParseBinding(ctrl+shift+c) error = %v, want nil", err)
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved(key.NewRuneEvent('c', key.ModCtrl)) {
		t.Error("Ctrl+C should be reserved")
	}
	if IsReserved(key.NewRuneEvent('t', key.ModCtrl.With(key.ModAlt))) {
		t.Error("Ctrl+Alt+T should not be reserved")
	}
}

func TestDefaultBinding(t *testing.T) {
	b := DefaultBinding()
	if b.IsZero() {
		t.Fatal("default binding should not be zero")
	}
	if got := b.String(); got != "Primary+Alt+T" {
		t.Errorf("default binding = %q, want Primary+Alt+T", got)
	}
}
