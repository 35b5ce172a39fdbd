package cipher

import (
	"errors"
	"testing"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

func TestROT13(t *testing.T) {
	got, err := ROT13("Hello, World!", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Uryyb, Jbeyq!" {
		t.Errorf("ROT13(Hello, World!) = %q, want Uryyb, Jbeyq!", got)
	}

	// Self-inverse.
	back, err := ROT13(got, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "Hello, World!" {
		t.Errorf("ROT13(ROT13(x)) = %q, want Hello, World!", back)
	}
}

func TestCaesar(t *testing.T) {
	tests := []struct {
		input string
		opts  transform.Options
		want  string
	}{
		{"abc", nil, "def"},
		{"XYZ", nil, "ABC"},
		{"xyz", transform.Options{"shift": "1"}, "yza"},
		{"Hello, World!", transform.Options{"shift": "5"}, "Mjqqt, Btwqi!"},
	}
	for _, tt := range tests {
		got, err := CaesarEncode(tt.input, tt.opts)
		if err != nil {
			t.Fatalf("CaesarEncode(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("CaesarEncode(%q) = %q, want %q", tt.input, got, tt.want)
		}
		back, err := CaesarDecode(got, tt.opts)
		if err != nil {
			t.Fatalf("CaesarDecode(%q) error = %v", got, err)
		}
		if back != tt.input {
			t.Errorf("CaesarDecode(%q) = %q, want %q", got, back, tt.input)
		}
	}
}

func TestVigenere(t *testing.T) {
	got, err := VigenereEncode("HELLO", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "RIJVS" {
		t.Errorf("VigenereEncode(HELLO) = %q, want RIJVS", got)
	}

	back, err := VigenereDecode("RIJVS", nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "HELLO" {
		t.Errorf("VigenereDecode(RIJVS) = %q, want HELLO", back)
	}

	// Non-letters pass through without consuming key material.
	mixed, err := VigenereEncode("A B", transform.Options{"key": "BC"})
	if err != nil {
		t.Fatal(err)
	}
	if mixed != "B D" {
		t.Errorf("VigenereEncode(A B, key=BC) = %q, want B D", mixed)
	}

	if _, err := VigenereEncode("x", transform.Options{"key": "k3y"}); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("VigenereEncode(key=k3y) error = %v, want ErrMalformedInput", err)
	}
}

func TestAtbash(t *testing.T) {
	got, err := Atbash("abcxyz XYZ", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "zyxcba CBA" {
		t.Errorf("Atbash(abcxyz XYZ) = %q, want zyxcba CBA", got)
	}
}

func TestRegister(t *testing.T) {
	c := catalog.New()
	if err := Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := len(c.ByCategory(transform.Cipher)); got != 8 {
		t.Errorf("cipher count = %d, want 8", got)
	}
}
