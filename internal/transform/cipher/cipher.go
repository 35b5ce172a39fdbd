// Package cipher provides the builtin classic ciphers: ROT13, Caesar,
// Vigenère, and Atbash. Letters shift within their case; everything else
// passes through untouched.
package cipher

import (
	"fmt"
	"strings"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// DefaultCaesarShift matches the classic cipher.
const DefaultCaesarShift = 3

// DefaultVigenereKey is used when the request carries no "key" option.
const DefaultVigenereKey = "KEY"

// Register adds every cipher transformer to the catalog.
func Register(c *catalog.Catalog) error {
	descriptors := []*transform.Descriptor{
		{Name: "rot13", Category: transform.Cipher, Transform: ROT13},
		{Name: "rot13_decode", Category: transform.Cipher, Transform: ROT13},
		{Name: "caesar", Category: transform.Cipher, Transform: CaesarEncode},
		{Name: "caesar_decode", Category: transform.Cipher, Transform: CaesarDecode},
		{Name: "vigenere", Category: transform.Cipher, Transform: VigenereEncode},
		{Name: "vigenere_decode", Category: transform.Cipher, Transform: VigenereDecode},
		{Name: "atbash", Category: transform.Cipher, Transform: Atbash},
		{Name: "atbash_decode", Category: transform.Cipher, Transform: Atbash},
	}

	for _, d := range descriptors {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}
	return nil
}

// shiftAlpha rotates ASCII letters by n positions, preserving case.
func shiftAlpha(input string, n int) string {
	n = ((n % 26) + 26) % 26
	var sb strings.Builder
	sb.Grow(len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune('a' + (r-'a'+rune(n))%26)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune('A' + (r-'A'+rune(n))%26)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ROT13 is its own inverse.
func ROT13(input string, _ transform.Options) (string, error) {
	return shiftAlpha(input, 13), nil
}

// CaesarEncode shifts letters forward by the "shift" option (default 3).
func CaesarEncode(input string, opts transform.Options) (string, error) {
	return shiftAlpha(input, opts.Int("shift", DefaultCaesarShift)), nil
}

// CaesarDecode shifts letters back by the "shift" option (default 3).
func CaesarDecode(input string, opts transform.Options) (string, error) {
	return shiftAlpha(input, -opts.Int("shift", DefaultCaesarShift)), nil
}

func vigenereKey(opts transform.Options) (string, error) {
	key := opts.String("key", DefaultVigenereKey)
	if key == "" {
		return "", transform.InputError("vigenere key must not be empty")
	}
	key = strings.ToUpper(key)
	for _, r := range key {
		if r < 'A' || r > 'Z' {
			return "", transform.InputError("vigenere key must be alphabetic, got %q", key)
		}
	}
	return key, nil
}

// vigenere shifts each letter by the next key letter. The key only advances
// on letters, so punctuation never consumes key material.
func vigenere(input, key string, decode bool) string {
	var sb strings.Builder
	sb.Grow(len(input))
	ki := 0
	for _, r := range input {
		var base rune
		switch {
		case r >= 'a' && r <= 'z':
			base = 'a'
		case r >= 'A' && r <= 'Z':
			base = 'A'
		default:
			sb.WriteRune(r)
			continue
		}
		shift := rune(key[ki%len(key)] - 'A')
		if decode {
			shift = 26 - shift
		}
		sb.WriteRune(base + (r-base+shift)%26)
		ki++
	}
	return sb.String()
}

// VigenereEncode enciphers with the "key" option (default "KEY").
func VigenereEncode(input string, opts transform.Options) (string, error) {
	key, err := vigenereKey(opts)
	if err != nil {
		return "", err
	}
	return vigenere(input, key, false), nil
}

// VigenereDecode deciphers with the "key" option (default "KEY").
func VigenereDecode(input string, opts transform.Options) (string, error) {
	key, err := vigenereKey(opts)
	if err != nil {
		return "", err
	}
	return vigenere(input, key, true), nil
}

// Atbash mirrors the alphabet (a<->z) and is its own inverse.
func Atbash(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	sb.Grow(len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune('z' - (r - 'a'))
		case r >= 'A' && r <= 'Z':
			sb.WriteRune('Z' - (r - 'A'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}
