package encoding

import (
	"errors"
	"testing"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

func TestBase64(t *testing.T) {
	got, err := Base64Encode("Hello World", nil)
	if err != nil {
		t.Fatalf("Base64Encode() error = %v", err)
	}
	if got != "SGVsbG8gV29ybGQ=" {
		t.Errorf("Base64Encode(Hello World) = %q, want SGVsbG8gV29ybGQ=", got)
	}

	back, err := Base64Decode("SGVsbG8gV29ybGQ=", nil)
	if err != nil {
		t.Fatalf("Base64Decode() error = %v", err)
	}
	if back != "Hello World" {
		t.Errorf("Base64Decode() = %q, want Hello World", back)
	}

	if _, err := Base64Decode("!!not base64!!", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("Base64Decode(garbage) error = %v, want ErrMalformedInput", err)
	}
}

func TestBase32(t *testing.T) {
	got, err := Base32Encode("Hello", nil)
	if err != nil {
		t.Fatalf("Base32Encode() error = %v", err)
	}
	if got != "JBSWY3DP" {
		t.Errorf("Base32Encode(Hello) = %q, want JBSWY3DP", got)
	}

	// Lowercase input is folded before decoding.
	back, err := Base32Decode("jbswy3dp", nil)
	if err != nil {
		t.Fatalf("Base32Decode() error = %v", err)
	}
	if back != "Hello" {
		t.Errorf("Base32Decode(jbswy3dp) = %q, want Hello", back)
	}
}

func TestHex(t *testing.T) {
	got, err := HexEncode("Hi", nil)
	if err != nil {
		t.Fatalf("HexEncode() error = %v", err)
	}
	if got != "4869" {
		t.Errorf("HexEncode(Hi) = %q, want 4869", got)
	}

	back, err := HexDecode("4869", nil)
	if err != nil {
		t.Fatalf("HexDecode() error = %v", err)
	}
	if back != "Hi" {
		t.Errorf("HexDecode(4869) = %q, want Hi", back)
	}

	if _, err := HexDecode("zz", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("HexDecode(zz) error = %v, want ErrMalformedInput", err)
	}
}

func TestBase85(t *testing.T) {
	got, err := Base85Encode("Hell", nil)
	if err != nil {
		t.Fatalf("Base85Encode() error = %v", err)
	}
	if got != "NM&qn" {
		t.Errorf("Base85Encode(Hell) = %q, want NM&qn", got)
	}

	back, err := Base85Decode("NM&qn", nil)
	if err != nil {
		t.Fatalf("Base85Decode() error = %v", err)
	}
	if back != "Hell" {
		t.Errorf("Base85Decode(NM&qn) = %q, want Hell", back)
	}

	// Partial final group: 11 bytes encode to 14 characters.
	enc, err := Base85Encode("Hello World", nil)
	if err != nil {
		t.Fatalf("Base85Encode() error = %v", err)
	}
	if len(enc) != 14 {
		t.Errorf("len(Base85Encode(Hello World)) = %d, want 14", len(enc))
	}
	dec, err := Base85Decode(enc, nil)
	if err != nil {
		t.Fatalf("Base85Decode() error = %v", err)
	}
	if dec != "Hello World" {
		t.Errorf("Base85Decode() = %q, want Hello World", dec)
	}

	if _, err := Base85Decode(" \x7f", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("Base85Decode(invalid) error = %v, want ErrMalformedInput", err)
	}
}

func TestBase58(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "2g"},
		{"abc", "ZiCa"},
	}
	for _, tt := range tests {
		got, err := Base58Encode(tt.input, nil)
		if err != nil {
			t.Fatalf("Base58Encode(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Base58Encode(%q) = %q, want %q", tt.input, got, tt.want)
		}
		back, err := Base58Decode(got, nil)
		if err != nil {
			t.Fatalf("Base58Decode(%q) error = %v", got, err)
		}
		if back != tt.input {
			t.Errorf("Base58Decode(%q) = %q, want %q", got, back, tt.input)
		}
	}

	// 0, O, I, and l are not in the alphabet.
	if _, err := Base58Decode("0OIl", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("Base58Decode(0OIl) error = %v, want ErrMalformedInput", err)
	}
}

func TestBase62(t *testing.T) {
	got, err := Base62Encode("a", nil)
	if err != nil {
		t.Fatalf("Base62Encode() error = %v", err)
	}
	if got != "1Z" {
		t.Errorf("Base62Encode(a) = %q, want 1Z", got)
	}

	back, err := Base62Decode("1Z", nil)
	if err != nil {
		t.Fatalf("Base62Decode() error = %v", err)
	}
	if back != "a" {
		t.Errorf("Base62Decode(1Z) = %q, want a", back)
	}

	if _, err := Base62Decode("a-b", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("Base62Decode(a-b) error = %v, want ErrMalformedInput", err)
	}
}

func TestURL(t *testing.T) {
	got, err := URLEncode("hello world&x=1", nil)
	if err != nil {
		t.Fatalf("URLEncode() error = %v", err)
	}
	if got != "hello%20world%26x%3D1" {
		t.Errorf("URLEncode() = %q, want hello%%20world%%26x%%3D1", got)
	}

	back, err := URLDecode(got, nil)
	if err != nil {
		t.Fatalf("URLDecode() error = %v", err)
	}
	if back != "hello world&x=1" {
		t.Errorf("URLDecode() = %q", back)
	}

	// A plus sign is a literal, not a space.
	plus, err := URLDecode("a+b", nil)
	if err != nil {
		t.Fatalf("URLDecode(a+b) error = %v", err)
	}
	if plus != "a+b" {
		t.Errorf("URLDecode(a+b) = %q, want a+b", plus)
	}

	if _, err := URLDecode("bad%2", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("URLDecode(bad%%2) error = %v, want ErrMalformedInput", err)
	}
}

func TestBinary(t *testing.T) {
	got, err := BinaryEncode("Hi", nil)
	if err != nil {
		t.Fatalf("BinaryEncode() error = %v", err)
	}
	if got != "01001000 01101001" {
		t.Errorf("BinaryEncode(Hi) = %q", got)
	}

	back, err := BinaryDecode("01001000 01101001", nil)
	if err != nil {
		t.Fatalf("BinaryDecode() error = %v", err)
	}
	if back != "Hi" {
		t.Errorf("BinaryDecode() = %q, want Hi", back)
	}

	// Stray separators inside groups are stripped, short groups padded.
	lenient, err := BinaryDecode("0100_1000 1101001", nil)
	if err != nil {
		t.Fatalf("BinaryDecode(lenient) error = %v", err)
	}
	if lenient != "Hi" {
		t.Errorf("BinaryDecode(lenient) = %q, want Hi", lenient)
	}
}

func TestOctal(t *testing.T) {
	got, err := OctalEncode("Hi", nil)
	if err != nil {
		t.Fatalf("OctalEncode() error = %v", err)
	}
	if got != "110 151" {
		t.Errorf("OctalEncode(Hi) = %q, want 110 151", got)
	}

	back, err := OctalDecode("110 151", nil)
	if err != nil {
		t.Fatalf("OctalDecode() error = %v", err)
	}
	if back != "Hi" {
		t.Errorf("OctalDecode() = %q, want Hi", back)
	}
}

func TestASCII(t *testing.T) {
	got, err := ASCIIEncode("Hi", nil)
	if err != nil {
		t.Fatalf("ASCIIEncode() error = %v", err)
	}
	if got != "72 105" {
		t.Errorf("ASCIIEncode(Hi) = %q, want 72 105", got)
	}

	// Any decimal runs count, whatever the separators.
	back, err := ASCIIDecode("72, 105", nil)
	if err != nil {
		t.Fatalf("ASCIIDecode() error = %v", err)
	}
	if back != "Hi" {
		t.Errorf("ASCIIDecode(72, 105) = %q, want Hi", back)
	}
}

func TestEmptyInputs(t *testing.T) {
	funcs := map[string]transform.TransformFunc{
		"base64_encode": Base64Encode,
		"base64_decode": Base64Decode,
		"base58_encode": Base58Encode,
		"base85_decode": Base85Decode,
		"binary_encode": BinaryEncode,
		"ascii_decode":  ASCIIDecode,
	}
	for name, fn := range funcs {
		got, err := fn("", nil)
		if err != nil || got != "" {
			t.Errorf("%s(\"\") = (%q, %v), want (\"\", nil)", name, got, err)
		}
	}
}

func TestRegister(t *testing.T) {
	c := catalog.New()
	if err := Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	for _, name := range []string{"base64_encode", "base58_decode", "url_encode", "ascii_decode"} {
		if _, err := c.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}
}
