// Package encoding provides the builtin encoding transformers: the base-N
// family, URL percent-encoding, hex, and the numeric representations
// (binary, octal, decimal code points).
package encoding

import (
	"fmt"
	"strings"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// Register adds every encoding transformer to the catalog.
func Register(c *catalog.Catalog) error {
	descriptors := []*transform.Descriptor{
		{Name: "base64_encode", Category: transform.Encoding, Transform: Base64Encode},
		{Name: "base64_decode", Category: transform.Encoding, Transform: Base64Decode},
		{Name: "base32_encode", Category: transform.Encoding, Transform: Base32Encode},
		{Name: "base32_decode", Category: transform.Encoding, Transform: Base32Decode},
		{Name: "base58_encode", Category: transform.Encoding, Transform: Base58Encode},
		{Name: "base58_decode", Category: transform.Encoding, Transform: Base58Decode},
		{Name: "base62_encode", Category: transform.Encoding, Transform: Base62Encode},
		{Name: "base62_decode", Category: transform.Encoding, Transform: Base62Decode},
		{Name: "base85_encode", Category: transform.Encoding, Transform: Base85Encode},
		{Name: "base85_decode", Category: transform.Encoding, Transform: Base85Decode},
		{Name: "url_encode", Category: transform.Encoding, Transform: URLEncode},
		{Name: "url_decode", Category: transform.Encoding, Transform: URLDecode},
		{Name: "hex_encode", Category: transform.Encoding, Transform: HexEncode},
		{Name: "hex_decode", Category: transform.Encoding, Transform: HexDecode},
		{Name: "binary_encode", Category: transform.Encoding, Transform: BinaryEncode},
		{Name: "binary_decode", Category: transform.Encoding, Transform: BinaryDecode},
		{Name: "octal_encode", Category: transform.Encoding, Transform: OctalEncode},
		{Name: "octal_decode", Category: transform.Encoding, Transform: OctalDecode},
		{Name: "ascii_encode", Category: transform.Encoding, Transform: ASCIIEncode},
		{Name: "ascii_decode", Category: transform.Encoding, Transform: ASCIIDecode},
	}

	for _, d := range descriptors {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}
	return nil
}

// unreserved reports whether b needs no percent-encoding.
func unreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return false
}

const upperHex = "0123456789ABCDEF"

// URLEncode percent-encodes every byte outside the unreserved set. Spaces
// become %20, never +.
func URLEncode(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(input); i++ {
		b := input[i]
		if unreserved(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[b>>4])
		sb.WriteByte(upperHex[b&0x0F])
	}
	return sb.String(), nil
}

// URLDecode reverses percent-encoding. A literal + stays a +.
func URLDecode(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(input); {
		if input[i] != '%' {
			sb.WriteByte(input[i])
			i++
			continue
		}
		if i+2 >= len(input) {
			return "", transform.InputError("truncated percent escape at offset %d", i)
		}
		hi := hexVal(input[i+1])
		lo := hexVal(input[i+2])
		if hi < 0 || lo < 0 {
			return "", transform.InputError("invalid percent escape %q", input[i:i+3])
		}
		sb.WriteByte(byte(hi<<4 | lo))
		i += 3
	}
	return sb.String(), nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
