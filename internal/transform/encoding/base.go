package encoding

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dshills/transmute/internal/transform"
)

// Base64Encode encodes UTF-8 text as standard padded base64.
func Base64Encode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString([]byte(input)), nil
}

// Base64Decode decodes standard base64 to UTF-8 text.
func Base64Decode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return "", transform.InputError("not valid base64: %v", err)
	}
	return requireUTF8(decoded)
}

// Base32Encode encodes text as RFC 4648 base32.
func Base32Encode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	return base32.StdEncoding.EncodeToString([]byte(input)), nil
}

// Base32Decode decodes base32, accepting lowercase input.
func Base32Decode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	folded := strings.ToUpper(strings.TrimSpace(input))
	decoded, err := base32.StdEncoding.DecodeString(folded)
	if err != nil {
		return "", transform.InputError("not valid base32: %v", err)
	}
	return requireUTF8(decoded)
}

// HexEncode encodes text as lowercase hexadecimal.
func HexEncode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	return hex.EncodeToString([]byte(input)), nil
}

// HexDecode decodes a hexadecimal string to text.
func HexDecode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	decoded, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return "", transform.InputError("not valid hex: %v", err)
	}
	return requireUTF8(decoded)
}

// base85Alphabet is the RFC 1924 character set.
const base85Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{|}~"

var base85Rev = reverseAlphabet(base85Alphabet)

// Base85Encode encodes text as RFC 1924 base85: 4-byte groups become 5
// characters, a short final group is zero-padded and its output truncated.
func Base85Encode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	data := []byte(input)
	var sb strings.Builder
	for off := 0; off < len(data); off += 4 {
		chunk := data[off:]
		n := len(chunk)
		if n > 4 {
			n = 4
		}
		var v uint32
		for i := 0; i < 4; i++ {
			v <<= 8
			if i < n {
				v |= uint32(chunk[i])
			}
		}
		var digits [5]byte
		for i := 4; i >= 0; i-- {
			digits[i] = base85Alphabet[v%85]
			v /= 85
		}
		sb.Write(digits[:n+1])
	}
	return sb.String(), nil
}

// Base85Decode decodes RFC 1924 base85. A short final group is padded with
// the maximal digit and its decoded bytes truncated.
func Base85Decode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	text := strings.TrimSpace(input)
	var out []byte
	for off := 0; off < len(text); off += 5 {
		chunk := text[off:]
		n := len(chunk)
		if n > 5 {
			n = 5
		}
		if n == 1 {
			return "", transform.InputError("truncated base85 group at offset %d", off)
		}
		var v uint64
		for i := 0; i < 5; i++ {
			d := byte(84)
			if i < n {
				rev, ok := base85Rev[chunk[i]]
				if !ok {
					return "", transform.InputError("invalid base85 character %q", chunk[i])
				}
				d = rev
			}
			v = v*85 + uint64(d)
		}
		if v > 0xFFFFFFFF {
			return "", transform.InputError("base85 group overflow at offset %d", off)
		}
		group := [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
		out = append(out, group[:n-1]...)
	}
	return requireUTF8(out)
}

// base58Alphabet is the Bitcoin character set: no 0, O, I, or l.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// base62Alphabet is digits, then uppercase, then lowercase.
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var (
	base58Rev = reverseAlphabet(base58Alphabet)
	base62Rev = reverseAlphabet(base62Alphabet)
)

// Base58Encode encodes text using the Bitcoin base58 alphabet.
func Base58Encode(input string, _ transform.Options) (string, error) {
	return bigRadixEncode(input, base58Alphabet), nil
}

// Base58Decode decodes Bitcoin-style base58.
func Base58Decode(input string, _ transform.Options) (string, error) {
	return bigRadixDecode(input, base58Alphabet, base58Rev)
}

// Base62Encode encodes text using the 0-9A-Za-z alphabet.
func Base62Encode(input string, _ transform.Options) (string, error) {
	return bigRadixEncode(input, base62Alphabet), nil
}

// Base62Decode decodes base62.
func Base62Decode(input string, _ transform.Options) (string, error) {
	return bigRadixDecode(input, base62Alphabet, base62Rev)
}

// bigRadixEncode treats the UTF-8 bytes as one big-endian integer and
// renders it in the given alphabet. Leading zero bytes are preserved as
// repeated zero digits.
func bigRadixEncode(input, alphabet string) string {
	if input == "" {
		return ""
	}
	data := []byte(input)
	base := big.NewInt(int64(len(alphabet)))

	num := new(big.Int).SetBytes(data)
	mod := new(big.Int)

	var digits []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		digits = append(digits, alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		digits = append(digits, alphabet[0])
	}
	if len(digits) == 0 {
		digits = append(digits, alphabet[0])
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

func bigRadixDecode(input, alphabet string, rev map[byte]byte) (string, error) {
	if input == "" {
		return "", nil
	}
	text := strings.TrimSpace(input)
	base := big.NewInt(int64(len(alphabet)))

	num := new(big.Int)
	for i := 0; i < len(text); i++ {
		d, ok := rev[text[i]]
		if !ok {
			return "", transform.InputError("invalid base%d character %q", len(alphabet), text[i])
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(int64(d)))
	}

	decoded := num.Bytes()

	leadingZeros := 0
	for i := 0; i < len(text) && text[i] == alphabet[0]; i++ {
		leadingZeros++
	}
	if leadingZeros > 0 {
		decoded = append(make([]byte, leadingZeros), decoded...)
	}
	return requireUTF8(decoded)
}

func reverseAlphabet(alphabet string) map[byte]byte {
	m := make(map[byte]byte, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return m
}

// requireUTF8 guards decoded byte output: the pipeline carries text, so
// decoding that yields invalid UTF-8 is a malformed-input error, not
// replacement-character soup.
func requireUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", transform.InputError("decoded bytes are not valid UTF-8 text")
	}
	return string(b), nil
}
