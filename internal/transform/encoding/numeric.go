package encoding

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/transmute/internal/transform"
)

// BinaryEncode renders each rune as a space-separated 8-bit group. Runes
// above U+00FF widen to however many bits their code point needs.
func BinaryEncode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	groups := make([]string, 0, len(input))
	for _, r := range input {
		s := strconv.FormatInt(int64(r), 2)
		if pad := 8 - len(s)%8; pad != 8 {
			s = strings.Repeat("0", pad) + s
		}
		groups = append(groups, s)
	}
	return strings.Join(groups, " "), nil
}

var nonBinary = regexp.MustCompile(`[^01]`)

// BinaryDecode converts space-separated binary groups back to text. Stray
// non-binary characters inside a group are ignored.
func BinaryDecode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	var sb strings.Builder
	for _, group := range strings.Fields(input) {
		clean := nonBinary.ReplaceAllString(group, "")
		if clean == "" {
			continue
		}
		if pad := 8 - len(clean)%8; pad != 8 {
			clean = strings.Repeat("0", pad) + clean
		}
		for i := 0; i+8 <= len(clean); i += 8 {
			v, err := strconv.ParseInt(clean[i:i+8], 2, 32)
			if err != nil {
				return "", transform.InputError("invalid binary group %q", clean[i:i+8])
			}
			sb.WriteRune(rune(v))
		}
	}
	return sb.String(), nil
}

// OctalEncode renders each rune as a space-separated 3-digit octal group.
func OctalEncode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	groups := make([]string, 0, len(input))
	for _, r := range input {
		s := strconv.FormatInt(int64(r), 8)
		if pad := 3 - len(s)%3; pad != 3 {
			s = strings.Repeat("0", pad) + s
		}
		groups = append(groups, s)
	}
	return strings.Join(groups, " "), nil
}

var nonOctal = regexp.MustCompile(`[^0-7]`)

// OctalDecode converts space-separated octal groups back to text.
func OctalDecode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	var sb strings.Builder
	for _, group := range strings.Fields(input) {
		clean := nonOctal.ReplaceAllString(group, "")
		if clean == "" {
			continue
		}
		if pad := 3 - len(clean)%3; pad != 3 {
			clean = strings.Repeat("0", pad) + clean
		}
		for i := 0; i+3 <= len(clean); i += 3 {
			v, err := strconv.ParseInt(clean[i:i+3], 8, 32)
			if err != nil {
				return "", transform.InputError("invalid octal group %q", clean[i:i+3])
			}
			sb.WriteRune(rune(v))
		}
	}
	return sb.String(), nil
}

// ASCIIEncode renders each rune as its decimal code point, space-separated.
func ASCIIEncode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	codes := make([]string, 0, len(input))
	for _, r := range input {
		codes = append(codes, strconv.Itoa(int(r)))
	}
	return strings.Join(codes, " "), nil
}

var decimalRuns = regexp.MustCompile(`\d+`)

const maxCodePoint = 0x10FFFF

// ASCIIDecode extracts every decimal run from the input and converts each
// in-range value back to its rune. Out-of-range values are skipped.
func ASCIIDecode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	var sb strings.Builder
	for _, numStr := range decimalRuns.FindAllString(input, -1) {
		code, err := strconv.Atoi(numStr)
		if err != nil || code > maxCodePoint {
			continue
		}
		sb.WriteRune(rune(code))
	}
	return sb.String(), nil
}
