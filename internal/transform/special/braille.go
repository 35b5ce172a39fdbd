package special

import (
	"strings"
	"unicode"

	"github.com/dshills/transmute/internal/transform"
)

// Unicode Braille Patterns, Unified English Braille letter cells. Uppercase
// input folds to the same cells; digits are written as the number indicator
// followed by the a-j cell.
var brailleByRune = map[rune]rune{
	'a': '⠁', 'b': '⠃', 'c': '⠉', 'd': '⠙', 'e': '⠑',
	'f': '⠋', 'g': '⠛', 'h': '⠓', 'i': '⠊', 'j': '⠚',
	'k': '⠅', 'l': '⠇', 'm': '⠍', 'n': '⠝', 'o': '⠕',
	'p': '⠏', 'q': '⠟', 'r': '⠗', 's': '⠎', 't': '⠞',
	'u': '⠥', 'v': '⠧', 'w': '⠺', 'x': '⠭', 'y': '⠽',
	'z': '⠵',
	' ': '⠀', '.': '⠲', ',': '⠂', '?': '⠦', '!': '⠖',
	'\'': '⠄', '-': '⠤', ':': '⠒', ';': '⠆',
}

// brailleNumberIndicator precedes digit cells.
const brailleNumberIndicator = '⠼'

// digitCells maps '0'-'9' to the j,a-i cells.
var digitCells = map[rune]rune{
	'1': '⠁', '2': '⠃', '3': '⠉', '4': '⠙', '5': '⠑',
	'6': '⠋', '7': '⠛', '8': '⠓', '9': '⠊', '0': '⠚',
}

var (
	brailleToRune = func() map[rune]rune {
		m := make(map[rune]rune, len(brailleByRune))
		for r, cell := range brailleByRune {
			m[cell] = r
		}
		return m
	}()
	cellToDigit = func() map[rune]rune {
		m := make(map[rune]rune, len(digitCells))
		for d, cell := range digitCells {
			m[cell] = d
		}
		return m
	}()
)

// BrailleEncode converts text to Unicode Braille cells. Characters without
// a cell pass through unchanged.
func BrailleEncode(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	numberMode := false
	for _, r := range input {
		if r >= '0' && r <= '9' {
			if !numberMode {
				sb.WriteRune(brailleNumberIndicator)
				numberMode = true
			}
			sb.WriteRune(digitCells[r])
			continue
		}
		numberMode = false
		if cell, ok := brailleByRune[unicode.ToLower(r)]; ok {
			sb.WriteRune(cell)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// BrailleDecode converts Braille cells back to lowercase text. A number
// indicator switches the following cells to digits until a cell with no
// digit reading appears.
func BrailleDecode(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	numberMode := false
	for _, r := range input {
		if r == brailleNumberIndicator {
			numberMode = true
			continue
		}
		if numberMode {
			if d, ok := cellToDigit[r]; ok {
				sb.WriteRune(d)
				continue
			}
			numberMode = false
		}
		if ch, ok := brailleToRune[r]; ok {
			sb.WriteRune(ch)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}
