package special

import (
	"strings"

	"github.com/dshills/transmute/internal/transform"
)

// International Morse code. A space between words becomes " / ".
var morseByRune = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.", '!': "-.-.--",
	'/': "-..-.", '(': "-.--.", ')': "-.--.-", '&': ".-...", ':': "---...",
	';': "-.-.-.", '=': "-...-", '+': ".-.-.", '-': "-....-", '_': "..--.-",
	'"': ".-..-.", '$': "...-..-", '@': ".--.-.",
}

var morseToRune = func() map[string]rune {
	m := make(map[string]rune, len(morseByRune))
	for r, code := range morseByRune {
		m[code] = r
	}
	return m
}()

// MorseEncode converts text to Morse code: letters separated by spaces,
// words by " / ". Characters without a Morse equivalent pass through.
func MorseEncode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	words := strings.Split(strings.ToUpper(input), " ")
	out := make([]string, 0, len(words))
	for _, word := range words {
		codes := make([]string, 0, len(word))
		for _, r := range word {
			if code, ok := morseByRune[r]; ok {
				codes = append(codes, code)
			} else {
				codes = append(codes, string(r))
			}
		}
		out = append(out, strings.Join(codes, " "))
	}
	return strings.Join(out, " / "), nil
}

// MorseDecode converts Morse code back to text. Unknown tokens pass
// through unchanged.
func MorseDecode(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	words := strings.Split(input, " / ")
	out := make([]string, 0, len(words))
	for _, word := range words {
		var sb strings.Builder
		for _, token := range strings.Split(word, " ") {
			if token == "" {
				continue
			}
			if r, ok := morseToRune[token]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteString(token)
			}
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, " "), nil
}
