package textproc

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/transmute/internal/transform"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// RemoveWhitespace deletes every whitespace character.
func RemoveWhitespace(input string, _ transform.Options) (string, error) {
	return whitespaceRuns.ReplaceAllString(input, ""), nil
}

// RemoveExtraSpaces collapses whitespace runs to single spaces and trims
// the ends.
func RemoveExtraSpaces(input string, _ transform.Options) (string, error) {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(input, " ")), nil
}

var digitRuns = regexp.MustCompile(`\d+`)

// RemoveNumbers deletes every decimal digit run.
func RemoveNumbers(input string, _ transform.Options) (string, error) {
	return digitRuns.ReplaceAllString(input, ""), nil
}

// asciiPunctuation matches Python's string.punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// RemovePunctuation deletes ASCII punctuation characters.
func RemovePunctuation(input string, _ transform.Options) (string, error) {
	return strings.Map(func(r rune) rune {
		if r < 128 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, input), nil
}

// RemoveBOM strips a leading byte order mark.
func RemoveBOM(input string, _ transform.Options) (string, error) {
	return strings.TrimPrefix(input, "\uFEFF"), nil
}

// TrimLines trims leading and trailing whitespace from each line.
func TrimLines(input string, _ transform.Options) (string, error) {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n"), nil
}

// RemoveDuplicateLines drops repeated lines, keeping the first occurrence
// and its position.
func RemoveDuplicateLines(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	lines := strings.Split(input, "\n")
	seen := make(map[string]struct{}, len(lines))
	unique := lines[:0]
	for _, line := range lines {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		unique = append(unique, line)
	}
	return strings.Join(unique, "\n"), nil
}

// SortLines sorts lines lexicographically. The "order" option flips to
// descending when set to "desc".
func SortLines(input string, opts transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	lines := strings.Split(input, "\n")
	sort.Strings(lines)
	if opts.String("order", "asc") == "desc" {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return strings.Join(lines, "\n"), nil
}

// ReverseLines reverses the line order.
func ReverseLines(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	lines := strings.Split(input, "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n"), nil
}

// ShuffleLines permutes the lines randomly.
func ShuffleLines(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	lines := strings.Split(input, "\n")
	rand.Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})
	return strings.Join(lines, "\n"), nil
}

// NumberLines prefixes each line with its 1-based number.
func NumberLines(input string, _ transform.Options) (string, error) {
	lines := splitLines(input)
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%d: %s", i+1, line)
	}
	return strings.Join(lines, "\n"), nil
}

// CountCharacters reports the rune count.
func CountCharacters(input string, _ transform.Options) (string, error) {
	return fmt.Sprintf("Character count: %d", utf8.RuneCountInString(input)), nil
}

// CountWords reports the whitespace-separated word count.
func CountWords(input string, _ transform.Options) (string, error) {
	return fmt.Sprintf("Word count: %d", len(strings.Fields(input))), nil
}

// CountLines reports the line count. A trailing newline does not add an
// empty final line.
func CountLines(input string, _ transform.Options) (string, error) {
	return fmt.Sprintf("Line count: %d", len(splitLines(input))), nil
}

// splitLines splits on newlines without a phantom empty line after a
// trailing newline.
func splitLines(input string) []string {
	if input == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(input, "\n"), "\n")
}
