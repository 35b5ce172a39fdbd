package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dshills/transmute/internal/transform"
)

// ToUpper uppercases the whole input.
func ToUpper(input string, _ transform.Options) (string, error) {
	return strings.ToUpper(input), nil
}

// ToLower lowercases the whole input.
func ToLower(input string, _ transform.Options) (string, error) {
	return strings.ToLower(input), nil
}

// ToTitle capitalizes the first letter of every alphabetic run and
// lowercases the rest.
func ToTitle(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	sb.Grow(len(input))
	prevLetter := false
	for _, r := range input {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}
	return sb.String(), nil
}

// SwapCase inverts the case of every character.
func SwapCase(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	sb.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsUpper(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			sb.WriteRune(unicode.ToUpper(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// ReverseText reverses the input rune by rune.
func ReverseText(input string, _ transform.Options) (string, error) {
	runes := []rune(input)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

// splitWords breaks input into words at separators (space, underscore,
// hyphen) and at case boundaries, so camelCase, PascalCase, snake_case,
// kebab-case, and plain sentences all split the same way. Acronym runs stay
// together: "HTTPServer" splits into "HTTP", "Server".
func splitWords(input string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(input)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToCamel converts any word style to camelCase.
func ToCamel(input string, _ transform.Options) (string, error) {
	words := splitWords(input)
	if len(words) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		sb.WriteString(capitalize(w))
	}
	return sb.String(), nil
}

// ToPascal converts any word style to PascalCase.
func ToPascal(input string, _ transform.Options) (string, error) {
	var sb strings.Builder
	for _, w := range splitWords(input) {
		sb.WriteString(capitalize(w))
	}
	return sb.String(), nil
}

var (
	lowerUpperBoundary  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	hyphenSpaceRuns     = regexp.MustCompile(`[\-\s]+`)
	underscoreSpaceRuns = regexp.MustCompile(`[_\s]+`)
)

// ToSnake converts any word style to snake_case.
func ToSnake(input string, _ transform.Options) (string, error) {
	out := lowerUpperBoundary.ReplaceAllString(input, "${1}_${2}")
	out = hyphenSpaceRuns.ReplaceAllString(out, "_")
	return strings.ToLower(out), nil
}

// ToKebab converts any word style to kebab-case.
func ToKebab(input string, _ transform.Options) (string, error) {
	out := lowerUpperBoundary.ReplaceAllString(input, "${1}-${2}")
	out = underscoreSpaceRuns.ReplaceAllString(out, "-")
	return strings.ToLower(out), nil
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
