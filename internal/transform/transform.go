// Package transform defines the contract every text transformation must
// satisfy: a named, categorized, pure string-to-string function with an
// optional input validator. Descriptors are created once at startup by the
// transformer packages and owned by the catalog thereafter.
package transform

import (
	"strconv"
	"strings"
)

// Category identifies the group a transformer belongs to.
// The set is closed; registration with any other value fails.
type Category string

// Available categories.
const (
	Encoding       Category = "Encoding"
	Hash           Category = "Hash"
	TextProcessing Category = "TextProcessing"
	Cipher         Category = "Cipher"
	Special        Category = "Special"
)

// Categories lists all valid categories in canonical order.
var Categories = []Category{Encoding, Hash, TextProcessing, Cipher, Special}

// Valid returns true if c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case Encoding, Hash, TextProcessing, Cipher, Special:
		return true
	default:
		return false
	}
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// CategoryFromName resolves a category name case-insensitively.
// Returns the zero Category and false if the name is not recognized.
func CategoryFromName(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Options carries per-request transformation options. The schema is defined
// per descriptor (a caesar cipher reads "shift", a sorter reads "order").
type Options map[string]string

// String returns the option value for key, or def if absent.
func (o Options) String(key, def string) string {
	if o == nil {
		return def
	}
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// Int returns the option value for key parsed as an integer, or def if the
// option is absent or does not parse.
func (o Options) Int(key string, def int) int {
	if o == nil {
		return def
	}
	v, ok := o[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns the option value for key parsed as a boolean, or def if the
// option is absent or does not parse.
func (o Options) Bool(key string, def bool) bool {
	if o == nil {
		return def
	}
	v, ok := o[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// TransformFunc is a pure transformation. It must not retain state between
// calls; an error return means the input was malformed for this algorithm.
type TransformFunc func(input string, opts Options) (string, error)

// ValidateFunc reports whether input is acceptable to the transformer.
// A nil ValidateFunc on a descriptor accepts all input.
type ValidateFunc func(input string) bool

// Descriptor is the registered identity and behavior of one transformation.
// It is immutable once registered and never destroyed during the process
// lifetime.
type Descriptor struct {
	// Name uniquely identifies the transformer within its category.
	Name string

	// Category is one of the fixed category set.
	Category Category

	// Transform performs the transformation.
	Transform TransformFunc

	// Validate pre-checks input. May be nil (accept everything).
	Validate ValidateFunc
}

// Accepts reports whether the descriptor's validator accepts input.
func (d *Descriptor) Accepts(input string) bool {
	if d.Validate == nil {
		return true
	}
	return d.Validate(input)
}

// NonEmpty is a ValidateFunc rejecting empty input. Shared by the
// transformers whose output is meaningless for the empty string.
func NonEmpty(input string) bool {
	return input != ""
}
