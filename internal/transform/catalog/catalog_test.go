package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/transmute/internal/transform"
)

func identity(input string, _ transform.Options) (string, error) {
	return input, nil
}

func desc(name string, cat transform.Category) *transform.Descriptor {
	return &transform.Descriptor{Name: name, Category: cat, Transform: identity}
}

func TestRegisterAndLookup(t *testing.T) {
	c := New()
	d := desc("base64_encode", transform.Encoding)

	if err := c.Register(d); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := c.Lookup("base64_encode")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != d {
		t.Errorf("Lookup() returned a different descriptor")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	c := New()
	if err := c.Register(desc("rot13", transform.Cipher)); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := c.Register(desc("rot13", transform.Cipher))
	if !errors.Is(err, transform.ErrDuplicateName) {
		t.Fatalf("duplicate Register() error = %v, want ErrDuplicateName", err)
	}

	// Failure must not mutate state.
	if got := c.Count(); got != 1 {
		t.Errorf("Count() after failed register = %d, want 1", got)
	}
	if got := len(c.Search("rot13")); got != 1 {
		t.Errorf("Search(rot13) matches = %d, want 1", got)
	}
}

func TestRegisterSameNameDifferentCategory(t *testing.T) {
	c := New()
	if err := c.Register(desc("reverse", transform.TextProcessing)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	// Uniqueness is per (category, name); the same name may appear in
	// another category.
	if err := c.Register(desc("reverse", transform.Special)); err != nil {
		t.Errorf("Register() in another category error = %v", err)
	}
}

func TestRegisterUnknownCategory(t *testing.T) {
	c := New()
	err := c.Register(desc("x", transform.Category("Audio")))
	if !errors.Is(err, transform.ErrUnknownCategory) {
		t.Errorf("Register() error = %v, want ErrUnknownCategory", err)
	}
	if c.Count() != 0 {
		t.Errorf("Count() = %d, want 0", c.Count())
	}
}

func TestRegisterIncompleteDescriptor(t *testing.T) {
	c := New()
	if err := c.Register(&transform.Descriptor{Category: transform.Hash, Transform: identity}); !errors.Is(err, transform.ErrEmptyName) {
		t.Errorf("empty name error = %v, want ErrEmptyName", err)
	}
	if err := c.Register(&transform.Descriptor{Name: "md5", Category: transform.Hash}); !errors.Is(err, transform.ErrNilTransform) {
		t.Errorf("nil transform error = %v, want ErrNilTransform", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := New()
	if _, err := c.Lookup("ghost"); !errors.Is(err, transform.ErrNotFound) {
		t.Errorf("Lookup(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestCategoriesFirstRegistrationOrder(t *testing.T) {
	c := New()
	must := func(d *transform.Descriptor) {
		t.Helper()
		if err := c.Register(d); err != nil {
			t.Fatalf("Register(%s) error = %v", d.Name, err)
		}
	}

	must(desc("md5", transform.Hash))
	must(desc("base64_encode", transform.Encoding))
	must(desc("sha256", transform.Hash))
	must(desc("rot13", transform.Cipher))

	got := c.Categories()
	want := []transform.Category{transform.Hash, transform.Encoding, transform.Cipher}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSearchEmptyQueryReturnsAllInOrder(t *testing.T) {
	c := New()
	names := []string{"base64_encode", "md5", "rot13", "morse_encode"}
	cats := []transform.Category{transform.Encoding, transform.Hash, transform.Cipher, transform.Special}
	for i, name := range names {
		if err := c.Register(desc(name, cats[i])); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	got := c.Search("")
	if len(got) != len(names) {
		t.Fatalf("Search(\"\") returned %d descriptors, want %d", len(got), len(names))
	}
	for i, d := range got {
		if d.Name != names[i] {
			t.Errorf("Search(\"\")[%d] = %s, want %s", i, d.Name, names[i])
		}
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	c := New()
	for _, d := range []*transform.Descriptor{
		desc("base64_encode", transform.Encoding),
		desc("base64_decode", transform.Encoding),
		desc("md5", transform.Hash),
		desc("caesar", transform.Cipher),
	} {
		if err := c.Register(d); err != nil {
			t.Fatalf("Register(%s) error = %v", d.Name, err)
		}
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"BASE64", []string{"base64_encode", "base64_decode"}},
		{"decode", []string{"base64_decode"}},
		// Category names match too.
		{"cipher", []string{"caesar"}},
		{"enc", []string{"base64_encode", "base64_decode"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		got := c.Search(tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("Search(%q) returned %d results, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, d := range got {
			if d.Name != tt.want[i] {
				t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, d.Name, tt.want[i])
			}
		}
	}
}

func TestSearchQueryMatchingEncodingCategory(t *testing.T) {
	c := New()
	if err := c.Register(desc("url_encode", transform.Encoding)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	// "encoding" matches by category even when the name does not contain it.
	got := c.Search("encoding")
	if len(got) != 1 || !strings.EqualFold(string(got[0].Category), "encoding") {
		t.Errorf("Search(encoding) = %v, want the Encoding descriptor", got)
	}
}
