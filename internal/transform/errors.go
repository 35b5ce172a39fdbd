package transform

import (
	"errors"
	"fmt"
)

// Shared error taxonomy for registration and transformation.
var (
	// ErrDuplicateName indicates a (category, name) pair is already registered.
	ErrDuplicateName = errors.New("transformer name already registered")

	// ErrUnknownCategory indicates a category outside the fixed set.
	ErrUnknownCategory = errors.New("unknown transformer category")

	// ErrEmptyName indicates a descriptor with no name.
	ErrEmptyName = errors.New("transformer name is empty")

	// ErrNilTransform indicates a descriptor without a transform function.
	ErrNilTransform = errors.New("transformer has no transform function")

	// ErrNotFound indicates a lookup for an unregistered transformer.
	ErrNotFound = errors.New("transformer not found")

	// ErrMalformedInput indicates input an algorithm cannot process.
	ErrMalformedInput = errors.New("malformed input")
)

// RegistrationError wraps a registration failure with the descriptor
// identity that caused it. Registration errors are fatal only to the single
// module being registered; the rest of the catalog still loads.
type RegistrationError struct {
	Name     string
	Category Category
	Err      error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s/%s: %v", e.Category, e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// InputError wraps ErrMalformedInput with algorithm-specific detail.
func InputError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedInput}, args...)...)
}
