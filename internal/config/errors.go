package config

import (
	"errors"
	"fmt"
)

var errUnknownLogLevel = errors.New("unknown log level")

// ParseError reports malformed TOML in a config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a syntactically valid config with an unusable
// value.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value %q for %s: %v", e.Value, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
