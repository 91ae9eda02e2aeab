package wfe

import (
	"errors"
	"fmt"
)

// ErrConfig marks a fatal configuration mistake: missing required
// parameters, out-of-range values, or mismatched array sizes. These are
// programming errors and are never silently coerced.
var ErrConfig = errors.New("wfe: invalid configuration")

// ErrUnitMismatch marks inconsistent physical units between PSD term
// parameters. It is distinct from ErrConfig so callers can tell a bad
// physics setup apart from other bad inputs.
var ErrUnitMismatch = errors.New("wfe: inconsistent physical units")

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

func unitErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnitMismatch, fmt.Sprintf(format, args...))
}
