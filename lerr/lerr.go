// SPDX-License-Identifier: Unlicense OR MIT

// Package lerr defines the layout engine's error kinds (spec.md §7).
// The teacher repo never reaches for a third-party errors package for
// its own error values, so this follows the same plain
// sentinel-plus-fmt.Errorf convention rather than importing one.
package lerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is to test for a kind after a
// wrapped error crosses an API boundary.
var (
	// ShapingFailed means a Provider could not shape a character. The
	// invalid range responsible for the request is left intact so a
	// caller can retry after remediation (e.g. loading a fallback
	// font) without redoing unrelated work.
	ShapingFailed = errors.New("lerr: shaping failed")

	// InvalidArgument means a caller passed a programmer error: a
	// negative width or height, negative or reversed selection
	// indices, or a document or provider that broke its contract (no
	// font for a character, a glyph count that does not match the
	// text). These fail fast rather than degrading. A layout without
	// a set width is not reported as an error: its lines are simply
	// not wrapped.
	InvalidArgument = errors.New("lerr: invalid argument")

	// BatchStateConflict means a layout's Batch was mutated by
	// someone other than the layout between an update and a draw.
	BatchStateConflict = errors.New("lerr: batch state conflict")
)

// Shaping wraps err (or a description if err is nil) as ShapingFailed
// for the given character range.
func Shaping(start, end int, err error) error {
	if err == nil {
		return fmt.Errorf("%w: shaping [%d,%d)", ShapingFailed, start, end)
	}
	return fmt.Errorf("%w: [%d,%d): %v", ShapingFailed, start, end, err)
}

// Invalid wraps a formatted message as InvalidArgument.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", InvalidArgument, fmt.Sprintf(format, args...))
}
