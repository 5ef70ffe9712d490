// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"fmt"
	"strings"
)

// SchemaViolation is returned when the input fails the structural validation
// that runs before parsing.
type SchemaViolation struct {
	Path   string
	Line   int
	Column int
	Reason string
}

func (e *SchemaViolation) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: document failed validation: %s", e.Path, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: document failed validation: %s", e.Path, e.Reason)
}

// StructuralParseError is returned when a tag appears where the grammar does
// not allow it.
type StructuralParseError struct {
	// Offending tag, e.g. "</date>"
	Found string
	// Tags that would have been accepted instead
	Expected []string
	Line     int
	Column   int
	Reason   string
}

func (e *StructuralParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d:%d: unexpected %s", e.Line, e.Column, e.Found)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expected %s", strings.Join(e.Expected, " or "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	return b.String()
}

func unexpected(ev Event, reason string, expected ...string) error {
	return &StructuralParseError{
		Found:    ev.Tag(),
		Expected: expected,
		Line:     ev.Line,
		Column:   ev.Column,
		Reason:   reason,
	}
}

func invalid(ev Event, reason string) error {
	return &StructuralParseError{
		Found:  ev.Tag(),
		Line:   ev.Line,
		Column: ev.Column,
		Reason: reason,
	}
}

// UnknownGroupError is returned when a permission group token cannot be
// resolved against the directory or the system groups.
type UnknownGroupError struct {
	Group  string
	Reason string
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("group %q is not known: %s", e.Group, e.Reason)
}
