package formula

import (
	"errors"
	"fmt"
)

// ErrUnresolvedReference indicates an operand built from a column that was never resolved.
var ErrUnresolvedReference = errors.New("unresolved reference")

// ErrInvalidSpec indicates a formula spec that cannot produce formula text.
var ErrInvalidSpec = errors.New("invalid formula spec")

// UnresolvedReferenceError names the tab and header an operand pointed at.
type UnresolvedReferenceError struct {
	Tab    string
	Header string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Header == "" && e.Tab == "" {
		return "operand references an unresolved column"
	}
	return fmt.Sprintf("operand references unresolved column %q in tab %q", e.Header, e.Tab)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// SpecError reports a missing or malformed field of a formula spec.
type SpecError struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("%s formula: %s: %s", e.Kind, e.Field, e.Msg)
}

func (e *SpecError) Unwrap() error {
	return ErrInvalidSpec
}
