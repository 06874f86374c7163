package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownTab indicates a tab name that is not registered.
var ErrUnknownTab = errors.New("unknown tab")

// ErrHeaderNotFound indicates a header that is absent from a tab.
var ErrHeaderNotFound = errors.New("header not found")

// UnknownTabError reports a lookup of an unregistered tab.
type UnknownTabError struct {
	Tab string
}

func (e *UnknownTabError) Error() string {
	return fmt.Sprintf("unknown tab %q", e.Tab)
}

func (e *UnknownTabError) Unwrap() error {
	return ErrUnknownTab
}

// HeaderNotFoundError reports a header that does not exist in a tab.
type HeaderNotFoundError struct {
	Tab    string
	Header string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header %q not found in tab %q", e.Header, e.Tab)
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// ValidationIssue is one finding produced by schema validation.
type ValidationIssue struct {
	Tab     string `json:"tab"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Tab, i.Message)
	}
	return fmt.Sprintf("%s.%s: %s", i.Tab, i.Field, i.Message)
}
