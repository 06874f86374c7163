// Package schema holds tab schemas and resolves header names to columns.
package schema

import (
	"fmt"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Registry is the read-only set of tab schemas for one workbook.
type Registry struct {
	order []string
	tabs  map[string]models.TabSchema
	dups  []string
}

// NewRegistry copies the given schemas into a registry. Duplicate tab names
// keep the first declaration and are reported by Validate.
func NewRegistry(tabs ...models.TabSchema) *Registry {
	r := &Registry{tabs: make(map[string]models.TabSchema, len(tabs))}
	for _, t := range tabs {
		if _, ok := r.tabs[t.Name]; ok {
			r.dups = append(r.dups, t.Name)
			continue
		}
		r.tabs[t.Name] = t.Clone()
		r.order = append(r.order, t.Name)
	}
	return r
}

// Get returns a copy of the named tab schema.
func (r *Registry) Get(name string) (models.TabSchema, error) {
	t, ok := r.tabs[name]
	if !ok {
		return models.TabSchema{}, &UnknownTabError{Tab: name}
	}
	return t.Clone(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tabs[name]
	return ok
}

// Names returns tab names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve looks up header in the named tab. It reads the registered schema on
// every call and never memoizes the result.
func (r *Registry) Resolve(tab, header string) (models.ColumnRef, error) {
	t, ok := r.tabs[tab]
	if !ok {
		return models.ColumnRef{}, &UnknownTabError{Tab: tab}
	}
	return Resolve(t, header)
}

// Validate checks every registered tab and returns all findings.
func (r *Registry) Validate() []ValidationIssue {
	var issues []ValidationIssue
	for _, name := range r.dups {
		issues = append(issues, ValidationIssue{
			Tab:     name,
			Field:   "name",
			Message: "duplicate tab name",
		})
	}
	for _, name := range r.order {
		issues = append(issues, Validate(r.tabs[name])...)
	}
	return issues
}

// Validate checks one tab schema. It never fails; problems are returned as
// issues so callers can report them together.
func Validate(s models.TabSchema) []ValidationIssue {
	var issues []ValidationIssue
	add := func(field, format string, args ...any) {
		issues = append(issues, ValidationIssue{Tab: s.Name, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if s.Name == "" {
		add("name", "tab name is empty")
	}
	if s.HeaderRow <= 0 {
		add("header_row", "must be positive, got %d", s.HeaderRow)
	}
	if len(s.Headers) == 0 {
		add("headers", "no headers declared")
	}

	seen := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		if h == "" {
			add("headers", "header %d is empty", i+1)
			continue
		}
		if first, ok := seen[h]; ok {
			add("headers", "duplicate header %q at positions %d and %d", h, first, i+1)
			continue
		}
		seen[h] = i + 1
	}
	return issues
}
