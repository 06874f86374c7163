// Package templates holds the built-in workbook templates and loads
// user-supplied ones.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

//go:embed *.yaml
var builtin embed.FS

// ErrUnknownTemplate indicates a template name with no built-in definition.
var ErrUnknownTemplate = errors.New("unknown template")

// Names returns the built-in template names in sorted order.
func Names() []string {
	entries, _ := fs.ReadDir(builtin, ".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Load returns the built-in template called name.
func Load(name string) (models.Template, error) {
	data, err := builtin.ReadFile(name + ".yaml")
	if err != nil {
		return models.Template{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTemplate, name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// LoadFile reads a template definition from a YAML file.
func LoadFile(filename string) (models.Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return models.Template{}, err
	}
	t, err := Parse(data)
	if err != nil {
		return models.Template{}, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// Parse decodes a template definition. Unknown fields are rejected so that
// typos surface instead of silently dropping a rule.
func Parse(data []byte) (models.Template, error) {
	var t models.Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return models.Template{}, fmt.Errorf("parse template: %w", err)
	}
	if t.Name == "" {
		return models.Template{}, errors.New("parse template: name is required")
	}
	if t.FileName == "" {
		t.FileName = t.Name + ".xlsx"
	}
	return t, nil
}
