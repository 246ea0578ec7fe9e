package generator

import (
	"reflect"
	"sort"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// Registry is the component registry of one generation run. It is created fresh for
// each run and handed to Assemble; nothing about it is process-wide.
type Registry struct {
	schemas map[string]ir.ModelSchema
	owners  map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]ir.ModelSchema),
		owners:  make(map[string]string),
	}
}

// Register adds a schema declared by source. Registering the same name again is
// accepted only when the field sets are identical; the first registration is kept.
func (r *Registry) Register(source string, m ir.ModelSchema) error {
	existing, ok := r.schemas[m.Name]
	if !ok {
		r.schemas[m.Name] = m
		r.owners[m.Name] = source
		return nil
	}
	if !sameFieldSet(existing.Fields, m.Fields) {
		return &DeclarationError{
			Kind:    ErrSchemaConflict,
			Source:  source,
			Subject: "schema " + m.Name,
			Detail:  "field set differs from the one declared by source " + r.owners[m.Name],
		}
	}
	return nil
}

// Lookup returns the schema registered under name
func (r *Registry) Lookup(name string) (ir.ModelSchema, bool) {
	m, ok := r.schemas[name]
	return m, ok
}

// Names returns the registered schema names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Schemas returns the registered schemas ordered by name
func (r *Registry) Schemas() []ir.ModelSchema {
	names := r.Names()
	out := make([]ir.ModelSchema, 0, len(names))
	for _, n := range names {
		out = append(out, r.schemas[n])
	}
	return out
}

// sameFieldSet compares fields independent of declaration order
func sameFieldSet(a, b []ir.Field) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(sortedFields(a), sortedFields(b))
}

func sortedFields(fields []ir.Field) []ir.Field {
	out := make([]ir.Field, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
