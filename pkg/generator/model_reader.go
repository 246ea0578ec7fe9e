package generator

import (
	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// ReadModel converts a declared record type into a ModelSchema. Nested types must be
// primitives, containers of them, or names present in known.
func ReadModel(m decl.Model, known map[string]bool) (ir.ModelSchema, error) {
	if m.Name == "" {
		return ir.ModelSchema{}, declErr(ErrInvalidDeclaration, "model", "model name is empty")
	}
	schema := ir.ModelSchema{
		Name:        m.Name,
		Description: m.Description,
		Inclusion:   ir.IncludeAlways,
		Fields:      make([]ir.Field, 0, len(m.Fields)),
	}
	if m.Include != "" {
		schema.Inclusion = ir.Inclusion(m.Include)
	}

	seen := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		subject := "field " + m.Name + "." + f.Name
		if f.Name == "" {
			return ir.ModelSchema{}, declErr(ErrInvalidDeclaration, "model "+m.Name, "field name is empty")
		}
		if seen[f.Name] {
			return ir.ModelSchema{}, declErr(ErrInvalidDeclaration, subject, "field declared twice")
		}
		seen[f.Name] = true

		t, err := resolveNativeType(f.Type, known, refsKnownOnly)
		if err != nil {
			return ir.ModelSchema{}, withSubject(err, subject)
		}
		example, err := coerceExample(t, f.Example)
		if err != nil {
			return ir.ModelSchema{}, declErr(ErrInvalidDeclaration, subject, "%v", err)
		}
		schema.Fields = append(schema.Fields, ir.Field{
			Name:        f.Name,
			Type:        t,
			Required:    f.Required,
			Description: f.Description,
			Example:     example,
		})
	}
	return schema, nil
}
