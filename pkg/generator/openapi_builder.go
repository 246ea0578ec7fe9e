package generator

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

const (
	schemaRefPrefix  = "#/components/schemas/"
	inclusionExtName = "x-json-include"

	// DefaultOpenAPIVersion is written when no version is configured
	DefaultOpenAPIVersion = "3.0.3"
)

// DocumentInfo is the top-level metadata of the generated document
type DocumentInfo struct {
	OpenAPI     string
	Title       string
	Version     string
	Description string
}

// BuildOpenAPI converts an assembled Document into the kin-openapi object model.
// References carry their resolved values so the result validates without a loader.
func BuildOpenAPI(doc ir.Document, info DocumentInfo) *openapi3.T {
	if info.OpenAPI == "" {
		info.OpenAPI = DefaultOpenAPIVersion
	}
	out := &openapi3.T{
		OpenAPI: info.OpenAPI,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	for _, s := range doc.Servers {
		out.Servers = append(out.Servers, &openapi3.Server{URL: s.URL, Description: s.Description})
	}
	for _, t := range doc.Tags {
		out.Tags = append(out.Tags, &openapi3.Tag{Name: t})
	}

	// Allocate every component first so references between models, including cycles,
	// point at the final values.
	components := make(map[string]*openapi3.Schema, len(doc.Schemas))
	for _, m := range doc.Schemas {
		components[m.Name] = openapi3.NewObjectSchema()
	}
	b := schemaBuilder{components: components}
	for _, m := range doc.Schemas {
		b.fillModel(components[m.Name], m)
		out.Components.Schemas[m.Name] = &openapi3.SchemaRef{Value: components[m.Name]}
	}

	for _, p := range doc.Paths {
		item := &openapi3.PathItem{}
		for _, op := range p.Operations {
			item.SetOperation(op.Method, b.operation(op))
		}
		out.Paths.Set(p.Path, item)
	}
	return out
}

type schemaBuilder struct {
	components map[string]*openapi3.Schema
}

func (b schemaBuilder) fillModel(s *openapi3.Schema, m ir.ModelSchema) {
	s.Description = m.Description
	for _, f := range m.Fields {
		ref := b.schemaRef(f.Type)
		if ref.Ref == "" {
			ref.Value.Description = f.Description
			ref.Value.Example = f.Example
		}
		s.Properties[f.Name] = ref
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	if m.Inclusion != "" && m.Inclusion != ir.IncludeAlways {
		s.Extensions = map[string]any{inclusionExtName: string(m.Inclusion)}
	}
}

func (b schemaBuilder) schemaRef(t ir.TypeSpec) *openapi3.SchemaRef {
	var s *openapi3.Schema
	switch t.Kind {
	case ir.KindRef:
		return openapi3.NewSchemaRef(schemaRefPrefix+t.Ref, b.components[t.Ref])
	case ir.KindString:
		s = openapi3.NewStringSchema()
	case ir.KindInteger:
		s = openapi3.NewIntegerSchema()
	case ir.KindNumber:
		s = openapi3.NewFloat64Schema()
	case ir.KindBoolean:
		s = openapi3.NewBoolSchema()
	case ir.KindArray:
		s = openapi3.NewArraySchema()
		if t.Items != nil {
			s.Items = b.schemaRef(*t.Items)
		}
	case ir.KindMap:
		s = openapi3.NewObjectSchema()
		if t.Values != nil {
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: b.schemaRef(*t.Values)}
		}
	default:
		s = &openapi3.Schema{}
	}
	s.Format = t.Format
	return openapi3.NewSchemaRef("", s)
}

func (b schemaBuilder) operation(op ir.OperationDescriptor) *openapi3.Operation {
	o := openapi3.NewOperation()
	o.OperationID = op.OperationID
	o.Summary = op.Summary
	o.Description = op.Description
	o.Tags = op.Tags
	o.Deprecated = op.Deprecated

	for _, p := range op.Parameters {
		o.Parameters = append(o.Parameters, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        p.Name,
			In:          string(p.In),
			Description: p.Description,
			Required:    p.Required,
			Schema:      b.schemaRef(p.Type),
			Example:     p.Example,
		}})
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(op.Responses))
	for _, r := range op.Responses {
		resp := openapi3.NewResponse().WithDescription(r.Description)
		if r.Content != nil {
			ref := b.schemaRef(r.Content.Schema)
			if r.Content.Shape == ir.ShapeArray {
				arr := openapi3.NewArraySchema()
				arr.Items = ref
				ref = openapi3.NewSchemaRef("", arr)
			}
			resp.WithContent(openapi3.NewContentWithSchemaRef(ref, []string{r.Content.MediaType}))
		}
		opts = append(opts, openapi3.WithName(r.Code, resp))
	}
	o.Responses = openapi3.NewResponses(opts...)
	return o
}
