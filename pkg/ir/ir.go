package ir

// Kind represents the kind of a schema type
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
	KindRef     Kind = "ref"
)

// TypeSpec is a resolved, language-agnostic schema type
type TypeSpec struct {
	Kind   Kind
	Format string

	// Array items
	Items *TypeSpec

	// Map values (keys are always strings)
	Values *TypeSpec

	// Ref is a component schema name
	Ref string
}

// Refs returns every component name referenced by the type, including nested ones
func (t TypeSpec) Refs() []string {
	var out []string
	switch t.Kind {
	case KindRef:
		out = append(out, t.Ref)
	case KindArray:
		if t.Items != nil {
			out = append(out, t.Items.Refs()...)
		}
	case KindMap:
		if t.Values != nil {
			out = append(out, t.Values.Refs()...)
		}
	}
	return out
}

// Inclusion is the serialization inclusion policy of a model
type Inclusion string

const (
	IncludeAlways   Inclusion = "always"
	IncludeNonNull  Inclusion = "non_null"
	IncludeNonEmpty Inclusion = "non_empty"
)

// Field is a named field of a model schema
type Field struct {
	Name        string
	Type        TypeSpec
	Required    bool
	Description string
	// Example is typed to match Type; nil when absent
	Example any
}

// ModelSchema describes a declared record type
type ModelSchema struct {
	Name        string
	Description string
	// Inclusion controls omission of empty values in serialized instances.
	// It never changes which fields are required.
	Inclusion Inclusion
	Fields    []Field
}

// Location is where a parameter is carried
type Location string

const (
	InQuery  Location = "query"
	InHeader Location = "header"
	InPath   Location = "path"
)

// ParameterDescriptor describes one operation parameter
type ParameterDescriptor struct {
	Name        string
	In          Location
	Required    bool
	Type        TypeSpec
	Example     any
	Description string
}

// ContentShape is the shape of a response body
type ContentShape string

const (
	ShapeSchema ContentShape = "schema"
	ShapeArray  ContentShape = "array"
)

// ContentDescriptor is a media type plus the schema of the body.
// For ShapeArray, Schema describes the array items.
type ContentDescriptor struct {
	MediaType string
	Shape     ContentShape
	Schema    TypeSpec
}

// ResponseDescriptor describes one response of an operation
type ResponseDescriptor struct {
	// Code is "default" or a three digit status code
	Code        string
	Description string
	// Content is nil for responses without a body
	Content *ContentDescriptor
}

// OperationDescriptor represents a single API operation (path + method)
type OperationDescriptor struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []ParameterDescriptor
	Responses   []ResponseDescriptor
	// Handler identifies the declaring handler, e.g. "SettlementsSearcherController.search"
	Handler string
	// Source is the name of the scanned source the handler came from
	Source string
}

// Refs returns component names referenced by parameters and responses
func (op OperationDescriptor) Refs() []string {
	var out []string
	for _, p := range op.Parameters {
		out = append(out, p.Type.Refs()...)
	}
	for _, r := range op.Responses {
		if r.Content != nil {
			out = append(out, r.Content.Schema.Refs()...)
		}
	}
	return out
}

// Server is a top-level server entry
type Server struct {
	URL         string
	Description string
}

// PathItem groups operations under one path, in canonical method order
type PathItem struct {
	Path       string
	Operations []OperationDescriptor
}

// Document is the assembled, read-only result of one generation run
type Document struct {
	Servers []Server
	Paths   []PathItem
	// Schemas is the component registry, ordered by name
	Schemas []ModelSchema
	// Tags lists every operation tag, sorted
	Tags []string
}

// Operations returns every operation of the document in path order
func (d Document) Operations() []OperationDescriptor {
	var out []OperationDescriptor
	for _, p := range d.Paths {
		out = append(out, p.Operations...)
	}
	return out
}
