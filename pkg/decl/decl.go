// Package decl holds the declared metadata records a framework introspection layer
// hands to the generator: controllers, their route handlers and the record types they
// return. Each record mirrors one annotation of the scanned source and is read once.
package decl

// Source is one scanned controller
type Source struct {
	Name     string    `yaml:"name" json:"name" validate:"required"`
	Servers  []Server  `yaml:"servers,omitempty" json:"servers,omitempty" validate:"dive"`
	Models   []Model   `yaml:"models,omitempty" json:"models,omitempty" validate:"dive"`
	Handlers []Handler `yaml:"handlers,omitempty" json:"handlers,omitempty" validate:"dive"`
}

// Server mirrors a server annotation on a controller
type Server struct {
	URL         string `yaml:"url" json:"url" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Model is a declared record type
type Model struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Include is the serialization inclusion policy: always, non_null or non_empty
	Include string  `yaml:"include,omitempty" json:"include,omitempty" validate:"omitempty,oneof=always non_null non_empty"`
	Fields  []Field `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
}

// Field is a declared field of a record type
type Field struct {
	Name string `yaml:"name" json:"name"`
	// Type is the native type name, e.g. "String", "List<String>" or a model name
	Type        string `yaml:"type" json:"type"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Example     string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Handler is one route handler together with its route binding
type Handler struct {
	// Name is the controller method name
	Name string `yaml:"name" json:"name" validate:"required"`
	// Controller defaults to the owning source name
	Controller string `yaml:"controller,omitempty" json:"controller,omitempty"`
	// Method and Path come from the route table. Path accepts Play (":id", "$id<re>", "*rest")
	// and OpenAPI ("{id}") segment syntax.
	Method     string           `yaml:"method,omitempty" json:"method,omitempty"`
	Path       string           `yaml:"path" json:"path" validate:"required"`
	Operation  *Operation       `yaml:"operation,omitempty" json:"operation,omitempty"`
	Legacy     *LegacyOperation `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Parameters []Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Responses  []Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Tags       []string         `yaml:"tags,omitempty" json:"tags,omitempty"`
	Deprecated bool             `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
}

// Operation mirrors the current operation annotation
type Operation struct {
	Summary     string     `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Method      string     `yaml:"method,omitempty" json:"method,omitempty"`
	OperationID string     `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Tags        []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Deprecated  bool       `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Responses   []Response `yaml:"responses,omitempty" json:"responses,omitempty"`
}

// LegacyOperation mirrors the legacy operation annotation
type LegacyOperation struct {
	Value      string `yaml:"value,omitempty" json:"value,omitempty"`
	Notes      string `yaml:"notes,omitempty" json:"notes,omitempty"`
	HTTPMethod string `yaml:"httpMethod,omitempty" json:"httpMethod,omitempty"`
	Nickname   string `yaml:"nickname,omitempty" json:"nickname,omitempty"`
	Produces   string `yaml:"produces,omitempty" json:"produces,omitempty"`
	// Response is the native type of the success body
	Response string `yaml:"response,omitempty" json:"response,omitempty"`
}

// Parameter mirrors a parameter annotation or a bound handler argument
type Parameter struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// In is the explicitly annotated location: header, query or path
	In string `yaml:"in,omitempty" json:"in,omitempty"`
	// Binding is the location reported by the framework for a handler argument
	Binding  string `yaml:"binding,omitempty" json:"binding,omitempty"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
	// Type is a native type name or schema primitive; empty means String
	Type    string `yaml:"type,omitempty" json:"type,omitempty"`
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Response mirrors a response annotation
type Response struct {
	// Code is a status code; empty means "default"
	Code        string   `yaml:"code,omitempty" json:"code,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Content     *Content `yaml:"content,omitempty" json:"content,omitempty"`
}

// Content mirrors a content annotation. Exactly one of Schema and ArrayOf may be set.
type Content struct {
	MediaType string `yaml:"mediaType,omitempty" json:"mediaType,omitempty"`
	Schema    string `yaml:"schema,omitempty" json:"schema,omitempty"`
	ArrayOf   string `yaml:"arrayOf,omitempty" json:"arrayOf,omitempty"`
}

// ControllerName returns the controller identity of the handler
func (h Handler) ControllerName(source string) string {
	if h.Controller != "" {
		return h.Controller
	}
	return source
}

// Identity returns "Controller.method" for error and log context
func (h Handler) Identity(source string) string {
	return h.ControllerName(source) + "." + h.Name
}
