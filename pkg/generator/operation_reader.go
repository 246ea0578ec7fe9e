package generator

import (
	"fmt"
	"strings"

	"dario.cat/mergo"

	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// LegacyPolicy decides how a legacy operation annotation interacts with a current one
type LegacyPolicy string

const (
	// LegacyMerge keeps every field of the current annotation and fills empty ones from
	// the legacy annotation
	LegacyMerge LegacyPolicy = "merge"
	// LegacyIgnore drops legacy annotations
	LegacyIgnore LegacyPolicy = "ignore"
	// LegacyReject fails when a handler carries both styles
	LegacyReject LegacyPolicy = "reject"
)

// DefaultMediaType is used for content that does not name a media type
const DefaultMediaType = "application/json"

var httpMethods = map[string]bool{
	"GET": true, "PUT": true, "POST": true, "DELETE": true,
	"OPTIONS": true, "HEAD": true, "PATCH": true, "TRACE": true,
}

// ReaderOptions configure an OperationReader
type ReaderOptions struct {
	DefaultMediaType    string
	LegacyPolicy        LegacyPolicy
	OperationIDTemplate string
}

// OperationReader turns declared handlers into OperationDescriptors
type OperationReader struct {
	opts  ReaderOptions
	namer *operationIDNamer
}

// NewOperationReader creates a reader; empty options take their defaults
func NewOperationReader(opts ReaderOptions) (*OperationReader, error) {
	if opts.DefaultMediaType == "" {
		opts.DefaultMediaType = DefaultMediaType
	}
	switch opts.LegacyPolicy {
	case "":
		opts.LegacyPolicy = LegacyMerge
	case LegacyMerge, LegacyIgnore, LegacyReject:
	default:
		return nil, fmt.Errorf("unknown legacy annotation policy %q", opts.LegacyPolicy)
	}
	namer, err := newOperationIDNamer(opts.OperationIDTemplate)
	if err != nil {
		return nil, err
	}
	return &OperationReader{opts: opts, namer: namer}, nil
}

// Read converts one handler of the named source. Warnings carry the handler identity.
func (r *OperationReader) Read(source string, h decl.Handler) (ir.OperationDescriptor, []Warning, error) {
	identity := h.Identity(source)
	op, warnings, err := r.read(source, h)
	if err != nil {
		return ir.OperationDescriptor{}, nil, withHandler(err, source, identity)
	}
	for i := range warnings {
		warnings[i].Source = source
		warnings[i].Handler = identity
	}
	op.Handler = identity
	op.Source = source
	return op, warnings, nil
}

func (r *OperationReader) read(source string, h decl.Handler) (ir.OperationDescriptor, []Warning, error) {
	meta, warnings, err := r.effectiveAnnotation(h)
	if err != nil {
		return ir.OperationDescriptor{}, nil, err
	}

	method, err := resolveMethod(meta.Method, h.Method)
	if err != nil {
		return ir.OperationDescriptor{}, nil, err
	}

	path, vars, err := normalizePath(h.Path)
	if err != nil {
		return ir.OperationDescriptor{}, nil, err
	}
	params, err := r.readParameters(h.Parameters, vars)
	if err != nil {
		return ir.OperationDescriptor{}, nil, err
	}

	declared := make([]decl.Response, 0, len(meta.Responses)+len(h.Responses))
	declared = append(declared, meta.Responses...)
	declared = append(declared, h.Responses...)
	responses, respWarnings, err := ClassifyResponses(declared, r.opts.DefaultMediaType)
	if err != nil {
		return ir.OperationDescriptor{}, nil, err
	}
	warnings = append(warnings, respWarnings...)

	id := meta.OperationID
	if id == "" {
		id, err = r.namer.Name(OperationIDInput{
			Method:     method,
			Path:       path,
			Handler:    h.Name,
			Controller: h.ControllerName(source),
		})
		if err != nil {
			return ir.OperationDescriptor{}, nil, err
		}
	}

	return ir.OperationDescriptor{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     meta.Summary,
		Description: meta.Description,
		Tags:        mergeTags(meta.Tags, h.Tags),
		Deprecated:  meta.Deprecated || h.Deprecated,
		Parameters:  params,
		Responses:   responses,
	}, warnings, nil
}

// effectiveAnnotation applies the legacy policy and returns the annotation to read from
func (r *OperationReader) effectiveAnnotation(h decl.Handler) (decl.Operation, []Warning, error) {
	var current decl.Operation
	if h.Operation != nil {
		current = *h.Operation
	}
	if h.Legacy == nil {
		return current, nil, nil
	}

	switch r.opts.LegacyPolicy {
	case LegacyIgnore:
		return current, nil, nil
	case LegacyReject:
		if h.Operation != nil {
			return decl.Operation{}, nil, declErr(ErrAnnotationConflict, "", "handler declares both current and legacy operation annotations")
		}
		return legacyToOperation(*h.Legacy), nil, nil
	}

	legacy := legacyToOperation(*h.Legacy)
	if h.Operation == nil {
		return legacy, nil, nil
	}
	if err := mergo.Merge(&current, legacy); err != nil {
		return decl.Operation{}, nil, fmt.Errorf("merge legacy annotation: %w", err)
	}
	return current, []Warning{{
		Subject: "annotations",
		Message: "legacy operation annotation merged into current one, current fields take precedence",
	}}, nil
}

func legacyToOperation(l decl.LegacyOperation) decl.Operation {
	op := decl.Operation{
		Summary:     l.Value,
		Description: l.Notes,
		Method:      l.HTTPMethod,
		OperationID: l.Nickname,
	}
	if l.Response != "" {
		op.Responses = []decl.Response{{
			Code:    "200",
			Content: &decl.Content{MediaType: l.Produces, Schema: l.Response},
		}}
	}
	return op
}

// resolveMethod prefers the annotated method; a route method that disagrees is an error
func resolveMethod(annotated, route string) (string, error) {
	annotated = strings.ToUpper(strings.TrimSpace(annotated))
	route = strings.ToUpper(strings.TrimSpace(route))

	method := annotated
	if method == "" {
		method = route
	}
	if method == "" {
		return "", declErr(ErrInvalidDeclaration, "method", "no HTTP method declared")
	}
	if !httpMethods[method] {
		return "", declErr(ErrInvalidDeclaration, "method", "unknown HTTP method %q", method)
	}
	if annotated != "" && route != "" && annotated != route {
		return "", declErr(ErrInvalidDeclaration, "method", "annotation says %s but route is bound to %s", annotated, route)
	}
	return method, nil
}

func (r *OperationReader) readParameters(declared []decl.Parameter, vars []string) ([]ir.ParameterDescriptor, error) {
	pathVars := make(map[string]bool, len(vars))
	for _, v := range vars {
		pathVars[v] = true
	}

	params := make([]ir.ParameterDescriptor, 0, len(declared))
	seen := map[string]bool{}
	for _, p := range declared {
		desc, err := ClassifyParameter(p, pathVars)
		if err != nil {
			return nil, err
		}
		key := string(desc.In) + ":" + desc.Name
		if seen[key] {
			return nil, declErr(ErrInvalidDeclaration, "parameter "+desc.Name, "declared twice in %s", desc.In)
		}
		seen[key] = true
		params = append(params, desc)
	}

	for _, v := range vars {
		if !seen[string(ir.InPath)+":"+v] {
			return nil, declErr(ErrInvalidDeclaration, "parameter "+v, "route variable has no declared parameter")
		}
	}
	return params, nil
}

func mergeTags(lists ...[]string) []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range lists {
		for _, t := range l {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
