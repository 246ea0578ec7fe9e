package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// ClassifyParameter maps a declared parameter to a ParameterDescriptor. pathVars holds
// the variables of the handler's route template.
//
// The location comes from up to three hints: the annotated location, the framework
// binding and membership in the route template. Hints that disagree are an error; no
// hint at all means query. The required flag is copied as declared.
func ClassifyParameter(p decl.Parameter, pathVars map[string]bool) (ir.ParameterDescriptor, error) {
	subject := "parameter " + p.Name
	if p.Name == "" {
		return ir.ParameterDescriptor{}, declErr(ErrInvalidDeclaration, "parameter", "parameter name is empty")
	}

	hints := map[ir.Location]string{}
	for _, h := range []struct{ value, origin string }{
		{p.In, "annotation"},
		{p.Binding, "binding"},
	} {
		if h.value == "" {
			continue
		}
		loc, err := parseLocation(h.value)
		if err != nil {
			return ir.ParameterDescriptor{}, withSubject(err, subject)
		}
		hints[loc] = h.origin
	}
	if pathVars[p.Name] {
		hints[ir.InPath] = "route"
	}

	loc := ir.InQuery
	switch len(hints) {
	case 0:
	case 1:
		for l := range hints {
			loc = l
		}
	default:
		return ir.ParameterDescriptor{}, declErr(ErrAmbiguousLocation, subject, "conflicting hints %s", describeHints(hints))
	}

	if loc == ir.InPath {
		if !pathVars[p.Name] {
			return ir.ParameterDescriptor{}, declErr(ErrInvalidDeclaration, subject, "path parameter does not appear in the route")
		}
		if !p.Required {
			return ir.ParameterDescriptor{}, declErr(ErrInvalidDeclaration, subject, "path parameter must be declared required")
		}
	}

	typ := p.Type
	if typ == "" {
		typ = "String"
	}
	t, err := resolveNativeType(typ, nil, refsDeferred)
	if err != nil {
		return ir.ParameterDescriptor{}, withSubject(err, subject)
	}
	example, err := coerceExample(t, p.Example)
	if err != nil {
		return ir.ParameterDescriptor{}, declErr(ErrInvalidDeclaration, subject, "%v", err)
	}

	return ir.ParameterDescriptor{
		Name:        p.Name,
		In:          loc,
		Required:    p.Required,
		Type:        t,
		Example:     example,
		Description: p.Description,
	}, nil
}

func parseLocation(s string) (ir.Location, error) {
	switch ir.Location(strings.ToLower(strings.TrimSpace(s))) {
	case ir.InQuery:
		return ir.InQuery, nil
	case ir.InHeader:
		return ir.InHeader, nil
	case ir.InPath:
		return ir.InPath, nil
	}
	return "", declErr(ErrInvalidDeclaration, "", "unknown parameter location %q", s)
}

// describeHints renders hints in a fixed order so error messages are stable
func describeHints(hints map[ir.Location]string) string {
	var parts []string
	for _, l := range []ir.Location{ir.InPath, ir.InQuery, ir.InHeader} {
		if origin, ok := hints[l]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", origin, l))
		}
	}
	return strings.Join(parts, ", ")
}

// coerceExample converts a declared example string to a value of the schema type
func coerceExample(t ir.TypeSpec, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	switch t.Kind {
	case ir.KindString:
		return raw, nil
	case ir.KindInteger:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("example %q is not an integer", raw)
		}
		if t.Format == "int32" && (v < math.MinInt32 || v > math.MaxInt32) {
			return nil, fmt.Errorf("example %q is out of range for int32", raw)
		}
		return v, nil
	case ir.KindNumber:
		v, err := cast.ToFloat64E(strings.TrimSpace(raw))
		// NaN and Inf have no JSON representation
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("example %q is not a number", raw)
		}
		return v, nil
	case ir.KindBoolean:
		v, err := cast.ToBoolE(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("example %q is not a boolean", raw)
		}
		return v, nil
	}
	return nil, fmt.Errorf("examples are only supported on primitive types, got %s", t.Kind)
}
