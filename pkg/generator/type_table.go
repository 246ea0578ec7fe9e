package generator

import (
	"regexp"
	"strings"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// nativeTypes maps native type names to schema primitives. Lower-case schema primitive
// names are accepted as well so parameter declarations can use either form.
var nativeTypes = map[string]ir.TypeSpec{
	"String":    {Kind: ir.KindString},
	"string":    {Kind: ir.KindString},
	"char":      {Kind: ir.KindString},
	"Character": {Kind: ir.KindString},

	"int":        {Kind: ir.KindInteger, Format: "int32"},
	"Integer":    {Kind: ir.KindInteger, Format: "int32"},
	"short":      {Kind: ir.KindInteger, Format: "int32"},
	"Short":      {Kind: ir.KindInteger, Format: "int32"},
	"byte":       {Kind: ir.KindInteger, Format: "int32"},
	"Byte":       {Kind: ir.KindInteger, Format: "int32"},
	"long":       {Kind: ir.KindInteger, Format: "int64"},
	"Long":       {Kind: ir.KindInteger, Format: "int64"},
	"BigInteger": {Kind: ir.KindInteger},
	"integer":    {Kind: ir.KindInteger},

	"float":      {Kind: ir.KindNumber, Format: "float"},
	"Float":      {Kind: ir.KindNumber, Format: "float"},
	"double":     {Kind: ir.KindNumber, Format: "double"},
	"Double":     {Kind: ir.KindNumber, Format: "double"},
	"BigDecimal": {Kind: ir.KindNumber},
	"number":     {Kind: ir.KindNumber},

	"boolean": {Kind: ir.KindBoolean},
	"Boolean": {Kind: ir.KindBoolean},

	"LocalDate":      {Kind: ir.KindString, Format: "date"},
	"LocalDateTime":  {Kind: ir.KindString, Format: "date-time"},
	"OffsetDateTime": {Kind: ir.KindString, Format: "date-time"},
	"ZonedDateTime":  {Kind: ir.KindString, Format: "date-time"},
	"Instant":        {Kind: ir.KindString, Format: "date-time"},
	"Date":           {Kind: ir.KindString, Format: "date-time"},
	"UUID":           {Kind: ir.KindString, Format: "uuid"},
	"URI":            {Kind: ir.KindString, Format: "uri"},
}

// Generic containers. Sequence containers become arrays; Optional is transparent.
var (
	sequenceTypes = map[string]bool{
		"List": true, "ArrayList": true, "LinkedList": true, "Set": true, "HashSet": true,
		"SortedSet": true, "TreeSet": true, "Collection": true, "Iterable": true, "Seq": true,
	}
	mapTypes = map[string]bool{
		"Map": true, "HashMap": true, "TreeMap": true, "LinkedHashMap": true, "SortedMap": true,
	}
	optionalTypes = map[string]bool{
		"Optional": true, "Option": true,
	}
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// refPolicy decides what happens to names that are neither primitives nor containers
type refPolicy int

const (
	// refsKnownOnly rejects names that are not in the known model set
	refsKnownOnly refPolicy = iota
	// refsDeferred turns any identifier into a reference; the assembler checks it resolves
	refsDeferred
)

// resolveNativeType maps a native type expression to a TypeSpec
func resolveNativeType(expr string, known map[string]bool, policy refPolicy) (ir.TypeSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "empty type")
	}

	if expr == "byte[]" || expr == "Byte[]" {
		return ir.TypeSpec{Kind: ir.KindString, Format: "byte"}, nil
	}
	if strings.HasSuffix(expr, "[]") {
		items, err := resolveNativeType(strings.TrimSuffix(expr, "[]"), known, policy)
		if err != nil {
			return ir.TypeSpec{}, err
		}
		return ir.TypeSpec{Kind: ir.KindArray, Items: &items}, nil
	}

	if open := strings.IndexByte(expr, '<'); open >= 0 {
		if !strings.HasSuffix(expr, ">") {
			return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "malformed generic type %q", expr)
		}
		name := simpleName(expr[:open])
		args := splitTypeArgs(expr[open+1 : len(expr)-1])
		switch {
		case sequenceTypes[name] && len(args) == 1:
			items, err := resolveNativeType(args[0], known, policy)
			if err != nil {
				return ir.TypeSpec{}, err
			}
			return ir.TypeSpec{Kind: ir.KindArray, Items: &items}, nil
		case optionalTypes[name] && len(args) == 1:
			return resolveNativeType(args[0], known, policy)
		case mapTypes[name] && len(args) == 2:
			key, err := resolveNativeType(args[0], known, policy)
			if err != nil {
				return ir.TypeSpec{}, err
			}
			if key.Kind != ir.KindString {
				return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "map keys must be strings in %q", expr)
			}
			values, err := resolveNativeType(args[1], known, policy)
			if err != nil {
				return ir.TypeSpec{}, err
			}
			return ir.TypeSpec{Kind: ir.KindMap, Values: &values}, nil
		}
		return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "cannot map generic type %q", expr)
	}

	name := simpleName(expr)
	if t, ok := nativeTypes[name]; ok {
		return t, nil
	}
	if !identifier.MatchString(name) {
		return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "malformed type %q", expr)
	}
	if known[name] || policy == refsDeferred {
		return ir.TypeSpec{Kind: ir.KindRef, Ref: name}, nil
	}
	return ir.TypeSpec{}, declErr(ErrUnsupportedType, "", "%q is neither a primitive nor a known model", expr)
}

// simpleName strips a package qualifier: java.util.List -> List
func simpleName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// splitTypeArgs splits generic arguments on top-level commas
func splitTypeArgs(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}
