package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

func TestClassifyParameterSettlementSearch(t *testing.T) {
	pathVars := map[string]bool{"propertyId": true}
	str := ir.TypeSpec{Kind: ir.KindString}

	tests := []struct {
		name  string
		param decl.Parameter
		want  ir.ParameterDescriptor
	}{
		{
			name: "optional header",
			param: decl.Parameter{
				Name:        "Authorization",
				Description: "Token for logged in user",
				In:          "header",
				Type:        "string",
			},
			want: ir.ParameterDescriptor{
				Name:        "Authorization",
				In:          ir.InHeader,
				Type:        str,
				Description: "Token for logged in user",
			},
		},
		{
			name: "bound query argument",
			param: decl.Parameter{
				Name:        "personalNumber",
				Description: "A personal number of one of the sellers.",
				Binding:     "query",
				Example:     "0101201112345",
			},
			want: ir.ParameterDescriptor{
				Name:        "personalNumber",
				In:          ir.InQuery,
				Type:        str,
				Example:     "0101201112345",
				Description: "A personal number of one of the sellers.",
			},
		},
		{
			name: "route variable",
			param: decl.Parameter{
				Name:        "propertyId",
				Description: "The cadastre or share id.",
				Required:    true,
				Example:     "1201-5-1-0-0",
			},
			want: ir.ParameterDescriptor{
				Name:        "propertyId",
				In:          ir.InPath,
				Required:    true,
				Type:        str,
				Example:     "1201-5-1-0-0",
				Description: "The cadastre or share id.",
			},
		},
		{
			name:  "no hint means query",
			param: decl.Parameter{Name: "page", Type: "int", Example: "2"},
			want: ir.ParameterDescriptor{
				Name:    "page",
				In:      ir.InQuery,
				Type:    ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"},
				Example: int64(2),
			},
		},
		{
			name:  "agreeing hints",
			param: decl.Parameter{Name: "propertyId", In: "path", Binding: "PATH", Required: true},
			want:  ir.ParameterDescriptor{Name: "propertyId", In: ir.InPath, Required: true, Type: str},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ClassifyParameter(test.param, pathVars)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestClassifyParameterErrors(t *testing.T) {
	pathVars := map[string]bool{"propertyId": true}

	tests := []struct {
		name    string
		param   decl.Parameter
		wantErr error
	}{
		{
			name:    "annotation and binding disagree",
			param:   decl.Parameter{Name: "token", In: "header", Binding: "query"},
			wantErr: ErrAmbiguousLocation,
		},
		{
			name:    "route variable annotated as query",
			param:   decl.Parameter{Name: "propertyId", In: "query", Required: true},
			wantErr: ErrAmbiguousLocation,
		},
		{
			name:    "path parameter not required",
			param:   decl.Parameter{Name: "propertyId"},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "path parameter missing from route",
			param:   decl.Parameter{Name: "ownerId", In: "path", Required: true},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "unknown location",
			param:   decl.Parameter{Name: "session", In: "cookie"},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "example does not match type",
			param:   decl.Parameter{Name: "page", Type: "Integer", Example: "first"},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "unsupported type",
			param:   decl.Parameter{Name: "filter", Type: "Map<Long, String>"},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "empty name",
			param:   decl.Parameter{In: "query"},
			wantErr: ErrInvalidDeclaration,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ClassifyParameter(test.param, pathVars)
			require.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestClassifyParameterAmbiguousMessageIsStable(t *testing.T) {
	p := decl.Parameter{Name: "propertyId", In: "header", Binding: "query", Required: true}
	_, err := ClassifyParameter(p, map[string]bool{"propertyId": true})
	require.Error(t, err)
	assert.Equal(t,
		"parameter propertyId: ambiguous parameter location: conflicting hints route=path, binding=query, annotation=header",
		err.Error())
}

func TestCoerceExample(t *testing.T) {
	tests := []struct {
		name    string
		typ     ir.TypeSpec
		raw     string
		want    any
		wantErr bool
	}{
		{name: "empty", typ: ir.TypeSpec{Kind: ir.KindInteger}, raw: "", want: nil},
		{name: "string keeps leading zeros", typ: ir.TypeSpec{Kind: ir.KindString}, raw: "007", want: "007"},
		{name: "integer is decimal", typ: ir.TypeSpec{Kind: ir.KindInteger}, raw: "010", want: int64(10)},
		{name: "negative integer", typ: ir.TypeSpec{Kind: ir.KindInteger}, raw: " -3 ", want: int64(-3)},
		{name: "number", typ: ir.TypeSpec{Kind: ir.KindNumber}, raw: "1.25", want: 1.25},
		{name: "boolean", typ: ir.TypeSpec{Kind: ir.KindBoolean}, raw: "false", want: false},
		{name: "bad integer", typ: ir.TypeSpec{Kind: ir.KindInteger}, raw: "1.5", wantErr: true},
		{name: "bad boolean", typ: ir.TypeSpec{Kind: ir.KindBoolean}, raw: "maybe", wantErr: true},
		{name: "nan", typ: ir.TypeSpec{Kind: ir.KindNumber, Format: "double"}, raw: "NaN", wantErr: true},
		{name: "inf", typ: ir.TypeSpec{Kind: ir.KindNumber}, raw: "Inf", wantErr: true},
		{name: "negative inf", typ: ir.TypeSpec{Kind: ir.KindNumber}, raw: "-Inf", wantErr: true},
		{name: "int32 max", typ: ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"}, raw: "2147483647", want: int64(2147483647)},
		{name: "int32 overflow", typ: ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"}, raw: "99999999999", wantErr: true},
		{name: "int32 underflow", typ: ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"}, raw: "-2147483649", wantErr: true},
		{name: "int64 accepts large", typ: ir.TypeSpec{Kind: ir.KindInteger, Format: "int64"}, raw: "99999999999", want: int64(99999999999)},
		{name: "array", typ: ir.TypeSpec{Kind: ir.KindArray}, raw: "a,b", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := coerceExample(test.typ, test.raw)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}
