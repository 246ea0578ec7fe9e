package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

func TestResolveNativeType(t *testing.T) {
	str := ir.TypeSpec{Kind: ir.KindString}
	settlement := ir.TypeSpec{Kind: ir.KindRef, Ref: "Settlement"}
	known := map[string]bool{"Settlement": true}

	tests := []struct {
		name    string
		expr    string
		policy  refPolicy
		want    ir.TypeSpec
		wantErr error
	}{
		{name: "string", expr: "String", want: str},
		{name: "qualified string", expr: "java.lang.String", want: str},
		{name: "int", expr: "int", want: ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"}},
		{name: "boxed integer", expr: "Integer", want: ir.TypeSpec{Kind: ir.KindInteger, Format: "int32"}},
		{name: "long", expr: "Long", want: ir.TypeSpec{Kind: ir.KindInteger, Format: "int64"}},
		{name: "double", expr: "double", want: ir.TypeSpec{Kind: ir.KindNumber, Format: "double"}},
		{name: "big decimal", expr: "BigDecimal", want: ir.TypeSpec{Kind: ir.KindNumber}},
		{name: "boolean", expr: "Boolean", want: ir.TypeSpec{Kind: ir.KindBoolean}},
		{name: "date", expr: "LocalDate", want: ir.TypeSpec{Kind: ir.KindString, Format: "date"}},
		{name: "uuid", expr: "java.util.UUID", want: ir.TypeSpec{Kind: ir.KindString, Format: "uuid"}},
		{name: "schema primitive", expr: "string", want: str},
		{name: "bytes", expr: "byte[]", want: ir.TypeSpec{Kind: ir.KindString, Format: "byte"}},
		{name: "native array", expr: "String[]", want: ir.TypeSpec{Kind: ir.KindArray, Items: &str}},
		{name: "list", expr: "List<String>", want: ir.TypeSpec{Kind: ir.KindArray, Items: &str}},
		{name: "qualified set", expr: "java.util.Set<String>", want: ir.TypeSpec{Kind: ir.KindArray, Items: &str}},
		{name: "optional is transparent", expr: "Optional<String>", want: str},
		{name: "map", expr: "Map<String, Settlement>", want: ir.TypeSpec{Kind: ir.KindMap, Values: &settlement}},
		{
			name: "nested generics",
			expr: "Map<String, List<Settlement>>",
			want: ir.TypeSpec{Kind: ir.KindMap, Values: &ir.TypeSpec{Kind: ir.KindArray, Items: &settlement}},
		},
		{name: "known model", expr: "Settlement", want: settlement},
		{name: "deferred model", expr: "Invoice", policy: refsDeferred, want: ir.TypeSpec{Kind: ir.KindRef, Ref: "Invoice"}},
		{name: "unknown model", expr: "Invoice", wantErr: ErrUnsupportedType},
		{name: "empty", expr: "", wantErr: ErrUnsupportedType},
		{name: "non string map key", expr: "Map<Integer, String>", wantErr: ErrUnsupportedType},
		{name: "unknown generic", expr: "Future<String>", wantErr: ErrUnsupportedType},
		{name: "malformed generic", expr: "List<String", wantErr: ErrUnsupportedType},
		{name: "malformed name", expr: "Str ing", policy: refsDeferred, wantErr: ErrUnsupportedType},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := resolveNativeType(test.expr, known, test.policy)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestSplitTypeArgs(t *testing.T) {
	assert.Equal(t, []string{"String", "Map<String, Integer>"}, splitTypeArgs("String, Map<String, Integer>"))
	assert.Equal(t, []string{"String"}, splitTypeArgs("String"))
}
