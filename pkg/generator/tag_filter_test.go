package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := []struct {
		name         string
		originalTags []string
		includeTags  []string
		excludeTags  []string
		expected     bool
	}{
		{
			name:         "no filters - include all",
			originalTags: []string{"users", "internal"},
			expected:     true,
		},
		{
			name:         "include filter matches second tag",
			originalTags: []string{"internal", "users"},
			includeTags:  []string{"users"},
			expected:     true,
		},
		{
			name:         "include filter matches none",
			originalTags: []string{"internal", "admin"},
			includeTags:  []string{"users"},
			expected:     false,
		},
		{
			name:         "exclude filter matches second tag",
			originalTags: []string{"users", "internal"},
			excludeTags:  []string{"internal"},
			expected:     false,
		},
		{
			name:         "exclude takes precedence over include",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{"users"},
			excludeTags:  []string{"internal"},
			expected:     false,
		},
		{
			name:         "regex patterns work",
			originalTags: []string{"users_v1", "internal_api"},
			includeTags:  []string{"^users_.*"},
			excludeTags:  []string{".*_api$"},
			expected:     false,
		},
		{
			name:         "untagged operations match misc",
			originalTags: nil,
			includeTags:  []string{"^misc$"},
			expected:     true,
		},
		{
			name:         "untagged operations excluded by misc",
			originalTags: nil,
			excludeTags:  []string{"misc"},
			expected:     false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := compileTagFilters(test.includeTags, test.excludeTags)
			require.NoError(t, err)
			assert.Equal(t, test.expected, shouldIncludeOperation(test.originalTags, f.include, f.exclude))
		})
	}
}

func TestCompileTagFiltersRejectsBadPattern(t *testing.T) {
	_, err := compileTagFilters([]string{"("}, nil)
	assert.Error(t, err)
	_, err = compileTagFilters(nil, []string{"[a-"})
	assert.ErrorContains(t, err, "invalid excludeTags pattern")
}

func TestCompilePatterns(t *testing.T) {
	rs, err := compilePatterns("includeTags", []string{"^users$", "orders"})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.True(t, rs[0].MatchString("users"))
	assert.False(t, rs[0].MatchString("users_v1"))

	rs, err = compilePatterns("includeTags", nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestTagFilterApplyAndPrune(t *testing.T) {
	f, err := compileTagFilters(nil, []string{"^internal$"})
	require.NoError(t, err)
	require.True(t, f.active())

	address := ir.ModelSchema{Name: "Address", Fields: []ir.Field{{Name: "street", Type: ir.TypeSpec{Kind: ir.KindString}}}}
	settlement := ir.ModelSchema{Name: "Settlement", Fields: []ir.Field{
		{Name: "address", Type: ir.TypeSpec{Kind: ir.KindRef, Ref: "Address"}},
	}}
	audit := ir.ModelSchema{Name: "AuditEntry"}

	fragments := f.apply([]Fragment{{
		Source: "A",
		Models: []ir.ModelSchema{address, settlement, audit},
		Operations: []ir.OperationDescriptor{
			withTags(refOperation("search", "GET", "/search", "Settlement"), "search"),
			withTags(refOperation("audit", "GET", "/audit", "AuditEntry"), "internal"),
		},
	}})
	require.Len(t, fragments[0].Operations, 1)

	doc, err := Assemble(fragments, NewRegistry())
	require.NoError(t, err)
	doc = pruneUnreferencedSchemas(doc)

	var names []string
	for _, m := range doc.Schemas {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Address", "Settlement"}, names)
}

func TestInactiveTagFilterKeepsFragments(t *testing.T) {
	f, err := compileTagFilters(nil, nil)
	require.NoError(t, err)
	assert.False(t, f.active())

	in := []Fragment{{Source: "A", Operations: []ir.OperationDescriptor{refOperation("x", "GET", "/x", "")}}}
	assert.Equal(t, in, f.apply(in))
}
