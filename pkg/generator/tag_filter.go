package generator

import (
	"fmt"
	"regexp"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// untaggedTag stands in for operations without tags when filtering
const untaggedTag = "misc"

// tagFilter keeps operations by regex over their tags
type tagFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func (f tagFilter) active() bool {
	return len(f.include) > 0 || len(f.exclude) > 0
}

// compileTagFilters compiles the include and exclude tag patterns
func compileTagFilters(include, exclude []string) (tagFilter, error) {
	inc, err := compilePatterns("includeTags", include)
	if err != nil {
		return tagFilter{}, err
	}
	exc, err := compilePatterns("excludeTags", exclude)
	if err != nil {
		return tagFilter{}, err
	}
	return tagFilter{include: inc, exclude: exc}, nil
}

func compilePatterns(kind string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", kind, p, err)
		}
		out[i] = r
	}
	return out, nil
}

// shouldIncludeOperation keeps an operation when any tag matches an include pattern
// (or there are none) and no tag matches an exclude pattern
func shouldIncludeOperation(tags []string, include, exclude []*regexp.Regexp) bool {
	if len(tags) == 0 {
		tags = []string{untaggedTag}
	}

	included := len(include) == 0
	for _, tag := range tags {
		if included {
			break
		}
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
				break
			}
		}
	}
	if !included {
		return false
	}

	for _, tag := range tags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}
	return true
}

// apply drops filtered operations from each fragment
func (f tagFilter) apply(fragments []Fragment) []Fragment {
	if !f.active() {
		return fragments
	}
	out := make([]Fragment, len(fragments))
	for i, frag := range fragments {
		kept := make([]ir.OperationDescriptor, 0, len(frag.Operations))
		for _, op := range frag.Operations {
			if shouldIncludeOperation(op.Tags, f.include, f.exclude) {
				kept = append(kept, op)
			}
		}
		frag.Operations = kept
		out[i] = frag
	}
	return out
}

// pruneUnreferencedSchemas keeps only schemas reachable from the document's operations
func pruneUnreferencedSchemas(doc ir.Document) ir.Document {
	byName := make(map[string]ir.ModelSchema, len(doc.Schemas))
	for _, m := range doc.Schemas {
		byName[m.Name] = m
	}

	referenced := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if referenced[name] {
			return
		}
		referenced[name] = true
		for _, f := range byName[name].Fields {
			for _, ref := range f.Type.Refs() {
				visit(ref)
			}
		}
	}
	for _, op := range doc.Operations() {
		for _, ref := range op.Refs() {
			visit(ref)
		}
	}

	kept := make([]ir.ModelSchema, 0, len(doc.Schemas))
	for _, m := range doc.Schemas {
		if referenced[m.Name] {
			kept = append(kept, m)
		}
	}
	doc.Schemas = kept
	return doc
}
