package generator

import (
	"sort"

	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// methodOrder is the canonical order of operations within a path
var methodOrder = map[string]int{
	"GET": 0, "PUT": 1, "POST": 2, "DELETE": 3, "OPTIONS": 4, "HEAD": 5, "PATCH": 6, "TRACE": 7,
}

// Fragment is everything read from one source
type Fragment struct {
	Source     string
	Servers    []ir.Server
	Models     []ir.ModelSchema
	Operations []ir.OperationDescriptor
	Warnings   []Warning
}

// Assemble merges fragments into a Document using registry as the component registry.
// Fragments are merged in source name order, so the result does not depend on the
// order they were read in. Assemble must not run concurrently with itself on the same
// registry.
func Assemble(fragments []Fragment, registry *Registry) (ir.Document, error) {
	ordered := make([]Fragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Source < ordered[j].Source })

	var doc ir.Document
	seenServers := map[string]bool{}
	for _, f := range ordered {
		for _, s := range f.Servers {
			if seenServers[s.URL] {
				continue
			}
			seenServers[s.URL] = true
			doc.Servers = append(doc.Servers, s)
		}
		for _, m := range f.Models {
			if err := registry.Register(f.Source, m); err != nil {
				return ir.Document{}, err
			}
		}
	}

	byID := map[string]ir.OperationDescriptor{}
	byRoute := map[string]ir.OperationDescriptor{}
	paths := map[string][]ir.OperationDescriptor{}
	tags := map[string]bool{}
	for _, f := range ordered {
		for _, op := range f.Operations {
			if prev, dup := byID[op.OperationID]; dup {
				return ir.Document{}, &DeclarationError{
					Kind:    ErrDuplicateOperationID,
					Source:  op.Source,
					Handler: op.Handler,
					Subject: "operationId " + op.OperationID,
					Detail:  "already used by " + prev.Handler,
				}
			}
			byID[op.OperationID] = op

			route := op.Method + " " + op.Path
			if prev, dup := byRoute[route]; dup {
				return ir.Document{}, &DeclarationError{
					Kind:    ErrRouteConflict,
					Source:  op.Source,
					Handler: op.Handler,
					Subject: route,
					Detail:  "already bound to " + prev.Handler,
				}
			}
			byRoute[route] = op

			for _, ref := range op.Refs() {
				if _, ok := registry.Lookup(ref); !ok {
					return ir.Document{}, &DeclarationError{
						Kind:    ErrDanglingReference,
						Source:  op.Source,
						Handler: op.Handler,
						Subject: "schema " + ref,
						Detail:  "not declared by any source",
					}
				}
			}
			for _, t := range op.Tags {
				tags[t] = true
			}
			paths[op.Path] = append(paths[op.Path], op)
		}
	}

	for _, m := range registry.Schemas() {
		for _, f := range m.Fields {
			for _, ref := range f.Type.Refs() {
				if _, ok := registry.Lookup(ref); !ok {
					return ir.Document{}, &DeclarationError{
						Kind:    ErrDanglingReference,
						Subject: "field " + m.Name + "." + f.Name,
						Detail:  "schema " + ref + " is not declared",
					}
				}
			}
		}
	}

	pathNames := make([]string, 0, len(paths))
	for p := range paths {
		pathNames = append(pathNames, p)
	}
	sort.Strings(pathNames)
	for _, p := range pathNames {
		ops := paths[p]
		sort.Slice(ops, func(i, j int) bool { return methodOrder[ops[i].Method] < methodOrder[ops[j].Method] })
		doc.Paths = append(doc.Paths, ir.PathItem{Path: p, Operations: ops})
	}

	doc.Schemas = registry.Schemas()
	for t := range tags {
		doc.Tags = append(doc.Tags, t)
	}
	sort.Strings(doc.Tags)
	return doc, nil
}
