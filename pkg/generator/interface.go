package generator

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

// Options contains options for document generation
type Options struct {
	Info   DocumentInfo
	Reader ReaderOptions
	// Servers are added ahead of servers declared by sources
	Servers     []ir.Server
	IncludeTags []string
	ExcludeTags []string
}

// Result is the outcome of one generation run
type Result struct {
	Document ir.Document
	OpenAPI  *openapi3.T
	Warnings []Warning
}

// Service provides high-level document generation functionality
type Service struct {
	opts   Options
	reader *OperationReader
	filter tagFilter
	log    zerolog.Logger
}

// NewService creates a new generator service. Pass zerolog.Nop() to silence logging.
func NewService(opts Options, log zerolog.Logger) (*Service, error) {
	reader, err := NewOperationReader(opts.Reader)
	if err != nil {
		return nil, err
	}
	filter, err := compileTagFilters(opts.IncludeTags, opts.ExcludeTags)
	if err != nil {
		return nil, err
	}
	return &Service{opts: opts, reader: reader, filter: filter, log: log}, nil
}

// Generate reads every source and assembles one document. Sources are read
// concurrently; the merge runs once all reads have finished.
func (s *Service) Generate(sources []decl.Source) (*Result, error) {
	log := s.log.With().Str("run_id", uuid.New().String()).Logger()

	known := map[string]bool{}
	names := map[string]bool{}
	for _, src := range sources {
		if names[src.Name] {
			return nil, &DeclarationError{Kind: ErrInvalidDeclaration, Source: src.Name, Detail: "source declared twice"}
		}
		names[src.Name] = true
		for _, m := range src.Models {
			known[m.Name] = true
		}
	}

	fragments := make([]Fragment, len(sources))
	errs := make([]error, len(sources))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			fragments[i], errs[i] = s.ReadSource(src, known)
			return nil
		})
	}
	_ = g.Wait()
	if err := firstError(sources, errs); err != nil {
		return nil, err
	}

	if len(s.opts.Servers) > 0 {
		fragments = append(fragments, Fragment{Servers: s.opts.Servers})
	}
	fragments = s.filter.apply(fragments)

	doc, err := Assemble(fragments, NewRegistry())
	if err != nil {
		return nil, err
	}
	if s.filter.active() {
		doc = pruneUnreferencedSchemas(doc)
	}

	warnings := collectWarnings(fragments)
	for _, w := range warnings {
		log.Warn().Str("source", w.Source).Str("handler", w.Handler).Str("subject", w.Subject).Msg(w.Message)
	}
	log.Info().
		Int("sources", len(sources)).
		Int("paths", len(doc.Paths)).
		Int("schemas", len(doc.Schemas)).
		Msg("document assembled")

	return &Result{
		Document: doc,
		OpenAPI:  BuildOpenAPI(doc, s.opts.Info),
		Warnings: warnings,
	}, nil
}

// ReadSource reads the models and handlers of one source. known holds every model name
// of the run so fields may reference models declared by other sources.
func (s *Service) ReadSource(src decl.Source, known map[string]bool) (Fragment, error) {
	frag := Fragment{Source: src.Name}
	for _, srv := range src.Servers {
		frag.Servers = append(frag.Servers, ir.Server{URL: srv.URL, Description: srv.Description})
	}
	for _, m := range src.Models {
		schema, err := ReadModel(m, known)
		if err != nil {
			return Fragment{}, withHandler(err, src.Name, "")
		}
		frag.Models = append(frag.Models, schema)
	}
	for _, h := range src.Handlers {
		op, warnings, err := s.reader.Read(src.Name, h)
		if err != nil {
			return Fragment{}, err
		}
		frag.Operations = append(frag.Operations, op)
		frag.Warnings = append(frag.Warnings, warnings...)
	}
	return frag, nil
}

// firstError returns the error of the first failing source in source name order
func firstError(sources []decl.Source, errs []error) error {
	idx := make([]int, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	sort.Slice(idx, func(a, b int) bool { return sources[idx[a]].Name < sources[idx[b]].Name })
	err := errs[idx[0]]
	var de *DeclarationError
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("source %s: %w", sources[idx[0]].Name, err)
}

func collectWarnings(fragments []Fragment) []Warning {
	ordered := make([]Fragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Source < ordered[j].Source })
	var out []Warning
	for _, f := range ordered {
		out = append(out, f.Warnings...)
	}
	return out
}
