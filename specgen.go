// Package specgen generates OpenAPI 3 documents from declared controller metadata.
//
// Controllers, their route handlers and the record types they return are described as
// plain declaration records (see package decl), usually loaded from YAML or JSON files
// produced by a framework introspection step. The generator reads every declaration,
// validates it and assembles one deterministic document.
//
// Quick Start:
//
//	import "github.com/blimu-dev/spec-gen"
//
//	// Generate from a config file listing the declaration files
//	err := specgen.GenerateFromConfig("./spec-gen.yaml")
//
// For more control, see the generator package.
package specgen

import (
	"github.com/blimu-dev/spec-gen/pkg/config"
	"github.com/blimu-dev/spec-gen/pkg/generator"
	"github.com/blimu-dev/spec-gen/pkg/logger"
	"github.com/blimu-dev/spec-gen/pkg/openapi"
)

// GenerateFromConfig generates the document described by a YAML configuration file
// and writes it to the configured output.
//
// Example:
//
//	err := specgen.GenerateFromConfig("./spec-gen.yaml")
func GenerateFromConfig(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	_, err = generator.GenerateFromConfig(cfg, logger.New(cfg.LogLevel, false))
	return err
}

// Generate generates a document from declaration files without a config file.
//
// Example:
//
//	err := specgen.Generate(specgen.GenerateOptions{
//		Sources: []string{"./declarations/settlements.yaml"},
//		Output:  "./openapi.yaml",
//		Title:   "Settlements",
//		Version: "1.0.0",
//	})
func Generate(opts GenerateOptions) error {
	cfg := &config.Config{
		Title:   opts.Title,
		Version: opts.Version,
		Sources: opts.Sources,
		Output:  opts.Output,
		Format:  opts.Format,
	}
	for _, u := range opts.Servers {
		cfg.Servers = append(cfg.Servers, config.Server{URL: u})
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	_, err := generator.GenerateFromConfig(cfg, logger.New(opts.LogLevel, false))
	return err
}

// ValidateSpec validates an OpenAPI specification file or URL.
//
// Example:
//
//	if err := specgen.ValidateSpec("./openapi.yaml"); err != nil {
//		log.Fatalf("Invalid OpenAPI spec: %v", err)
//	}
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}

// GenerateOptions contains options for Generate
type GenerateOptions struct {
	Sources  []string // Declaration files (yaml/json)
	Output   string   // Output file; .yaml/.yml selects YAML
	Format   string   // Overrides the format picked from Output
	Title    string   // info.title
	Version  string   // info.version
	Servers  []string // Server URLs listed ahead of declared ones
	LogLevel string   // zerolog level, default info
}
