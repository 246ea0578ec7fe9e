package generator

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blimu-dev/spec-gen/pkg/config"
	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
	"github.com/blimu-dev/spec-gen/pkg/openapi"
)

// OptionsFromConfig maps a loaded configuration onto service options
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Info: DocumentInfo{
			OpenAPI:     cfg.OpenAPI,
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: cfg.Description,
		},
		Reader: ReaderOptions{
			DefaultMediaType:    cfg.DefaultMediaType,
			LegacyPolicy:        LegacyPolicy(cfg.LegacyAnnotations),
			OperationIDTemplate: cfg.OperationIDTemplate,
		},
		IncludeTags: cfg.IncludeTags,
		ExcludeTags: cfg.ExcludeTags,
	}
	for _, s := range cfg.Servers {
		opts.Servers = append(opts.Servers, ir.Server{URL: s.URL, Description: s.Description})
	}
	return opts
}

// LoadSources loads declaration files in the given order
func LoadSources(paths []string) ([]decl.Source, error) {
	sources := make([]decl.Source, 0, len(paths))
	for _, p := range paths {
		src, err := decl.LoadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// GenerateFromConfig loads the configured sources, generates the document, validates
// it and writes it to cfg.Output
func GenerateFromConfig(cfg *config.Config, log zerolog.Logger) (*Result, error) {
	sources, err := LoadSources(cfg.Sources)
	if err != nil {
		return nil, err
	}
	service, err := NewService(OptionsFromConfig(cfg), log)
	if err != nil {
		return nil, err
	}
	result, err := service.Generate(sources)
	if err != nil {
		return nil, err
	}
	if err := openapi.Validate(result.OpenAPI); err != nil {
		return nil, fmt.Errorf("generated document is not valid OpenAPI: %w", err)
	}

	format := openapi.FormatForPath(cfg.Output)
	if cfg.Format != "" {
		if format, err = openapi.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}
	if err := openapi.WriteFile(result.OpenAPI, cfg.Output, format); err != nil {
		return nil, err
	}
	log.Info().Str("output", cfg.Output).Str("format", string(format)).Msg("document written")
	return result, nil
}

// GenerateFromConfigFile is GenerateFromConfig for a config file path
func GenerateFromConfigFile(configPath string, log zerolog.Logger) (*Result, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return GenerateFromConfig(cfg, log)
}

// ValidateSpec validates an OpenAPI specification file or URL
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}
