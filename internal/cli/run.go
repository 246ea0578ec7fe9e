package cli

import (
	"errors"

	"github.com/blimu-dev/spec-gen/pkg/config"
	"github.com/blimu-dev/spec-gen/pkg/generator"
	"github.com/blimu-dev/spec-gen/pkg/logger"
	"github.com/blimu-dev/spec-gen/pkg/openapi"
)

type FallbackParams struct {
	Sources             []string
	Output              string
	Format              string
	Title               string
	Version             string
	Servers             []string
	IncludeTags         []string
	ExcludeTags         []string
	OperationIDTemplate string
	LegacyAnnotations   string
}

type RunGenerateParams struct {
	ConfigPath string
	LogLevel   string
	Pretty     bool
	Fallback   FallbackParams
}

func RunValidate(input string) error {
	return openapi.ValidateDocument(input)
}

func RunGenerate(p RunGenerateParams) error {
	var cfg *config.Config
	if p.ConfigPath == "" {
		if len(p.Fallback.Sources) == 0 || p.Fallback.Output == "" {
			return errors.New("either --config or --source and --out must be provided")
		}
		cfg = fallbackConfig(p.Fallback)
		if err := config.Validate(cfg); err != nil {
			return err
		}
	} else {
		loaded, err := config.Load(p.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := p.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	_, err := generator.GenerateFromConfig(cfg, logger.New(level, p.Pretty))
	return err
}
