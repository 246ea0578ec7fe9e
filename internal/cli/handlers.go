package cli

import (
	"path/filepath"

	"github.com/blimu-dev/spec-gen/pkg/config"
)

func fallbackConfig(f FallbackParams) *config.Config {
	cfg := &config.Config{
		Title:               f.Title,
		Version:             f.Version,
		Output:              absPath(f.Output),
		Format:              f.Format,
		IncludeTags:         f.IncludeTags,
		ExcludeTags:         f.ExcludeTags,
		OperationIDTemplate: f.OperationIDTemplate,
		LegacyAnnotations:   f.LegacyAnnotations,
	}
	for _, s := range f.Sources {
		cfg.Sources = append(cfg.Sources, absPath(s))
	}
	for _, u := range f.Servers {
		cfg.Servers = append(cfg.Servers, config.Server{URL: u})
	}
	return cfg
}

// utility
func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
