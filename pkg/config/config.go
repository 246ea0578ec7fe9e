package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SupportedOpenAPI is the range of OpenAPI versions the generator can emit
const SupportedOpenAPI = "~3.0"

// Config represents the complete configuration for document generation
type Config struct {
	// OpenAPI is the version written to the document (e.g. "3.0.3")
	OpenAPI     string `yaml:"openapi" validate:"omitempty,openapiversion"`
	Title       string `yaml:"title" validate:"required"`
	Version     string `yaml:"version" validate:"required"`
	Description string `yaml:"description"`
	// Servers are listed ahead of servers declared by sources
	Servers []Server `yaml:"servers" validate:"dive"`
	// Sources are declaration files, one scanned controller each
	Sources []string `yaml:"sources" validate:"required,min=1,dive,required"`
	// Output is the file the document is written to; its extension picks the format
	// unless Format is set
	Output string `yaml:"output" validate:"required"`
	Format string `yaml:"format" validate:"omitempty,oneof=json yaml yml"`
	// DefaultMediaType applies to content that does not name one
	DefaultMediaType string `yaml:"defaultMediaType"`
	// OperationIDTemplate is a text/template (sprig functions available) rendered with
	// .Method, .Path, .Handler and .Controller for handlers without an operation id
	OperationIDTemplate string `yaml:"operationIdTemplate"`
	// LegacyAnnotations is merge, ignore or reject
	LegacyAnnotations string   `yaml:"legacyAnnotations" validate:"omitempty,oneof=merge ignore reject"`
	IncludeTags       []string `yaml:"includeTags"`
	ExcludeTags       []string `yaml:"excludeTags"`
	// LogLevel is a zerolog level name
	LogLevel string `yaml:"logLevel"`
}

// Server is a top-level server entry
type Server struct {
	URL         string `yaml:"url" validate:"required"`
	Description string `yaml:"description"`
}

// Load loads configuration from a YAML file. Relative sources and output resolve
// against the directory of the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, s := range cfg.Sources {
		cfg.Sources[i] = resolve(base, s)
	}
	if cfg.Output != "" {
		cfg.Output = resolve(base, cfg.Output)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and enumerations
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("openapiversion", validateOpenAPIVersion); err != nil {
		return err
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validateOpenAPIVersion(fl validator.FieldLevel) bool {
	return SupportsOpenAPIVersion(fl.Field().String())
}

// SupportsOpenAPIVersion reports whether version is within SupportedOpenAPI
func SupportsOpenAPIVersion(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(SupportedOpenAPI)
	if err != nil {
		return false
	}
	return c.Check(v)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(filepath.Join(base, p))
	if err != nil {
		return filepath.Join(base, p)
	}
	return abs
}
