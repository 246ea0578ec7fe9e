package decl

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// LoadFile loads a declaration file. YAML and JSON are both accepted.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, err
	}
	src, err := Parse(data)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Parse decodes and validates a single declaration document
func Parse(data []byte) (Source, error) {
	var src Source
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&src); err != nil {
		return Source{}, fmt.Errorf("decode declarations: %w", err)
	}
	if err := Validate(src); err != nil {
		return Source{}, err
	}
	return src, nil
}

// Validate checks the structural shape of a source (required names, known enums)
func Validate(src Source) error {
	if err := structValidator().Struct(src); err != nil {
		return fmt.Errorf("invalid declarations for source %q: %w", src.Name, err)
	}
	return nil
}
