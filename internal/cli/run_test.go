package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settlementsFixture = "../../pkg/generator/testdata/settlements.yaml"

func TestRunGenerateWithFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "openapi.yaml")
	err := RunGenerate(RunGenerateParams{
		LogLevel: "error",
		Fallback: FallbackParams{
			Sources: []string{settlementsFixture},
			Output:  out,
			Title:   "Settlements",
			Version: "1.0.0",
			Servers: []string{"https://settlements.example.com"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, RunValidate(out))
}

func TestRunGenerateRequiresInput(t *testing.T) {
	err := RunGenerate(RunGenerateParams{})
	assert.Error(t, err)

	err = RunGenerate(RunGenerateParams{Fallback: FallbackParams{Sources: []string{settlementsFixture}}})
	assert.Error(t, err)
}

func TestRunGenerateRejectsInvalidFallback(t *testing.T) {
	err := RunGenerate(RunGenerateParams{
		Fallback: FallbackParams{
			Sources:           []string{settlementsFixture},
			Output:            filepath.Join(t.TempDir(), "openapi.json"),
			Title:             "Settlements",
			Version:           "1.0.0",
			LegacyAnnotations: "prefer",
		},
	})
	assert.Error(t, err)
}

func TestFallbackConfig(t *testing.T) {
	cfg := fallbackConfig(FallbackParams{
		Sources: []string{"a.yaml"},
		Output:  "out.json",
		Servers: []string{"/api"},
	})
	assert.True(t, filepath.IsAbs(cfg.Sources[0]))
	assert.True(t, filepath.IsAbs(cfg.Output))
	assert.Equal(t, "/api", cfg.Servers[0].URL)
}
