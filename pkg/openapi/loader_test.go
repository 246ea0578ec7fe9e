package openapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: " yml ", want: FormatYAML},
		{in: "toml", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := ParseFormat(test.in)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("openapi.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("OPENAPI.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("openapi.json"))
	assert.Equal(t, FormatJSON, FormatForPath("openapi"))
}

func TestValidateDocument(t *testing.T) {
	require.NoError(t, ValidateDocument("testdata/home.yaml"))
	assert.Error(t, ValidateDocument("testdata/missing.yaml"))
}

func TestMarshalRoundTrip(t *testing.T) {
	doc, err := LoadDocument("testdata/home.yaml")
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(doc, format)
			require.NoError(t, err)
			if format == FormatJSON {
				assert.True(t, strings.HasPrefix(string(data), "{"))
			} else {
				assert.Contains(t, string(data), "openapi: 3.0.3")
			}

			back, err := Parse(data)
			require.NoError(t, err)
			require.NoError(t, Validate(back))
			assert.Equal(t, "get", back.Paths.Find("/").Get.OperationID)

			again, err := Marshal(back, format)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestMarshalUnknownFormat(t *testing.T) {
	_, err := Marshal(&openapi3.T{OpenAPI: "3.0.3"}, Format("toml"))
	assert.Error(t, err)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	doc, err := LoadDocument("testdata/home.yaml")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "a", "b", "openapi.yaml")
	require.NoError(t, WriteFile(doc, out, FormatYAML))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Home")
	require.NoError(t, ValidateDocument(out))
}
