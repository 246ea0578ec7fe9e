package generator

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/spec-gen/pkg/utils"
)

// DefaultOperationIDTemplate renders "GET /apitest/search/{propertyId}" as
// "getApitestSearchByPropertyId".
const DefaultOperationIDTemplate = `{{ camel .Method }}{{ pathWords .Path }}`

// OperationIDInput is the data an operation id template is rendered with
type OperationIDInput struct {
	Method     string
	Path       string
	Handler    string
	Controller string
}

var nondeterministicFuncs = []string{
	"now", "uuidv4", "shuffle",
	"randAlpha", "randAlphaNum", "randAscii", "randNumeric", "randBytes", "randInt",
}

type operationIDNamer struct {
	tmpl *template.Template
}

func newOperationIDNamer(text string) (*operationIDNamer, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultOperationIDTemplate
	}
	funcMap := sprig.TxtFuncMap()
	// ids must be reproducible across runs
	for _, name := range nondeterministicFuncs {
		delete(funcMap, name)
	}
	funcMap["camel"] = utils.ToCamelCase
	funcMap["pascal"] = utils.ToPascalCase
	funcMap["snake"] = utils.ToSnakeCase
	funcMap["pathWords"] = utils.PathWords

	tmpl, err := template.New("operationId").Option("missingkey=error").Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid operation id template: %w", err)
	}
	return &operationIDNamer{tmpl: tmpl}, nil
}

// Name renders the operation id. Rendering is pure, so equal inputs give equal ids.
func (n *operationIDNamer) Name(in OperationIDInput) (string, error) {
	var b strings.Builder
	if err := n.tmpl.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render operation id: %w", err)
	}
	id := strings.TrimSpace(b.String())
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return "", declErr(ErrInvalidDeclaration, "operationId", "template produced %q", id)
	}
	return id, nil
}
