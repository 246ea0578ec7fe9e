package generator

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/blimu-dev/spec-gen/pkg/decl"
	"github.com/blimu-dev/spec-gen/pkg/ir"
)

const defaultCode = "default"

// Warning is a non-fatal finding surfaced alongside a generated document
type Warning struct {
	Source  string
	Handler string
	Subject string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Handler, w.Subject, w.Message)
}

// ClassifyResponses maps declared responses to ResponseDescriptors ordered by code, with
// "default" last. A code declared twice keeps the last declaration and yields a Warning;
// descriptions are checked on the declaration that wins.
func ClassifyResponses(declared []decl.Response, defaultMediaType string) ([]ir.ResponseDescriptor, []Warning, error) {
	byCode := make(map[string]ir.ResponseDescriptor, len(declared))
	var warnings []Warning

	for _, r := range declared {
		code, err := normalizeCode(r.Code)
		if err != nil {
			return nil, nil, err
		}
		subject := "response " + code

		content, err := classifyContent(r.Content, defaultMediaType)
		if err != nil {
			return nil, nil, withSubject(err, subject)
		}

		if _, dup := byCode[code]; dup {
			warnings = append(warnings, Warning{Subject: subject, Message: "declared more than once, last declaration wins"})
		}
		byCode[code] = ir.ResponseDescriptor{Code: code, Description: strings.TrimSpace(r.Description), Content: content}
	}

	if len(byCode) == 0 {
		byCode["200"] = ir.ResponseDescriptor{Code: "200", Description: defaultDescription("200")}
	}

	codes := make([]string, 0, len(byCode))
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i] == defaultCode || codes[j] == defaultCode {
			return codes[j] == defaultCode && codes[i] != defaultCode
		}
		return codes[i] < codes[j]
	})
	out := make([]ir.ResponseDescriptor, 0, len(codes))
	for _, c := range codes {
		r := byCode[c]
		if r.Description == "" {
			if isErrorCode(c) {
				return nil, nil, declErr(ErrMissingDescription, "response "+c, "error responses must be described")
			}
			r.Description = defaultDescription(c)
		}
		out = append(out, r)
	}
	return out, warnings, nil
}

func classifyContent(c *decl.Content, defaultMediaType string) (*ir.ContentDescriptor, error) {
	if c == nil {
		return nil, nil
	}
	if c.Schema != "" && c.ArrayOf != "" {
		return nil, declErr(ErrInvalidDeclaration, "", "content declares both schema and arrayOf")
	}
	mediaType := c.MediaType
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	switch {
	case c.ArrayOf != "":
		items, err := resolveNativeType(c.ArrayOf, nil, refsDeferred)
		if err != nil {
			return nil, err
		}
		return &ir.ContentDescriptor{MediaType: mediaType, Shape: ir.ShapeArray, Schema: items}, nil
	case c.Schema != "" && !isVoid(c.Schema):
		t, err := resolveNativeType(c.Schema, nil, refsDeferred)
		if err != nil {
			return nil, err
		}
		return &ir.ContentDescriptor{MediaType: mediaType, Shape: ir.ShapeSchema, Schema: t}, nil
	}
	return nil, nil
}

func normalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, defaultCode) {
		return defaultCode, nil
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 100 || n > 599 || len(code) != 3 {
		return "", declErr(ErrInvalidDeclaration, "response "+code, "status code must be default or 100-599")
	}
	return code, nil
}

func isErrorCode(code string) bool {
	return code[0] == '4' || code[0] == '5'
}

func isVoid(t string) bool {
	t = simpleName(t)
	return t == "void" || t == "Void"
}

func defaultDescription(code string) string {
	if code == defaultCode {
		return "default response"
	}
	n, _ := strconv.Atoi(code)
	if text := http.StatusText(n); text != "" {
		return text
	}
	return "Response " + code
}
