package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Generation-time validation failures. Every error returned by the readers and the
// assembler wraps exactly one of these; use errors.Is to classify.
var (
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrDuplicateOperationID = errors.New("duplicate operation id")
	ErrAmbiguousLocation    = errors.New("ambiguous parameter location")
	ErrMissingDescription   = errors.New("missing response description")
	ErrSchemaConflict       = errors.New("schema conflict")
	ErrDanglingReference    = errors.New("dangling schema reference")
	ErrInvalidDeclaration   = errors.New("invalid declaration")
	ErrAnnotationConflict   = errors.New("conflicting operation annotations")
	ErrRouteConflict        = errors.New("route conflict")
)

// DeclarationError locates a validation failure in the declared input
type DeclarationError struct {
	Kind    error
	Source  string
	Handler string
	// Subject is the offending field, parameter, response code or schema name
	Subject string
	Detail  string
}

// Error implements the error interface
func (e *DeclarationError) Error() string {
	var loc []string
	if e.Source != "" {
		loc = append(loc, "source "+e.Source)
	}
	if e.Handler != "" {
		loc = append(loc, "handler "+e.Handler)
	}
	if e.Subject != "" {
		loc = append(loc, e.Subject)
	}
	msg := e.Kind.Error()
	if len(loc) > 0 {
		msg = strings.Join(loc, ", ") + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the error kind
func (e *DeclarationError) Unwrap() error {
	return e.Kind
}

func declErr(kind error, subject, format string, args ...any) *DeclarationError {
	return &DeclarationError{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// withHandler fills in handler context on declaration errors that lack it
func withHandler(err error, source, handler string) error {
	var de *DeclarationError
	if errors.As(err, &de) {
		if de.Source == "" {
			de.Source = source
		}
		if de.Handler == "" {
			de.Handler = handler
		}
	}
	return err
}

func withSubject(err error, subject string) error {
	var de *DeclarationError
	if errors.As(err, &de) && de.Subject == "" {
		de.Subject = subject
	}
	return err
}
