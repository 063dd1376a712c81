// Package diagnostics implements the compiler's error taxonomy (spec §7):
// Parse error, Unsupported construct, Semantic conflict, Security violation,
// and Configuration conflict. All errors are fatal within a single file —
// there is no partial output and no local recovery (spec §7's propagation
// policy).
//
// Errors wrap github.com/pkg/errors so a stack trace is captured at the
// point of failure (grounded on direct pack usage, e.g.
// jinterlante1206-AleutianLocal's grounding package and
// theRebelliousNerd-codenerd's coder generation package), attached to the
// offending ast.Location so a host can render both "what" and "where".
package diagnostics

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rubyjs/compiler/ast"
)

// Kind distinguishes the five error categories of spec §7.
type Kind string

const (
	KindParseError            Kind = "parse_error"
	KindUnsupportedConstruct  Kind = "unsupported_construct"
	KindSemanticConflict      Kind = "semantic_conflict"
	KindSecurityViolation     Kind = "security_violation"
	KindConfigurationConflict Kind = "configuration_conflict"
)

// Error is satisfied by every diagnostic this package produces, so a host
// can type-assert and branch on Kind() without depending on a concrete type.
type Error interface {
	error
	Kind() Kind
	Location() *ast.Location
}

type compilerError struct {
	kind    Kind
	message string
	loc     *ast.Location
	cause   error
}

func (e *compilerError) Kind() Kind            { return e.kind }
func (e *compilerError) Location() *ast.Location { return e.loc }

func (e *compilerError) Error() string {
	if e.loc != nil && e.loc.Source != nil {
		return fmt.Sprintf("%s at %s:%d:%d", e.message, e.loc.File(), e.loc.Line(), e.loc.Column())
	}
	if e.loc != nil {
		return fmt.Sprintf("%s at offset %d", e.message, e.loc.Start)
	}
	return e.message
}

func (e *compilerError) Unwrap() error { return e.cause }

func newError(kind Kind, message string, loc *ast.Location) *compilerError {
	return &compilerError{kind: kind, message: message, loc: loc, cause: errors.New(message)}
}

// NewParseError wraps a diagnostic surfaced verbatim from the external
// parser (spec §7: "Parse error").
func NewParseError(message string, loc *ast.Location) Error {
	return newError(KindParseError, message, loc)
}

// NewUnsupportedConstructError reports a Converter handler table miss, or a
// handler invariant failure (e.g. break with an argument outside a `loop`
// block, a non-catchall rescue clause following a catchall).
func NewUnsupportedConstructError(message string, loc *ast.Location) Error {
	return newError(KindUnsupportedConstruct, message, loc)
}

// NewSemanticConflictError reports a construct that should have been
// rewritten or rejected upstream (operator-method definitions, eval,
// instance_eval, method_missing in a non-classifiable class) reaching the
// Converter unconverted.
func NewSemanticConflictError(message string, loc *ast.Location) Error {
	return newError(KindSemanticConflict, message, loc)
}

// NewSecurityError reports a backtick string evaluated without a `binding`
// option configured.
func NewSecurityError(message string, loc *ast.Location) Error {
	return newError(KindSecurityViolation, message, loc)
}

// NewConfigurationConflictError reports mutually exclusive options (e.g.
// underscored_private forced true while targeting ES2022 private fields with
// a filter that assumes `#` names).
func NewConfigurationConflictError(message string) Error {
	return newError(KindConfigurationConflict, message, nil)
}

// Wrap attaches a stack trace to a foreign error without reclassifying it;
// used by Pipeline/Converter call sites that bubble up an unexpected error
// from a filter handler.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}
