// Package serializer implements the mutable line-of-token buffer that backs
// the Converter: Token, Line, and Serializer, plus the column/line
// accounting and wrap/compact helpers used to turn an emitted token stream
// into formatted JavaScript text (spec §4.6).
//
// The buffer shape mirrors the teacher's builder.Emit pattern (write
// fragments into a strings.Builder, accumulate lines) generalized from a
// one-shot string accumulator into a structured, attributable, re-indentable
// token stream because the Converter needs per-token AST attribution for
// source-map emission, not just text.
package serializer

import "github.com/rubyjs/compiler/ast"

// Token pairs emitted text with the AST node responsible for it, so a later
// pass can attribute every output character to a source span.
type Token struct {
	Text string
	Node *ast.Node
}

// Line is an ordered run of tokens sharing one indent column.
type Line struct {
	Tokens []Token
	Indent int
}

// Width reports the rendered character width of the line.
func (l *Line) Width() int {
	n := 0
	for _, t := range l.Tokens {
		n += len(t.Text)
	}
	return n + l.Indent
}

// Text concatenates the line's tokens without indentation.
func (l *Line) Text() string {
	var out []byte
	for _, t := range l.Tokens {
		out = append(out, t.Text...)
	}
	return string(out)
}
