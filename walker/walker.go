// Package walker converts a tree-sitter Ruby parse tree into the uniform
// semantic ast.Node produced by the core, attaching ast.Location records and
// associating comments, per spec §4.2.
//
// The external parser is github.com/smacker/go-tree-sitter with its ruby
// grammar binding, the same dependency and calling convention the pack's own
// Ruby front ends use (see other_examples' l3aro ruby extractor and
// hatlesswizard ruby analyzer): a *sitter.Parser configured with
// ruby.GetLanguage(), producing a *sitter.Tree whose RootNode() is walked by
// dispatching on (*sitter.Node).Type().
package walker

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/rubyjs/compiler/ast"
	"github.com/rubyjs/compiler/diagnostics"
)

// Result is the Walker's output: the program AST and its comments map.
type Result struct {
	Program  ast.Node
	Comments *ast.CommentsMap
}

type walker struct {
	src     *ast.Source
	located []ast.LocatedNode
	depth   int
}

// Parse parses Ruby source text into the uniform AST. name is the logical
// file name recorded on every Location (and surfaced in source maps).
func Parse(name string, text []byte) (*Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, text)
	if err != nil {
		return nil, diagnostics.NewParseError(fmt.Sprintf("failed to parse source: %v", err), nil)
	}
	root := tree.RootNode()

	src := ast.NewSource(name, text)
	w := &walker{src: src}

	if root.HasError() {
		if errNode := firstErrorNode(root); errNode != nil {
			loc := w.locationOf(errNode)
			return nil, diagnostics.NewParseError("syntax error", loc)
		}
	}

	program := w.visitProgram(root)
	comments := w.collectComments(root)
	merged := ast.Associate(w.located, comments)

	return &Result{Program: program, Comments: merged}, nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// locationOf builds an ast.Location spanning n. The traversal depth used as
// the comment-association tiebreaker is recorded by remember, not here.
func (w *walker) locationOf(n *sitter.Node) *ast.Location {
	return &ast.Location{
		Span:   ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())},
		Source: w.src,
		HasEnd: true,
	}
}

// remember records a located node for the later comment-association pass.
// Called by visit* functions that build a node carrying a genuine Location
// (begin/grouping nodes are skipped, per spec §4.2).
func (w *walker) remember(n ast.Node) ast.Node {
	if n.Loc != nil {
		w.located = append(w.located, ast.LocatedNode{
			Node:  n,
			Start: n.Loc.Start,
			End:   n.Loc.End,
			Depth: w.depth,
		})
	}
	return n
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(w.src.Slice(ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}))
}

func (w *walker) collectComments(root *sitter.Node) []ast.Comment {
	var out []ast.Comment
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" {
			span := ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
			out = append(out, ast.Comment{
				Text: w.text(n),
				Span: span,
				Line: w.src.LineForPosition(span.Start),
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}
