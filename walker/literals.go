package walker

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

// visitProgram walks the top-level `program` node, producing a `begin`
// wrapping its statements (collapsed to the single child if there is
// exactly one, per the Boundary test "deeply-nested begin blocks collapse
// to a single expression when they have one child").
func (w *walker) visitProgram(n *sitter.Node) ast.Node {
	stmts := w.visitStatements(n)
	if len(stmts) == 1 {
		if child, ok := stmts[0].(ast.Node); ok {
			return child
		}
	}
	return w.remember(ast.NewAt("begin", w.locationOf(n), stmts...))
}

func (w *walker) visitStatements(n *sitter.Node) []any {
	var out []any
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "comment" {
			continue
		}
		if !child.IsNamed() {
			continue
		}
		out = append(out, w.visit(child))
	}
	return out
}

// visit dispatches a single parse-tree node to its handler, mirroring the
// Walker's double-dispatch contract (spec §4.2): the parse node's class
// name (here, its tree-sitter Type()) selects a handler that constructs the
// corresponding uniform AST node.
func (w *walker) visit(n *sitter.Node) ast.Node {
	w.depth++
	defer func() { w.depth-- }()

	if h, ok := handlers[n.Type()]; ok {
		return h(w, n)
	}
	return w.visitUnknown(n)
}

// visitUnknown preserves the source text verbatim as an opaque leaf so a
// single unmapped construct does not abort the whole walk; the Converter's
// `verbatim` handler emits that text unchanged.
func (w *walker) visitUnknown(n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("verbatim", w.locationOf(n), w.text(n)))
}

type handlerFunc func(w *walker, n *sitter.Node) ast.Node

var handlers map[string]handlerFunc

func init() {
	handlers = map[string]handlerFunc{
		"integer":               visitInteger,
		"float":                 visitFloat,
		"rational":              visitRational,
		"complex":                visitComplex,
		"string":                 visitString,
		"bare_string":            visitString,
		"string_array":           visitStringArray,
		"symbol_array":           visitSymbolArray,
		"simple_symbol":          visitSymbol,
		"hash_key_symbol":        visitSymbol,
		"delimited_symbol":       visitDSym,
		"true":                   visitLiteralKeyword("true"),
		"false":                  visitLiteralKeyword("false"),
		"nil":                    visitLiteralKeyword("nil"),
		"self":                   visitLiteralKeyword("self"),
		"identifier":             visitIdentifierRef,
		"instance_variable":      visitIvar,
		"class_variable":         visitCvar,
		"global_variable":        visitGvar,
		"constant":               visitConst,
		"scope_resolution":       visitScopeResolution,
		"assignment":             visitAssignment,
		"operator_assignment":    visitOpAssignment,
		"multiple_assignment":    visitMultipleAssignment,
		"call":                   visitCall,
		"method_call":            visitCall,
		"element_reference":      visitElementReference,
		"binary":                 visitBinary,
		"unary":                  visitUnary,
		"conditional":            visitTernary,
		"if":                     visitIf,
		"unless":                 visitUnless,
		"while":                  visitWhile,
		"until":                  visitUntil,
		"for":                    visitFor,
		"case":                   visitCase,
		"case_match":             visitCaseMatch,
		"begin":                  visitKwBegin,
		"method":                 visitDef,
		"singleton_method":       visitDefs,
		"class":                  visitClass,
		"module":                 visitModule,
		"singleton_class":        visitSClass,
		"array":                  visitArray,
		"hash":                   visitHash,
		"pair":                   visitPair,
		"range":                  visitRange,
		"block":                  visitBlock,
		"do_block":               visitBlock,
		"break":                  visitKeywordWithValue("break"),
		"next":                   visitKeywordWithValue("next"),
		"return":                 visitKeywordWithValue("return"),
		"redo":                   visitBareKeyword("redo"),
		"retry":                  visitBareKeyword("retry"),
		"yield":                  visitYield,
		"lambda":                 visitLambdaLiteral,
		"regex":                  visitRegexp,
		"heredoc_beginning":      visitString,
	}
}

func visitLiteralKeyword(tag string) handlerFunc {
	return func(w *walker, n *sitter.Node) ast.Node {
		return w.remember(ast.NewAt(tag, w.locationOf(n)))
	}
}

func visitBareKeyword(tag string) handlerFunc {
	return func(w *walker, n *sitter.Node) ast.Node {
		return w.remember(ast.NewAt(tag, w.locationOf(n)))
	}
}

func visitKeywordWithValue(tag string) handlerFunc {
	return func(w *walker, n *sitter.Node) ast.Node {
		var val any
		if n.NamedChildCount() > 0 {
			val = w.visit(n.NamedChild(0))
		}
		return w.remember(ast.NewAt(tag, w.locationOf(n), val))
	}
}

func visitInteger(w *walker, n *sitter.Node) ast.Node {
	text := strings.ReplaceAll(w.text(n), "_", "")
	v, _ := strconv.ParseInt(text, 0, 64)
	return w.remember(ast.NewAt("int", w.locationOf(n), v))
}

func visitFloat(w *walker, n *sitter.Node) ast.Node {
	text := strings.ReplaceAll(w.text(n), "_", "")
	v, _ := strconv.ParseFloat(text, 64)
	return w.remember(ast.NewAt("float", w.locationOf(n), v))
}

func visitRational(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("rational", w.locationOf(n), strings.TrimSuffix(w.text(n), "r")))
}

func visitComplex(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("complex", w.locationOf(n), strings.TrimSuffix(w.text(n), "i")))
}

// visitString handles a single-line unescaped run as `str`, promoting to
// `dstr` with str-child parts plus interpolation parts when the source
// contains `#{...}` (spec §4.2). Heredocs are split on `\n` into separate
// str parts so the serializer can preserve the line shape (spec §4.5.8).
func visitString(w *walker, n *sitter.Node) ast.Node {
	var parts []any
	hasInterp := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string_content", "heredoc_content", "chained_string":
			for _, line := range strings.SplitAfter(w.text(child), "\n") {
				if line == "" {
					continue
				}
				parts = append(parts, ast.New("str", line))
			}
		case "interpolation":
			hasInterp = true
			if expr := firstNamedChild(child); expr != nil {
				parts = append(parts, w.visit(expr))
			}
		}
	}
	if !hasInterp {
		if len(parts) == 1 {
			if s, ok := parts[0].(ast.Node); ok && s.Type == "str" {
				return w.remember(ast.NewAt("str", w.locationOf(n), s.Children[0]))
			}
		}
		if len(parts) == 0 {
			return w.remember(ast.NewAt("str", w.locationOf(n), ""))
		}
	}
	return w.remember(ast.NewAt("dstr", w.locationOf(n), parts...))
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.IsNamed() {
			return c
		}
	}
	return nil
}

func visitStringArray(w *walker, n *sitter.Node) ast.Node {
	var elems []any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		elems = append(elems, ast.New("str", w.text(n.NamedChild(i))))
	}
	return w.remember(ast.NewAt("array", w.locationOf(n), elems...))
}

func visitSymbolArray(w *walker, n *sitter.Node) ast.Node {
	var elems []any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		elems = append(elems, ast.New("sym", w.text(n.NamedChild(i))))
	}
	return w.remember(ast.NewAt("array", w.locationOf(n), elems...))
}

func visitSymbol(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("sym", w.locationOf(n), strings.TrimPrefix(w.text(n), ":")))
}

func visitDSym(w *walker, n *sitter.Node) ast.Node {
	var parts []any
	hasInterp := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string_content":
			parts = append(parts, ast.New("str", w.text(child)))
		case "interpolation":
			hasInterp = true
			if expr := firstNamedChild(child); expr != nil {
				parts = append(parts, w.visit(expr))
			}
		}
	}
	if !hasInterp {
		return w.remember(ast.NewAt("sym", w.locationOf(n), joinStrParts(parts)))
	}
	return w.remember(ast.NewAt("dsym", w.locationOf(n), parts...))
}

func joinStrParts(parts []any) string {
	var b strings.Builder
	for _, p := range parts {
		if n, ok := p.(ast.Node); ok && len(n.Children) == 1 {
			if s, ok := n.Children[0].(string); ok {
				b.WriteString(s)
			}
		}
	}
	return b.String()
}

func visitIdentifierRef(w *walker, n *sitter.Node) ast.Node {
	// A bare identifier is a local variable read unless a later filter pass
	// (informed by Namespace) determines it is actually a parenless method
	// call; the Walker records it uniformly as `lvar` per spec §4.2, and
	// IsMethod()/Namespace.Find together disambiguate at Convert time.
	return w.remember(ast.NewAt("lvar", w.locationOf(n), w.text(n)))
}

func visitIvar(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("ivar", w.locationOf(n), w.text(n)))
}

func visitCvar(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("cvar", w.locationOf(n), w.text(n)))
}

func visitGvar(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("gvar", w.locationOf(n), w.text(n)))
}

func visitConst(w *walker, n *sitter.Node) ast.Node {
	return w.remember(ast.NewAt("const", w.locationOf(n), nil, w.text(n)))
}

// visitScopeResolution handles `A::B`; a bare top-level reference (`::B`)
// has parent `cbase` per spec §4.2.
func visitScopeResolution(w *walker, n *sitter.Node) ast.Node {
	scope := n.ChildByFieldName("scope")
	name := n.ChildByFieldName("name")
	var parent any
	if scope != nil {
		parent = w.visit(scope)
	} else {
		parent = ast.New("cbase")
	}
	return w.remember(ast.NewAt("const", w.locationOf(n), parent, w.text(name)))
}
