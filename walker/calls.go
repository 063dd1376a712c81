package walker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

// visitCall handles `receiver.method(args)`, `receiver&.method(args)`, and
// bare `method(args)` invocations, producing `send`/`csend` per spec §4.2.
// A `&symbol` block-argument becomes `block_pass(sym)`.
func visitCall(w *walker, n *sitter.Node) ast.Node {
	receiver := n.ChildByFieldName("receiver")
	method := n.ChildByFieldName("method")
	argsNode := n.ChildByFieldName("arguments")

	var recv any
	if receiver != nil {
		recv = w.visit(receiver)
	}

	name := ""
	if method != nil {
		name = w.text(method)
	} else {
		name = w.text(n) // bare call, method name is the whole node text in degenerate grammars
	}

	tag := "send"
	if isSafeNav(w, n) {
		tag = "csend"
	}

	children := []any{recv, name}
	children = append(children, w.visitArguments(argsNode)...)

	selStart := int(n.StartByte())
	selEnd := int(n.EndByte())
	if method != nil {
		selStart, selEnd = int(method.StartByte()), int(method.EndByte())
	}
	loc := w.locationOf(n)
	loc.Selector = &ast.Span{Start: selStart, End: selEnd}

	send := ast.NewAt(tag, loc, children...)

	if block := findBlockSibling(n); block != nil {
		return w.remember(ast.NewAt("block", loc, w.remember(send), w.visitBlockParams(block), w.visitBlockBody(block)))
	}
	return w.remember(send)
}

func isSafeNav(w *walker, n *sitter.Node) bool {
	// tree-sitter-ruby represents &. as an "operator" field on the call node;
	// only that field's text is inspected.
	op := n.ChildByFieldName("operator")
	return op != nil && w.text(op) == "&."
}

func (w *walker) visitArguments(argsNode *sitter.Node) []any {
	if argsNode == nil {
		return nil
	}
	var out []any
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		arg := argsNode.NamedChild(i)
		if arg.Type() == "block_argument" {
			if inner := firstNamedChild(arg); inner != nil {
				out = append(out, w.remember(ast.New("block_pass", w.visit(inner))))
			}
			continue
		}
		out = append(out, w.visit(arg))
	}
	return out
}

// findBlockSibling looks for a `do...end`/`{...}` block attached to a call;
// in tree-sitter-ruby this is a sibling "block"/"do_block" node of the call
// inside a parent "method_call" wrapper, found here by scanning the parent's
// children; it returns nil when absent (most calls have no block).
func findBlockSibling(n *sitter.Node) *sitter.Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		c := parent.Child(i)
		if c != n && (c.Type() == "block" || c.Type() == "do_block") {
			return c
		}
	}
	return nil
}

func (w *walker) visitBlockParams(block *sitter.Node) ast.Node {
	params := block.ChildByFieldName("parameters")
	if params == nil {
		return ast.New("args")
	}
	var argNodes []any
	for i := 0; i < int(params.NamedChildCount()); i++ {
		argNodes = append(argNodes, w.visitParam(params.NamedChild(i)))
	}
	return ast.New("args", argNodes...)
}

func (w *walker) visitBlockBody(block *sitter.Node) ast.Node {
	body := block.ChildByFieldName("body")
	if body == nil {
		return ast.New("nil")
	}
	stmts := w.visitStatements(body)
	if len(stmts) == 1 {
		if n, ok := stmts[0].(ast.Node); ok {
			return n
		}
	}
	return ast.New("begin", stmts...)
}

func (w *walker) visitParam(n *sitter.Node) any {
	switch n.Type() {
	case "identifier":
		return w.remember(ast.NewAt("arg", w.locationOf(n), w.text(n)))
	case "splat_parameter":
		name := ""
		if c := firstNamedChild(n); c != nil {
			name = w.text(c)
		}
		return w.remember(ast.NewAt("restarg", w.locationOf(n), name))
	case "block_parameter":
		name := ""
		if c := firstNamedChild(n); c != nil {
			name = w.text(c)
		}
		return w.remember(ast.NewAt("blockarg", w.locationOf(n), name))
	case "keyword_parameter":
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		if value != nil {
			return w.remember(ast.NewAt("kwoptarg", w.locationOf(n), w.text(name), w.visit(value)))
		}
		return w.remember(ast.NewAt("kwarg", w.locationOf(n), w.text(name)))
	case "hash_splat_parameter":
		name := ""
		if c := firstNamedChild(n); c != nil {
			name = w.text(c)
		}
		return w.remember(ast.NewAt("kwrestarg", w.locationOf(n), name))
	case "destructured_parameter":
		var inner []any
		for i := 0; i < int(n.NamedChildCount()); i++ {
			inner = append(inner, w.visitParam(n.NamedChild(i)))
		}
		return w.remember(ast.NewAt("mlhs", w.locationOf(n), inner...))
	default:
		return w.remember(ast.NewAt("arg", w.locationOf(n), w.text(n)))
	}
}

func visitElementReference(w *walker, n *sitter.Node) ast.Node {
	obj := n.ChildByFieldName("object")
	recv := w.visit(obj)
	children := []any{recv, "[]"}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == obj {
			continue
		}
		children = append(children, w.visit(child))
	}
	return w.remember(ast.NewAt("send", w.locationOf(n), children...))
}

func visitYield(w *walker, n *sitter.Node) ast.Node {
	var args []any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		args = append(args, w.visit(n.NamedChild(i)))
	}
	return w.remember(ast.NewAt("yield", w.locationOf(n), args...))
}

// visitLambdaLiteral handles `->(x) { ... }` stabby lambda syntax.
func visitLambdaLiteral(w *walker, n *sitter.Node) ast.Node {
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")

	var argNodes []any
	if params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			argNodes = append(argNodes, w.visitParam(params.NamedChild(i)))
		}
	}
	args := ast.New("args", argNodes...)

	var bodyNode ast.Node
	if body != nil {
		stmts := w.visitStatements(body)
		if len(stmts) == 1 {
			bodyNode, _ = stmts[0].(ast.Node)
		} else {
			bodyNode = ast.New("begin", stmts...)
		}
	} else {
		bodyNode = ast.New("nil")
	}

	send := ast.NewAt("send", w.locationOf(n), nil, "lambda")
	return w.remember(ast.NewAt("block", w.locationOf(n), send, args, bodyNode))
}
