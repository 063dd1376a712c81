package walker

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

// visitDef handles `def name(args) ... end`. The trailing `!`/`?` (if any)
// is part of the name text captured by the grammar's "name" field; the
// argument list is read from the separate "parameters" field.
func visitDef(w *walker, n *sitter.Node) ast.Node {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")

	args := w.visitDefParams(params)
	bodyNode := w.bodyOrNil(body)
	if bodyNode == nil {
		bodyNode = ast.New("nil")
	}
	return w.remember(ast.NewAt("def", w.locationOf(n), w.text(name), args, bodyNode))
}

func visitDefs(w *walker, n *sitter.Node) ast.Node {
	recv := n.ChildByFieldName("object")
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")

	var recvNode any
	if recv != nil {
		recvNode = w.visit(recv)
	}
	args := w.visitDefParams(params)
	bodyNode := w.bodyOrNil(body)
	if bodyNode == nil {
		bodyNode = ast.New("nil")
	}
	return w.remember(ast.NewAt("defs", w.locationOf(n), recvNode, w.text(name), args, bodyNode))
}

func (w *walker) visitDefParams(params *sitter.Node) ast.Node {
	if params == nil {
		return ast.New("args")
	}
	var argNodes []any
	for i := 0; i < int(params.NamedChildCount()); i++ {
		argNodes = append(argNodes, w.visitParam(params.NamedChild(i)))
	}
	return ast.New("args", argNodes...)
}

func visitClass(w *walker, n *sitter.Node) ast.Node {
	name := n.ChildByFieldName("name")
	superclass := n.ChildByFieldName("superclass")
	body := n.ChildByFieldName("body")

	nameNode := w.visit(name)
	var superNode any
	if superclass != nil {
		superNode = w.visit(superclass)
	}
	bodyNode := w.bodyOrNil(body)
	if bodyNode == nil {
		bodyNode = ast.New("nil")
	}
	return w.remember(ast.NewAt("class", w.locationOf(n), nameNode, superNode, bodyNode))
}

func visitModule(w *walker, n *sitter.Node) ast.Node {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")

	nameNode := w.visit(name)
	bodyNode := w.bodyOrNil(body)
	if bodyNode == nil {
		bodyNode = ast.New("nil")
	}
	return w.remember(ast.NewAt("module", w.locationOf(n), nameNode, bodyNode))
}

func visitSClass(w *walker, n *sitter.Node) ast.Node {
	value := n.ChildByFieldName("value")
	body := n.ChildByFieldName("body")

	valNode := w.visit(value)
	bodyNode := w.bodyOrNil(body)
	if bodyNode == nil {
		bodyNode = ast.New("nil")
	}
	return w.remember(ast.NewAt("sclass", w.locationOf(n), valNode, bodyNode))
}

func visitArray(w *walker, n *sitter.Node) ast.Node {
	var elems []any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "splat_argument" {
			if inner := firstNamedChild(c); inner != nil {
				elems = append(elems, w.remember(ast.New("splat", w.visit(inner))))
			}
			continue
		}
		elems = append(elems, w.visit(c))
	}
	return w.remember(ast.NewAt("array", w.locationOf(n), elems...))
}

func visitHash(w *walker, n *sitter.Node) ast.Node {
	var pairs []any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "hash_splat_argument" {
			if inner := firstNamedChild(c); inner != nil {
				pairs = append(pairs, w.remember(ast.New("kwsplat", w.visit(inner))))
			}
			continue
		}
		pairs = append(pairs, w.visit(c))
	}
	return w.remember(ast.NewAt("hash", w.locationOf(n), pairs...))
}

// visitPair handles `key: value` and `key => value` hash entries; a bare
// `key:` shorthand symbol key is normalized to a `sym` node so the Converter
// never special-cases the colon-vs-arrow spelling (spec §4.2).
func visitPair(w *walker, n *sitter.Node) ast.Node {
	key := n.ChildByFieldName("key")
	value := n.ChildByFieldName("value")

	var keyNode any
	switch key.Type() {
	case "hash_key_symbol":
		keyNode = ast.New("sym", strings.TrimSuffix(w.text(key), ":"))
	default:
		keyNode = w.visit(key)
	}
	return w.remember(ast.NewAt("pair", w.locationOf(n), keyNode, w.visit(value)))
}

func visitBlock(w *walker, n *sitter.Node) ast.Node {
	call := firstNamedChildOfTypes(n, "call", "method_call", "identifier")
	if call == nil {
		return w.remember(ast.NewAt("verbatim", w.locationOf(n), w.text(n)))
	}
	sendNode := w.visit(call)
	return w.remember(ast.NewAt("block", w.locationOf(n), sendNode, w.visitBlockParams(n), w.visitBlockBody(n)))
}

func firstNamedChildOfTypes(n *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}
