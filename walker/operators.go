package walker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

// binaryTag maps a Ruby binary operator token to its send selector or a
// dedicated boolean tag (`and`/`or`), per spec §4.2: arithmetic and
// comparison operators lower to `send(lhs, op, rhs)` so the Converter can
// apply its operator precedence table uniformly with explicit method calls.
func binaryTag(op string) (tag string, selector string) {
	switch op {
	case "&&", "and":
		return "and", ""
	case "||", "or":
		return "or", ""
	default:
		return "send", op
	}
}

func visitBinary(w *walker, n *sitter.Node) ast.Node {
	left := n.ChildByFieldName("left")
	op := n.ChildByFieldName("operator")
	right := n.ChildByFieldName("right")

	opText := w.text(op)
	lhs := w.visit(left)
	rhs := w.visit(right)

	tag, selector := binaryTag(opText)
	if tag == "and" || tag == "or" {
		return w.remember(ast.NewAt(tag, w.locationOf(n), lhs, rhs))
	}
	loc := w.locationOf(n)
	loc.Selector = &ast.Span{Start: int(op.StartByte()), End: int(op.EndByte())}
	return w.remember(ast.NewAt(tag, loc, lhs, selector, rhs))
}

func visitUnary(w *walker, n *sitter.Node) ast.Node {
	op := n.ChildByFieldName("operand")
	operator := ""
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() {
			operator = w.text(c)
			break
		}
	}
	operand := w.visit(op)

	if operator == "!" || operator == "not" {
		return w.remember(ast.NewAt("send", w.locationOf(n), operand, "!"))
	}
	selector := operator
	if operator == "-" {
		selector = "-@"
	} else if operator == "+" {
		selector = "+@"
	}
	return w.remember(ast.NewAt("send", w.locationOf(n), operand, selector))
}

func visitTernary(w *walker, n *sitter.Node) ast.Node {
	cond := n.ChildByFieldName("condition")
	cons := n.ChildByFieldName("consequence")
	alt := n.ChildByFieldName("alternative")
	return w.remember(ast.NewAt("if", w.locationOf(n), w.visit(cond), w.visit(cons), w.visit(alt)))
}

func visitRange(w *walker, n *sitter.Node) ast.Node {
	begin := n.ChildByFieldName("begin")
	end := n.ChildByFieldName("end")

	var lo, hi any
	if begin != nil {
		lo = w.visit(begin)
	}
	if end != nil {
		hi = w.visit(end)
	}

	tag := "irange"
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && w.text(c) == "..." {
			tag = "erange"
			break
		}
	}
	return w.remember(ast.NewAt(tag, w.locationOf(n), lo, hi))
}

func visitRegexp(w *walker, n *sitter.Node) ast.Node {
	var parts []any
	hasInterp := false
	opts := ""
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
	last := n.Child(int(n.ChildCount()) - 1)
	if last != nil && !last.IsNamed() {
		opts = w.text(last)
		if len(opts) > 0 && opts[0] == '/' {
			opts = ""
		}
	}
	parts = append(parts, ast.New("regopt", opts))
	_ = hasInterp
	return w.remember(ast.NewAt("regexp", w.locationOf(n), parts...))
}
