package walker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

// asgnTagFor maps a read-form tag to its corresponding assignment tag
// (lvar -> lvasgn, ivar -> ivasgn, ...), per spec §4.2.
func asgnTagFor(readTag string) string {
	switch readTag {
	case "lvar":
		return "lvasgn"
	case "ivar":
		return "ivasgn"
	case "cvar":
		return "cvasgn"
	case "gvar":
		return "gvasgn"
	case "const":
		return "casgn"
	default:
		return "lvasgn"
	}
}

func visitAssignment(w *walker, n *sitter.Node) ast.Node {
	lhs := n.ChildByFieldName("left")
	rhs := n.ChildByFieldName("right")
	target := w.visit(lhs)
	tag := asgnTagFor(target.Type)
	value := w.visit(rhs)

	if tag == "casgn" {
		parent, name := target.Child(0), target.Child(1)
		return w.remember(ast.NewAt(tag, w.locationOf(n), parent, name, value))
	}
	name, _ := target.Child(0).(string)
	return w.remember(ast.NewAt(tag, w.locationOf(n), name, value))
}

func visitOpAssignment(w *walker, n *sitter.Node) ast.Node {
	lhs := n.ChildByFieldName("left")
	op := n.ChildByFieldName("operator")
	rhs := n.ChildByFieldName("right")
	target := w.visit(lhs)
	value := w.visit(rhs)
	opText := w.text(op)

	switch opText {
	case "||=":
		return w.remember(ast.NewAt("or_asgn", w.locationOf(n), target, value))
	case "&&=":
		return w.remember(ast.NewAt("and_asgn", w.locationOf(n), target, value))
	default:
		bareOp := opText
		if len(bareOp) > 0 && bareOp[len(bareOp)-1] == '=' {
			bareOp = bareOp[:len(bareOp)-1]
		}
		return w.remember(ast.NewAt("op_asgn", w.locationOf(n), target, bareOp, value))
	}
}

func visitMultipleAssignment(w *walker, n *sitter.Node) ast.Node {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	var targets []any
	if left != nil {
		for i := 0; i < int(left.NamedChildCount()); i++ {
			targets = append(targets, w.visit(left.NamedChild(i)))
		}
	}
	mlhs := ast.New("mlhs", targets...)

	var values []any
	if right != nil {
		if right.Type() == "right_assignment_list" || right.IsNamed() && right.ChildCount() > 1 {
			for i := 0; i < int(right.NamedChildCount()); i++ {
				values = append(values, w.visit(right.NamedChild(i)))
			}
		} else {
			values = append(values, w.visit(right))
		}
	}
	var rhs any
	if len(values) == 1 {
		rhs = values[0]
	} else {
		rhs = ast.New("array", values...)
	}

	return w.remember(ast.NewAt("masgn", w.locationOf(n), mlhs, rhs))
}
