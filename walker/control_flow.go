package walker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rubyjs/compiler/ast"
)

func visitIf(w *walker, n *sitter.Node) ast.Node {
	cond := n.ChildByFieldName("condition")
	cons := n.ChildByFieldName("consequence")
	alt := n.ChildByFieldName("alternative")

	condNode := w.visit(cond)
	consNode := w.bodyOrNil(cons)
	var altNode any
	if alt != nil {
		altNode = w.visitElse(alt)
	}
	return w.remember(ast.NewAt("if", w.locationOf(n), condNode, consNode, altNode))
}

func visitUnless(w *walker, n *sitter.Node) ast.Node {
	cond := n.ChildByFieldName("condition")
	cons := n.ChildByFieldName("consequence")
	alt := n.ChildByFieldName("alternative")

	condNode := w.visit(cond)
	consNode := w.bodyOrNil(cons)
	var altNode any
	if alt != nil {
		altNode = w.visitElse(alt)
	}
	// unless is modeled as `if` with branches swapped, not a separate tag,
	// so the Converter's single `if` handler covers both forms (spec §4.2).
	return w.remember(ast.NewAt("if", w.locationOf(n), condNode, altNode, consNode))
}

func (w *walker) bodyOrNil(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	stmts := w.visitStatements(n)
	if len(stmts) == 0 {
		return nil
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return ast.New("begin", stmts...)
}

func (w *walker) visitElse(n *sitter.Node) any {
	switch n.Type() {
	case "else":
		if body := firstNamedChild(n); body != nil {
			return w.bodyOrNil(body)
		}
		return nil
	case "elsif":
		cond := n.ChildByFieldName("condition")
		cons := n.ChildByFieldName("consequence")
		alt := n.ChildByFieldName("alternative")
		var altNode any
		if alt != nil {
			altNode = w.visitElse(alt)
		}
		return w.remember(ast.NewAt("if", w.locationOf(n), w.visit(cond), w.bodyOrNil(cons), altNode))
	default:
		return w.bodyOrNil(n)
	}
}

func visitWhile(w *walker, n *sitter.Node) ast.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	return w.remember(ast.NewAt("while", w.locationOf(n), w.visit(cond), w.bodyOrNil(body)))
}

func visitUntil(w *walker, n *sitter.Node) ast.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	return w.remember(ast.NewAt("until", w.locationOf(n), w.visit(cond), w.bodyOrNil(body)))
}

func visitFor(w *walker, n *sitter.Node) ast.Node {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	body := n.ChildByFieldName("body")
	return w.remember(ast.NewAt("for", w.locationOf(n), w.visit(pattern), w.visit(value), w.bodyOrNil(body)))
}

func visitCase(w *walker, n *sitter.Node) ast.Node {
	value := n.ChildByFieldName("value")
	var subject any
	if value != nil {
		subject = w.visit(value)
	}

	var whens []any
	var elseBody any
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "when":
			whens = append(whens, w.visitWhen(c))
		case "else":
			if body := firstNamedChild(c); body != nil {
				elseBody = w.bodyOrNil(body)
			}
		}
	}

	children := append([]any{subject}, whens...)
	children = append(children, elseBody)
	return w.remember(ast.NewAt("case", w.locationOf(n), children...))
}

func (w *walker) visitWhen(n *sitter.Node) ast.Node {
	var conds []any
	body := n.ChildByFieldName("body")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == body {
			continue
		}
		conds = append(conds, w.visit(c))
	}
	children := append([]any{}, conds...)
	children = append(children, w.bodyOrNil(body))
	return w.remember(ast.NewAt("when", w.locationOf(n), children...))
}

func visitCaseMatch(w *walker, n *sitter.Node) ast.Node {
	value := n.ChildByFieldName("value")
	subject := w.visit(value)

	var ins []any
	var elseBody any
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "in_clause", "in":
			ins = append(ins, w.visitInClause(c))
		case "else":
			if body := firstNamedChild(c); body != nil {
				elseBody = w.bodyOrNil(body)
			}
		}
	}
	children := append([]any{subject}, ins...)
	children = append(children, elseBody)
	return w.remember(ast.NewAt("case_match", w.locationOf(n), children...))
}

func (w *walker) visitInClause(n *sitter.Node) ast.Node {
	pattern := n.ChildByFieldName("pattern")
	body := n.ChildByFieldName("body")
	guard := n.ChildByFieldName("guard")

	patNode := w.visitPattern(pattern)
	var guardNode any
	if guard != nil {
		guardNode = w.visit(guard)
	}
	return w.remember(ast.NewAt("in_pattern", w.locationOf(n), patNode, guardNode, w.bodyOrNil(body)))
}

// visitPattern walks a pattern-matching sub-tree; array/hash/find patterns
// get dedicated tags (spec §4.2) while a bare identifier becomes a binding
// variable (`match_var`).
func (w *walker) visitPattern(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "array_pattern":
		var elems []any
		for i := 0; i < int(n.NamedChildCount()); i++ {
			elems = append(elems, w.visitPattern(n.NamedChild(i)))
		}
		return w.remember(ast.NewAt("array_pattern", w.locationOf(n), elems...))
	case "hash_pattern":
		var pairs []any
		for i := 0; i < int(n.NamedChildCount()); i++ {
			pairs = append(pairs, w.visitPattern(n.NamedChild(i)))
		}
		return w.remember(ast.NewAt("hash_pattern", w.locationOf(n), pairs...))
	case "find_pattern":
		var elems []any
		for i := 0; i < int(n.NamedChildCount()); i++ {
			elems = append(elems, w.visitPattern(n.NamedChild(i)))
		}
		return w.remember(ast.NewAt("find_pattern", w.locationOf(n), elems...))
	case "identifier":
		return w.remember(ast.NewAt("match_var", w.locationOf(n), w.text(n)))
	case "splat_parameter", "splat_argument":
		name := ""
		if c := firstNamedChild(n); c != nil {
			name = w.text(c)
		}
		return w.remember(ast.NewAt("match_var", w.locationOf(n), name))
	case "alternative_pattern":
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		return w.remember(ast.NewAt("match_alt", w.locationOf(n), w.visitPattern(left), w.visitPattern(right)))
	default:
		return w.visit(n)
	}
}

func visitKwBegin(w *walker, n *sitter.Node) ast.Node {
	body := n.ChildByFieldName("body")
	var stmts []any
	if body != nil {
		stmts = w.visitStatements(body)
	}

	var rescues []any
	var elseBody, ensureBody any
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "rescue":
			rescues = append(rescues, w.visitRescue(c))
		case "else":
			if eb := firstNamedChild(c); eb != nil {
				elseBody = w.bodyOrNil(eb)
			}
		case "ensure":
			if eb := firstNamedChild(c); eb != nil {
				ensureBody = w.bodyOrNil(eb)
			}
		}
	}

	var bodyNode any
	if len(stmts) == 1 {
		bodyNode = stmts[0]
	} else if len(stmts) > 1 {
		bodyNode = ast.New("begin", stmts...)
	}

	if len(rescues) > 0 || elseBody != nil {
		children := append([]any{bodyNode}, rescues...)
		children = append(children, elseBody)
		bodyNode = w.remember(ast.NewAt("rescue", w.locationOf(n), children...))
	}
	if ensureBody != nil {
		bodyNode = w.remember(ast.NewAt("ensure", w.locationOf(n), bodyNode, ensureBody))
	}
	if result, ok := bodyNode.(ast.Node); ok {
		return result
	}
	return w.remember(ast.NewAt("begin", w.locationOf(n)))
}

func (w *walker) visitRescue(n *sitter.Node) ast.Node {
	body := n.ChildByFieldName("body")
	var exClasses []any
	var varNode any
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "exceptions":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				exClasses = append(exClasses, w.visit(c.NamedChild(j)))
			}
		case "exception_variable":
			if target := firstNamedChild(c); target != nil {
				varNode = w.visit(target)
			}
		}
	}
	children := []any{ast.New("array", exClasses...), varNode, w.bodyOrNil(body)}
	return w.remember(ast.NewAt("resbody", w.locationOf(n), children...))
}
