package filter

import "github.com/rubyjs/compiler/ast"

// VisibilityFilter rewrites a class/module body so that every `def`
// (singleton `defs` are left unwrapped) following a bare `private`/`protected` call (with no arguments) is
// wrapped in a "private_method" node, and every `def name=(value)` becomes
// a "setter" node, matching the reference compiler's class-body
// classification pass (spec §4.5.4). Explicit `private :name` argument
// forms are left alone: they name already-defined methods, which is a
// static cross-reference this filter does not attempt to resolve.
type VisibilityFilter struct {
	BaseProcessor
}

func NewVisibilityFilter() *VisibilityFilter {
	f := &VisibilityFilter{}
	f.BaseProcessor = NewBaseProcessor(f)
	f.Register("class", f.rewriteBody(2))
	f.Register("module", f.rewriteBody(1))
	f.Register("sclass", f.rewriteBody(1))
	return f
}

func (f *VisibilityFilter) Base() *BaseProcessor { return &f.BaseProcessor }

func (f *VisibilityFilter) rewriteBody(bodyIndex int) HandlerFunc {
	return func(self Processor, n ast.Node) ast.Node {
		processed := f.BaseProcessor.ProcessChildren(n)
		body, ok := processed.Child(bodyIndex).(ast.Node)
		if !ok {
			return processed
		}
		rewritten := rewriteVisibility(body)
		children := append([]any{}, processed.Children...)
		children[bodyIndex] = rewritten
		return processed.Updated("", children, nil)
	}
}

// rewriteVisibility walks a class/module body's top-level statement list,
// tracking the current default visibility and wrapping subsequent defs.
func rewriteVisibility(body ast.Node) ast.Node {
	stmts := body.Children
	if body.Type != "begin" {
		stmts = []any{body}
	}

	visibility := "public"
	var out []any
	for _, stmt := range stmts {
		sn, ok := stmt.(ast.Node)
		if !ok {
			out = append(out, stmt)
			continue
		}
		if kw, ok := bareVisibilityKeyword(sn); ok {
			visibility = kw
			continue
		}
		out = append(out, classifyMember(sn, visibility))
	}

	if len(out) == 1 {
		if n, ok := out[0].(ast.Node); ok {
			return n
		}
	}
	return body.Updated("begin", out, nil)
}

// bareVisibilityKeyword recognizes `private`/`protected`/`public` called
// with no arguments and no receiver, the form that changes the default
// visibility of subsequently-defined methods.
func bareVisibilityKeyword(n ast.Node) (string, bool) {
	if n.Type != "send" || len(n.Children) != 2 {
		return "", false
	}
	if n.Child(0) != nil {
		return "", false
	}
	name, _ := n.Child(1).(string)
	switch name {
	case "private", "protected", "public":
		return name, true
	default:
		return "", false
	}
}

func classifyMember(n ast.Node, visibility string) ast.Node {
	switch n.Type {
	case "def":
		name, _ := n.Child(0).(string)
		n = applySetter(n, name)
		if visibility == "private" || visibility == "protected" {
			return S("private_method", n.Loc, n)
		}
		return n
	case "defs":
		return n
	case "send":
		// an inline `private def foo; end`: send(nil, "private", defNode)
		if name, _ := n.Child(1).(string); name == "private" && len(n.Children) == 3 {
			if inner, ok := n.Child(2).(ast.Node); ok && inner.Type == "def" {
				innerName, _ := inner.Child(0).(string)
				inner = applySetter(inner, innerName)
				return S("private_method", n.Loc, inner)
			}
		}
		return n
	default:
		return n
	}
}

func applySetter(n ast.Node, name string) ast.Node {
	if len(name) == 0 || name[len(name)-1] != '=' {
		return n
	}
	return S("setter", n.Loc, n)
}
