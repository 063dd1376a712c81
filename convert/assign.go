package convert

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rubyjs/compiler/ast"
)

func init() {
	register("lvasgn", emitLvasgn)
	register("ivasgn", emitIvasgn)
	register("cvasgn", emitCvasgn)
	register("gvasgn", emitGvasgn)
	register("casgn", emitCasgn)
	register("op_asgn", emitOpAsgn)
	register("or_asgn", emitOrAsgn)
	register("and_asgn", emitAndAsgn)
	register("masgn", emitMasgn)
	register("mlhs", emitMlhs)
}

// emitLvasgn lowers lvasgn(name, value): a fresh name becomes `let name =
// value`, an already-declared one a bare `name = value` (spec §4.5.5
// hoisting). value may be absent (a bare destructure target inside mlhs).
func emitLvasgn(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	valueChild := n.Child(1)
	declared := c.isDeclared(name)
	c.declareLocal(name)

	if valueChild == nil {
		return name
	}
	valueText := c.emitAssignValue(valueChild)

	if declared {
		return name + " = " + valueText
	}
	return "let " + name + " = " + valueText
}

func (c *Converter) emitAssignValue(v any) string {
	if n, ok := v.(ast.Node); ok {
		return c.emit(n, stateExpression)
	}
	return c.emitPrimitive(v)
}

func emitIvasgn(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	field := strings.TrimPrefix(name, "@")
	target := "this." + field
	if c.privNames[field] {
		target = "this.#" + field
	}
	if v := n.Child(1); v != nil {
		return target + " = " + c.emitAssignValue(v)
	}
	return target
}

func emitCvasgn(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	target := "this.constructor." + strings.TrimPrefix(name, "@@")
	if v := n.Child(1); v != nil {
		return target + " = " + c.emitAssignValue(v)
	}
	return target
}

func emitGvasgn(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	target := "globalThis." + strings.TrimPrefix(name, "$")
	if v := n.Child(1); v != nil {
		return target + " = " + c.emitAssignValue(v)
	}
	return target
}

func emitCasgn(c *Converter, n ast.Node, st state) string {
	name := constName(n.Child(1))
	if name == "" {
		name, _ = n.Child(1).(string)
	}
	v := n.Child(2)
	prefix := "const "
	if len(c.classStack) > 0 {
		prefix = ""
	}
	if v != nil {
		return prefix + name + " = " + c.emitAssignValue(v)
	}
	return name
}

// emitOpAsgn lowers `x += y` (op_asgn(target, op, value)) directly to the
// matching JS compound-assignment operator; `||=`/`&&=` are split out as
// or_asgn/and_asgn by the walker and handled separately since their
// short-circuit semantics differ under truthy=ruby (spec §4.5.9).
func emitOpAsgn(c *Converter, n ast.Node, st state) string {
	target, _ := n.Child(0).(ast.Node)
	op, _ := n.Child(1).(string)
	value := n.Child(2)
	return c.emit(target, stateExpression) + " " + op + "= " + c.emitAssignValue(value)
}

// emitOrAsgn lowers `x ||= y`. Under truthy=js this is a plain `||=`; under
// truthy=ruby it must use $T to treat `false` as falsy like Ruby does,
// requiring the $ror helper (spec §4.5.9).
func emitOrAsgn(c *Converter, n ast.Node, st state) string {
	target, _ := n.Child(0).(ast.Node)
	value := n.Child(1)
	targetText := c.emit(target, stateExpression)
	valueText := c.emitAssignValue(value)
	if c.opts.Truthy == "ruby" {
		c.needHelper("T")
		c.needHelper("ror")
		return targetText + " = $ror(" + targetText + ", () => " + valueText + ")"
	}
	return targetText + " ||= " + valueText
}

func emitAndAsgn(c *Converter, n ast.Node, st state) string {
	target, _ := n.Child(0).(ast.Node)
	value := n.Child(1)
	targetText := c.emit(target, stateExpression)
	valueText := c.emitAssignValue(value)
	if c.opts.Truthy == "ruby" {
		c.needHelper("T")
		c.needHelper("rand")
		return targetText + " = $rand(" + targetText + ", () => " + valueText + ")"
	}
	return targetText + " &&= " + valueText
}

// emitMasgn lowers Ruby multiple assignment to JS array destructuring
// (spec §4.5.5 "masgn"): masgn(mlhs, rhs). JS destructuring only allows a
// rest element in the last position, so a middle splat (a, *mid, b = arr)
// can't be expressed as one destructuring assignment and falls back to a
// temp-array sequence of shift/pop assigns instead.
func emitMasgn(c *Converter, n ast.Node, st state) string {
	lhs, _ := n.Child(0).(ast.Node)
	rhs := n.Child(1)

	if idx, ok := middleSplatIndex(lhs); ok {
		return emitMasgnSplat(c, lhs, idx, rhs)
	}

	lhsText := c.emit(lhs, stateExpression)
	return "[" + strings.Trim(lhsText, "[]") + "] = " + c.emitAssignValue(rhs)
}

// middleSplatIndex reports the position of a splat target within an mlhs
// when it is not the last target (only a trailing splat maps onto JS's
// rest-element syntax and needs no special handling).
func middleSplatIndex(lhs ast.Node) (int, bool) {
	for i, child := range lhs.Children {
		if cn, ok := child.(ast.Node); ok && cn.Type == "splat" {
			if i < len(lhs.Children)-1 {
				return i, true
			}
			return 0, false
		}
	}
	return 0, false
}

// emitMasgnSplat lowers a, *mid, b = rhs to: bind a fresh temp to
// rhs.slice(), drain the prefix targets with shift(), the suffix targets
// with pop(), and assign the remainder into the splat target (spec
// §4.5.5). The temp is uniqued per call site with google/uuid so nested or
// repeated masgns in the same scope never collide.
func emitMasgnSplat(c *Converter, lhs ast.Node, splatAt int, rhs any) string {
	tmp := "$masgn_temp_" + uuid.NewString()[:8]
	c.declareLocal(tmp)
	prefix := lhs.Children[:splatAt]
	splatNode, _ := lhs.Children[splatAt].(ast.Node)
	suffix := lhs.Children[splatAt+1:]

	var b strings.Builder
	b.WriteString("let " + tmp + " = " + c.emitAssignValue(rhs) + ".slice();\n")
	for _, child := range prefix {
		b.WriteString(mlhsTargetText(c, child) + " = " + tmp + ".shift();\n")
	}
	for i := len(suffix) - 1; i >= 0; i-- {
		b.WriteString(mlhsTargetText(c, suffix[i]) + " = " + tmp + ".pop();\n")
	}
	if inner, ok := splatNode.Child(0).(ast.Node); ok {
		b.WriteString(mlhsTargetText(c, inner) + " = " + tmp + ";")
	}
	return strings.TrimRight(b.String(), "\n")
}

// mlhsTargetText emits one destructuring target's bare assignable form,
// declaring it as a local the first time it's seen; mirrors emitMlhs's
// per-target handling for lvasgn/ivasgn/cvasgn/gvasgn targets.
func mlhsTargetText(c *Converter, child any) string {
	cn, ok := child.(ast.Node)
	if !ok {
		return c.emitPrimitive(child)
	}
	switch cn.Type {
	case "lvasgn", "ivasgn", "cvasgn", "gvasgn":
		name, _ := cn.Child(0).(string)
		c.declareLocal(name)
		return c.emit(cn.Updated("", []any{cn.Child(0), nil}, nil), stateExpression)
	default:
		return c.emit(cn, stateExpression)
	}
}

func emitMlhs(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if cn, ok := child.(ast.Node); ok && cn.Type == "splat" {
			parts = append(parts, c.emit(cn, stateExpression))
			continue
		}
		parts = append(parts, mlhsTargetText(c, child))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
