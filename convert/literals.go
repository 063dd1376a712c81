package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rubyjs/compiler/ast"
)

func init() {
	register("int", literalNumber)
	register("float", literalNumber)
	register("rational", literalRational)
	register("complex", literalComplex)
	register("true", literalKeyword("true"))
	register("false", literalKeyword("false"))
	register("nil", literalKeyword("null"))
	register("self", literalKeyword("this"))
	register("cbase", literalKeyword(""))

	register("str", emitStr)
	register("dstr", emitDstr)
	register("xstr", emitXstr)
	register("sym", emitSym)
	register("dsym", emitDsym)

	register("lvar", emitLvar)
	register("ivar", emitIvar)
	register("cvar", emitCvar)
	register("gvar", emitGvar)
	register("const", emitConst)

	register("args", emitArgs)
	register("arg", emitArgName)
	register("optarg", emitOptArg)
	register("restarg", emitRestArg)
	register("kwarg", emitKwarg)
	register("kwoptarg", emitKwoptarg)
	register("kwrestarg", emitKwrestArg)
	register("blockarg", emitBlockArg)
	register("shadowarg", emitArgName)

	register("splat", emitSplat)
	register("kwsplat", emitKwsplat)

	register("match_var", emitMatchVar)
	register("match_as", emitMatchAs)
	register("match_alt", emitMatchAlt)
	register("pin", emitPin)

	register("defined?", emitDefinedCheck)
	register("alias", emitAlias)
	register("undef", emitUndef)
	register("prop", emitProp)
	register("verbatim", emitVerbatim)
}

// emitVerbatim passes through raw source text the Walker could not resolve
// to a dedicated tag (e.g. a block attached to a shape visitBlock doesn't
// recognize); kept as a diagnostic escape hatch rather than a hard failure.
func emitVerbatim(c *Converter, n ast.Node, st state) string {
	text, _ := n.Child(0).(string)
	return text
}

func literalNumber(c *Converter, n ast.Node, st state) string {
	switch v := n.Child(0).(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func literalRational(c *Converter, n ast.Node, st state) string {
	text, _ := n.Child(0).(string)
	return text
}

func literalComplex(c *Converter, n ast.Node, st state) string {
	text, _ := n.Child(0).(string)
	return text
}

func literalKeyword(text string) handlerFunc {
	return func(c *Converter, n ast.Node, st state) string { return text }
}

func emitStr(c *Converter, n ast.Node, st state) string {
	text, _ := n.Child(0).(string)
	return quoteJS(text)
}

// quoteJS double-quotes a string literal, escaping backslash, quote, and
// control characters the JS parser would otherwise choke on.
func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// emitDstr emits a template literal; interpolated children are wrapped in
// ${...}, with an optional `?? ""` guard when nullish_to_s is enabled (spec
// §4.5.8). When the static parts together are longer than 40 characters and
// contain 4+ newlines they are kept multi-line; otherwise their newlines are
// escaped as \n.
func emitDstr(c *Converter, n ast.Node, st state) string {
	total, newlines := 0, 0
	for _, child := range n.Children {
		if cn, ok := child.(ast.Node); ok && cn.Type == "str" {
			child = cn.Child(0)
		}
		if text, ok := child.(string); ok {
			total, newlines = total+len(text), newlines+strings.Count(text, "\n")
		}
	}
	static := func(s string) string {
		if total > 40 && newlines >= 4 {
			return escapeTemplate(s)
		}
		return strings.ReplaceAll(escapeTemplate(s), "\n", `\n`)
	}
	var b strings.Builder
	b.WriteByte('`')
	for _, child := range n.Children {
		switch v := child.(type) {
		case ast.Node:
			if v.Type == "str" {
				text, _ := v.Child(0).(string)
				b.WriteString(static(text))
				continue
			}
			inner := c.emit(v, stateExpression)
			if c.opts.NullishToS {
				inner += ` ?? ""`
			}
			b.WriteString("${")
			b.WriteString(inner)
			b.WriteString("}")
		case string:
			b.WriteString(static(v))
		}
	}
	b.WriteByte('`')
	return b.String()
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

// emitXstr handles a backtick string: fatal unless a Binding is configured
// (spec §4.5.9/§7 "Security violation").
func emitXstr(c *Converter, n ast.Node, st state) string {
	if c.opts.Binding == nil {
		panic(diagnosticsSecurity(n))
	}
	text, _ := n.Child(0).(string)
	out, err := c.opts.Binding.Eval(text)
	if err != nil {
		panic(err)
	}
	return quoteJS(out)
}

func emitSym(c *Converter, n ast.Node, st state) string {
	text, _ := n.Child(0).(string)
	return quoteJS(text)
}

func emitDsym(c *Converter, n ast.Node, st state) string {
	return emitDstr(c, n, st)
}

func emitLvar(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.referenceLocal(name)
	return name
}

func emitIvar(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	field := strings.TrimPrefix(name, "@")
	if c.privNames[field] {
		return "this.#" + field
	}
	return "this." + field
}

func emitCvar(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	return "this.constructor." + strings.TrimPrefix(name, "@@")
}

func emitGvar(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	return "globalThis." + strings.TrimPrefix(name, "$")
}

func emitConst(c *Converter, n ast.Node, st state) string {
	parent := n.Child(0)
	name, _ := n.Child(1).(string)
	if parent == nil {
		return name
	}
	if pn, ok := parent.(ast.Node); ok && pn.Type == "cbase" {
		return name
	}
	if pn, ok := parent.(ast.Node); ok {
		return c.emit(pn, stateExpression) + "." + name
	}
	return name
}

func emitArgs(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if an, ok := child.(ast.Node); ok {
			parts = append(parts, c.emit(an, stateExpression))
		}
	}
	return strings.Join(parts, ", ")
}

func emitArgName(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return name
}

func emitOptArg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	if len(n.Children) > 1 {
		if def, ok := n.Child(1).(ast.Node); ok {
			return name + " = " + c.emit(def, stateExpression)
		}
	}
	return name
}

func emitRestArg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return "..." + name
}

func emitKwarg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return name
}

func emitKwoptarg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	if def, ok := n.Child(1).(ast.Node); ok {
		return name + " = " + c.emit(def, stateExpression)
	}
	return name
}

func emitKwrestArg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return "..." + name
}

func emitBlockArg(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return name
}

func emitSplat(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return "..."
	}
	return "..." + c.emit(inner, stateExpression)
}

func emitKwsplat(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return "..."
	}
	return "..." + c.emit(inner, stateExpression)
}

func emitMatchVar(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	return name
}

func emitMatchAs(c *Converter, n ast.Node, st state) string {
	pattern, _ := n.Child(0).(ast.Node)
	name, _ := n.Child(1).(string)
	c.declareLocal(name)
	return c.emit(pattern, stateExpression) + " /* as */" + name
}

func emitMatchAlt(c *Converter, n ast.Node, st state) string {
	left, lok := n.Child(0).(ast.Node)
	right, rok := n.Child(1).(ast.Node)
	if !lok || !rok {
		return ""
	}
	return c.emit(left, stateExpression) + " | " + c.emit(right, stateExpression)
}

func emitPin(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return ""
	}
	return c.emit(inner, stateExpression)
}

func emitDefinedCheck(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return `"undefined"`
	}
	return `(typeof ` + c.emit(inner, stateExpression) + ` !== "undefined" ? "expression" : undefined)`
}

func emitAlias(c *Converter, n ast.Node, st state) string {
	newName := symText(n.Child(0))
	oldName := symText(n.Child(1))
	return c.currentClassName() + ".prototype." + newName + " = " + c.currentClassName() + ".prototype." + oldName + ";"
}

func emitUndef(c *Converter, n ast.Node, st state) string {
	name := symText(n.Child(0))
	return "delete " + c.currentClassName() + ".prototype." + name + ";"
}

func emitProp(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	return quoteJS(name)
}

func symText(v any) string {
	if n, ok := v.(ast.Node); ok && len(n.Children) > 0 {
		if s, ok := n.Children[0].(string); ok {
			return s
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
