package convert

import (
	"strings"

	"github.com/rubyjs/compiler/ast"
)

func init() {
	register("if", emitIf)
	register("unless", emitUnlessTag)
	register("case", emitCase)
	register("when", emitWhen)
	register("case_match", emitCaseMatch)
	register("in_pattern", emitInPattern)
	register("while", emitWhile)
	register("until", emitUntil)
	register("while_post", emitWhilePost)
	register("until_post", emitUntilPost)
	register("for", emitFor)
	register("for_of", emitForOf)
	register("break", emitBreak)
	register("next", emitNext)
	register("return", emitReturn)
	register("redo", keyword("continue"))
	register("retry", keyword("continue"))
	register("rescue", emitRescue)
	register("resbody", emitResbody)
	register("ensure", emitEnsure)
	register("begin", emitBegin)
	register("kwbegin", emitBegin)
	register("and", emitAndOr)
	register("or", emitAndOr)
	register("not", emitNot)
	register("nullish", emitNullish)
	register("yield", emitYield)
	register("zsuper", emitZsuper)
	register("super", emitSuper)
	register("regexp", emitRegexp)
	register("regopt", emitRegopt)
	register("xnode", emitXnode)
	register("pnode", emitPnode)
	register("import", emitImport)
	register("export", emitExport)
}

func keyword(text string) handlerFunc {
	return func(c *Converter, n ast.Node, st state) string { return text }
}

// emitIf lowers if(cond, cons, alt) to `if`/`else` in statement position and
// to a ternary in expression position (spec §4.5.7).
func emitIf(c *Converter, n ast.Node, st state) string {
	cond := c.emitTruthy(n.Child(0))
	cons := n.Child(1)
	alt := n.Child(2)

	if st != stateStatement {
		consText := emitBranchExpr(c, cons)
		altText := emitBranchExpr(c, alt)
		return cond + " ? " + consText + " : " + altText
	}

	var b strings.Builder
	b.WriteString("if (")
	b.WriteString(cond)
	b.WriteString(") {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, cons)))
	b.WriteString("}")
	if alt != nil {
		b.WriteString(" else ")
		if an, ok := alt.(ast.Node); ok && an.Type == "if" {
			b.WriteString(c.emit(an, stateStatement))
		} else {
			b.WriteString("{\n")
			b.WriteString(indentBlock(emitBranchStmts(c, alt)))
			b.WriteString("}")
		}
	}
	return b.String()
}

// emitUnlessTag handles a bare "unless" tag reaching the Converter (the
// Walker always normalizes modifier-unless to a branch-swapped "if", but a
// filter may reintroduce the tag); treated identically with branches read
// in source order (cons is the body, alt the else).
func emitUnlessTag(c *Converter, n ast.Node, st state) string {
	swapped := n.Updated("if", []any{n.Child(0), n.Child(2), n.Child(1)}, nil)
	return emitIf(c, swapped, st)
}

func emitBranchExpr(c *Converter, v any) string {
	if v == nil {
		return "undefined"
	}
	return c.emitOperand(v, 0)
}

func emitBranchStmts(c *Converter, v any) string {
	if v == nil {
		return ""
	}
	n, ok := v.(ast.Node)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, stmt := range bodyStatements(n) {
		sn, ok := stmt.(ast.Node)
		if !ok {
			continue
		}
		b.WriteString(c.emit(sn, stateStatement))
		b.WriteString("\n")
	}
	return b.String()
}

func indentBlock(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

// emitTruthy wraps a condition expression with the $T helper when
// truthy=ruby, so `false`/`nil` (and only those) are falsy, matching Ruby
// and diverging from JS's wider falsy set (spec §4.5.9).
func (c *Converter) emitTruthy(v any) string {
	text := emitBranchExpr(c, v)
	if c.opts.Truthy == "ruby" {
		c.needHelper("T")
		return "$T(" + text + ")"
	}
	return text
}

// emitCase lowers case(subject, when..., elseBody) to switch(subject) in
// statement position. A case with at least one Range `when` clause can't
// dispatch by `===`, so it is rewritten here to `switch (true)` with each
// Range arm becoming a boolean comparison against the subject (spec
// §4.5.7/Testable Property: "Case-with-ranges to switch(true)").
func emitCase(c *Converter, n ast.Node, st state) string {
	subject := n.Child(0)
	elseBody := n.Children[len(n.Children)-1]
	whens := n.Children[1 : len(n.Children)-1]

	if subject != nil && caseHasRangeArm(whens) {
		return emitCaseSwitchTrue(c, asNode(subject), whens, elseBody)
	}

	subjText := "true"
	if subject != nil {
		subjText = c.emit(asNode(subject), stateExpression)
	}
	var b strings.Builder
	b.WriteString("switch (")
	b.WriteString(subjText)
	b.WriteString(") {\n")
	for _, w := range whens {
		wn, ok := w.(ast.Node)
		if !ok {
			continue
		}
		b.WriteString(indentBlock(c.emit(wn, stateStatement)))
	}
	if elseBody != nil {
		b.WriteString("  default: {\n")
		b.WriteString(indentBlock(indentBlock(emitBranchStmts(c, elseBody))))
		b.WriteString("    break;\n  }\n")
	}
	b.WriteString("}")
	return b.String()
}

func emitWhen(c *Converter, n ast.Node, st state) string {
	conds := n.Children[:len(n.Children)-1]
	body := n.Children[len(n.Children)-1]

	var b strings.Builder
	for _, cond := range conds {
		b.WriteString("case ")
		b.WriteString(c.emitOperand(cond, 0))
		b.WriteString(":\n")
	}
	b.WriteString("{\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("  break;\n}\n")
	return b.String()
}

// caseHasRangeArm reports whether any when clause in whens tests a Range.
func caseHasRangeArm(whens []any) bool {
	for _, w := range whens {
		wn, ok := w.(ast.Node)
		if !ok {
			continue
		}
		for _, cond := range wn.Children[:len(wn.Children)-1] {
			if cn, ok := cond.(ast.Node); ok && (cn.Type == "irange" || cn.Type == "erange") {
				return true
			}
		}
	}
	return false
}

// emitCaseSwitchTrue lowers a case with a Range when-arm to `switch (true)`;
// a Range condition becomes a `subject >= lo && subject <= hi` boolean test
// (exclusive ranges drop the upper `=`), anything else an equality test
// against subject (spec §4.5.7).
func emitCaseSwitchTrue(c *Converter, subject ast.Node, whens []any, elseBody any) string {
	subjText := c.emit(subject, stateExpression)
	var b strings.Builder
	b.WriteString("switch (true) {\n")
	for _, w := range whens {
		wn, ok := w.(ast.Node)
		if !ok {
			continue
		}
		conds := wn.Children[:len(wn.Children)-1]
		body := wn.Children[len(wn.Children)-1]
		b.WriteString(indentBlock(emitWhenBoolean(c, subjText, conds, body)))
	}
	if elseBody != nil {
		b.WriteString("  default: {\n")
		b.WriteString(indentBlock(indentBlock(emitBranchStmts(c, elseBody))))
		b.WriteString("    break;\n  }\n")
	}
	b.WriteString("}")
	return b.String()
}

func emitWhenBoolean(c *Converter, subjText string, conds []any, body any) string {
	var b strings.Builder
	for _, cond := range conds {
		b.WriteString("case ")
		b.WriteString(caseBooleanTest(c, subjText, cond))
		b.WriteString(":\n")
	}
	b.WriteString("{\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("  break;\n}\n")
	return b.String()
}

// caseBooleanTest renders one when-condition as a boolean test against an
// already-emitted subject expression.
func caseBooleanTest(c *Converter, subjText string, cond any) string {
	cn, ok := cond.(ast.Node)
	if !ok || (cn.Type != "irange" && cn.Type != "erange") {
		return subjText + " === " + c.emitOperand(cond, 0)
	}
	lo := c.emit(asNode(cn.Child(0)), stateExpression)
	hiChild := cn.Child(1)
	if hiChild == nil {
		return subjText + " >= " + lo
	}
	hi := c.emit(asNode(hiChild), stateExpression)
	cmp := "<="
	if cn.Type == "erange" {
		cmp = "<"
	}
	return subjText + " >= " + lo + " && " + subjText + " " + cmp + " " + hi
}

// emitCaseMatch lowers case/in pattern matching to an if/else-if chain that
// tests the subject against each pattern through the `$matches` runtime
// helper, since JS has no structural-pattern switch (spec
// §4.5.7).
func emitCaseMatch(c *Converter, n ast.Node, st state) string {
	subject := n.Child(0)
	elseBody := n.Children[len(n.Children)-1]
	ins := n.Children[1 : len(n.Children)-1]

	tmp := c.tempPrefix + "_subject"
	var b strings.Builder
	b.WriteString("{\n  const " + tmp + " = " + c.emit(asNode(subject), stateExpression) + ";\n")
	for i, in := range ins {
		inNode, ok := in.(ast.Node)
		if !ok {
			continue
		}
		kw := "if"
		if i > 0 {
			kw = "else if"
		}
		pattern := inNode.Child(0)
		guard := inNode.Child(1)
		body := inNode.Child(2)
		c.needHelper("matches")
		cond := "$matches(" + tmp + ", " + c.emitOperand(pattern, 0) + ")"
		if guard != nil {
			cond += " && (" + c.emitOperand(guard, 0) + ")"
		}
		b.WriteString("  " + kw + " (" + cond + ") {\n")
		b.WriteString(indentBlock(indentBlock(emitBranchStmts(c, body))))
		b.WriteString("  }\n")
	}
	if elseBody != nil {
		b.WriteString("  else {\n")
		b.WriteString(indentBlock(indentBlock(emitBranchStmts(c, elseBody))))
		b.WriteString("  }\n")
	}
	b.WriteString("}")
	return b.String()
}

func emitInPattern(c *Converter, n ast.Node, st state) string {
	return c.emit(n, stateExpression)
}

func emitWhile(c *Converter, n ast.Node, st state) string {
	cond := c.emitTruthy(n.Child(0))
	body := n.Child(1)
	var b strings.Builder
	b.WriteString("while (")
	b.WriteString(cond)
	b.WriteString(") {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}")
	return b.String()
}

func emitUntil(c *Converter, n ast.Node, st state) string {
	cond := c.emitTruthy(n.Child(0))
	body := n.Child(1)
	var b strings.Builder
	b.WriteString("while (!(")
	b.WriteString(cond)
	b.WriteString(")) {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}")
	return b.String()
}

// emitWhilePost/emitUntilPost lower `begin...end while cond` (spec §4.2's
// post-condition loop) to JS `do { } while (cond)`.
func emitWhilePost(c *Converter, n ast.Node, st state) string {
	cond := c.emitTruthy(n.Child(0))
	body := n.Child(1)
	var b strings.Builder
	b.WriteString("do {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("} while (")
	b.WriteString(cond)
	b.WriteString(");")
	return b.String()
}

func emitUntilPost(c *Converter, n ast.Node, st state) string {
	cond := c.emitTruthy(n.Child(0))
	body := n.Child(1)
	var b strings.Builder
	b.WriteString("do {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("} while (!(")
	b.WriteString(cond)
	b.WriteString("));")
	return b.String()
}

// emitFor lowers Ruby's range-style `for` to an index loop when iterating a
// Range, per spec §4.5.7/Testable Property "range-each loop lowering".
func emitFor(c *Converter, n ast.Node, st state) string {
	pattern, _ := n.Child(0).(ast.Node)
	value := n.Child(1)
	body := n.Child(2)

	name := "_"
	if pattern.Type == "match_var" || pattern.Type == "lvasgn" {
		name, _ = pattern.Child(0).(string)
	}
	c.declareLocal(name)

	if vn, ok := value.(ast.Node); ok && (vn.Type == "irange" || vn.Type == "erange") {
		start := c.emit(asNode(vn.Child(0)), stateExpression)
		end := c.emit(asNode(vn.Child(1)), stateExpression)
		cmp := "<="
		if vn.Type == "erange" {
			cmp = "<"
		}
		var b strings.Builder
		b.WriteString("for (let " + name + " = " + start + "; " + name + " " + cmp + " " + end + "; " + name + "++) {\n")
		b.WriteString(indentBlock(emitBranchStmts(c, body)))
		b.WriteString("}")
		return b.String()
	}

	valueText := c.emit(asNode(value), stateExpression)
	var b strings.Builder
	b.WriteString("for (const " + name + " of " + valueText + ") {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}")
	return b.String()
}

// emitForOf lowers an already-normalized `for x of iterable` form, used
// when a filter rewrites an `each` send into a native for-of loop.
func emitForOf(c *Converter, n ast.Node, st state) string {
	name, _ := n.Child(0).(string)
	c.declareLocal(name)
	iterable := c.emit(asNode(n.Child(1)), stateExpression)
	body := n.Child(2)
	var b strings.Builder
	b.WriteString("for (const " + name + " of " + iterable + ") {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}")
	return b.String()
}

func emitBreak(c *Converter, n ast.Node, st state) string {
	if len(n.Children) > 0 && n.Child(0) != nil {
		return "break " + c.emitOperand(n.Child(0), 0) + ";"
	}
	return "break;"
}

func emitNext(c *Converter, n ast.Node, st state) string {
	if len(n.Children) > 0 && n.Child(0) != nil {
		return "return " + c.emitOperand(n.Child(0), 0) + ";"
	}
	return "continue;"
}

func emitReturn(c *Converter, n ast.Node, st state) string {
	if len(n.Children) > 0 && n.Child(0) != nil {
		return "return " + c.emitOperand(n.Child(0), 0) + ";"
	}
	return "return;"
}

// emitRescue lowers rescue(body, resbody..., elseBody) to try/catch; a
// chain of resbody clauses becomes a chain of `instanceof` tests inside a
// single catch block, since JS has one catch clause per try (spec §4.5.7).
func emitRescue(c *Converter, n ast.Node, st state) string {
	body := n.Child(0)
	last := len(n.Children) - 1
	elseBody := n.Children[last]
	resbodies := n.Children[1:last]

	var b strings.Builder
	b.WriteString("try {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	if elseBody != nil {
		b.WriteString(indentBlock(emitBranchStmts(c, elseBody)))
	}
	b.WriteString("} catch ($err) {\n")
	for i, r := range resbodies {
		rn, ok := r.(ast.Node)
		if !ok {
			continue
		}
		b.WriteString(indentBlock(emitResbodyClause(c, rn, i == 0)))
	}
	b.WriteString("}")
	return b.String()
}

func emitResbodyClause(c *Converter, n ast.Node, first bool) string {
	classes, _ := n.Child(0).(ast.Node)
	varNode := n.Child(1)
	body := n.Child(2)

	var cond string
	if len(classes.Children) == 0 {
		cond = ""
	} else {
		parts := make([]string, 0, len(classes.Children))
		for _, cl := range classes.Children {
			parts = append(parts, "$err instanceof "+c.emitOperand(cl, 0))
		}
		cond = strings.Join(parts, " || ")
	}

	var b strings.Builder
	if cond == "" {
		b.WriteString("{\n")
	} else {
		kw := "if"
		if !first {
			kw = "else if"
		}
		b.WriteString(kw + " (" + cond + ") {\n")
	}
	if vn, ok := varNode.(ast.Node); ok {
		name, _ := vn.Child(0).(string)
		if name != "" {
			c.declareLocal(name)
			b.WriteString("  const " + name + " = $err;\n")
		}
	}
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}\n")
	return b.String()
}

func emitResbody(c *Converter, n ast.Node, st state) string {
	return emitResbodyClause(c, n, true)
}

func emitEnsure(c *Converter, n ast.Node, st state) string {
	body := n.Child(0)
	ensureBody := n.Child(1)

	bn, isTry := body.(ast.Node)
	var b strings.Builder
	if isTry && bn.Type == "rescue" {
		inner := emitRescue(c, bn, st)
		inner = strings.TrimSuffix(inner, "}")
		b.WriteString(inner)
	} else {
		b.WriteString("try {\n")
		b.WriteString(indentBlock(emitBranchStmts(c, body)))
		b.WriteString("}")
	}
	b.WriteString(" finally {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, ensureBody)))
	b.WriteString("}")
	return b.String()
}

// emitBegin lowers a bare statement sequence: joined with newlines in
// statement position, wrapped as an immediately-invoked arrow in expression
// position since it may contain declarations a comma-expression can't hold
// (spec §4.5.1 GROUP_OPERATORS entry for "begin").
func emitBegin(c *Converter, n ast.Node, st state) string {
	if st == stateStatement {
		var b strings.Builder
		for _, child := range n.Children {
			cn, ok := child.(ast.Node)
			if !ok {
				continue
			}
			b.WriteString(c.emit(cn, stateStatement))
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return "(() => " + emitArrowBody(c, n) + ")()"
}

// emitAndOr lowers and(lhs, rhs)/or(lhs, rhs) to `&&`/`||`, routed through
// $T under truthy=ruby (spec §4.5.9).
func emitAndOr(c *Converter, n ast.Node, st state) string {
	op := "&&"
	if n.Type == "or" {
		op = "||"
	}
	lhs := n.Child(0)
	rhs := n.Child(1)
	if c.opts.Truthy != "ruby" {
		return c.emitOperand(lhs, precedenceIndex[op]) + " " + op + " " + c.emitOperand(rhs, precedenceIndex[op]+1)
	}
	c.needHelper("T")
	lhsText := c.emitOperand(lhs, 0)
	rhsText := c.emitOperand(rhs, 0)
	if n.Type == "or" {
		c.needHelper("ror")
		return "$ror(" + lhsText + ", () => " + rhsText + ")"
	}
	c.needHelper("rand")
	return "$rand(" + lhsText + ", () => " + rhsText + ")"
}

func emitNot(c *Converter, n ast.Node, st state) string {
	inner := n.Child(0)
	return "!" + c.emitTruthy(inner)
}

// emitNullish lowers the `&.`-chain-turned-nullish-coalescing form some
// filters introduce (spec §6 `or: nullish`).
func emitNullish(c *Converter, n ast.Node, st state) string {
	lhs := n.Child(0)
	rhs := n.Child(1)
	return c.emitOperand(lhs, 0) + " ?? " + c.emitOperand(rhs, 0)
}

func emitYield(c *Converter, n ast.Node, st state) string {
	args := make([]string, 0, len(n.Children))
	for _, a := range n.Children {
		args = append(args, c.emitOperand(a, 0))
	}
	if c.currentScope() != nil {
		c.currentScope().usesSelf = true
	}
	return "_implicitBlockYield(" + strings.Join(args, ", ") + ")"
}

func emitZsuper(c *Converter, n ast.Node, st state) string {
	return "super(...arguments)"
}

func emitSuper(c *Converter, n ast.Node, st state) string {
	args := make([]string, 0, len(n.Children))
	for _, a := range n.Children {
		args = append(args, c.emitOperand(a, 0))
	}
	return "super(" + strings.Join(args, ", ") + ")"
}

// emitRegexp lowers a regexp(part..., regopt) node: parts are `str`
// fragments and interpolated expressions (the same shape as `dstr`), with
// the trailing `regopt` child naming the flags. A fully static pattern with
// no embedded `/` becomes a native `/pattern/flags` literal; an
// interpolated or slash-bearing one falls back to `new RegExp` built from a
// template literal (spec §4.5.8).
func emitRegexp(c *Converter, n ast.Node, st state) string {
	if len(n.Children) == 0 {
		return "/(?:)/"
	}
	last := n.Children[len(n.Children)-1]
	parts := n.Children[:len(n.Children)-1]

	flags := ""
	if opt, ok := last.(ast.Node); ok && opt.Type == "regopt" {
		flags = c.emit(opt, stateExpression)
	}

	hasInterp := false
	var staticPattern strings.Builder
	templateParts := make([]string, 0, len(parts))
	for _, p := range parts {
		pn, ok := p.(ast.Node)
		if !ok {
			continue
		}
		if pn.Type == "str" {
			text, _ := pn.Child(0).(string)
			staticPattern.WriteString(text)
			templateParts = append(templateParts, escapeTemplate(text))
			continue
		}
		hasInterp = true
		templateParts = append(templateParts, "${"+c.emit(pn, stateExpression)+"}")
	}

	if !hasInterp && !strings.Contains(staticPattern.String(), "/") {
		return "/" + staticPattern.String() + "/" + flags
	}
	return "new RegExp(`" + strings.Join(templateParts, "") + "`, " + quoteJS(flags) + ")"
}

// emitRegopt normalizes Ruby regex flags (x/m/i) to their JS equivalents;
// Ruby's `m` (dot matches newline) corresponds to JS `s`, and Ruby's
// extended mode `x` has no JS equivalent so it is dropped (the pattern text
// itself must already have whitespace/comments stripped upstream).
func emitRegopt(c *Converter, n ast.Node, st state) string {
	var b strings.Builder
	for _, child := range n.Children {
		flag, _ := child.(string)
		switch flag {
		case "i":
			b.WriteString("i")
		case "m":
			b.WriteString("s")
		case "x":
			// no JS equivalent; extended-mode whitespace is stripped upstream
		}
	}
	return b.String()
}

// emitXnode lowers a JSX-like element literal: void elements self-close,
// others nest children (spec §4.5.10).
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func emitXnode(c *Converter, n ast.Node, st state) string {
	tag, _ := n.Child(0).(string)
	attrs, _ := n.Child(1).(ast.Node)
	children := n.Children[2:]

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, child := range attrs.Children {
		pn, ok := child.(ast.Node)
		if !ok || pn.Type != "pair" {
			continue
		}
		key := hashKeyText(c, pn.Child(0))
		b.WriteString(" " + jsxAttrName(strings.Trim(key, `"`)) + "={" + c.emitOperand(pn.Child(1), 0) + "}")
	}
	if voidElements[tag] && len(children) == 0 {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteString(">")
	for _, child := range children {
		b.WriteString(c.emitOperand(child, 0))
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func jsxAttrName(name string) string {
	switch name {
	case "class":
		return "className"
	case "for":
		return "htmlFor"
	default:
		return name
	}
}

// emitPnode lowers a Phlex-style HTML builder node to a template-literal
// emission function; a node with a loop-bearing child renders via an
// array-join, otherwise via a flat template string (spec §4.5.10).
func emitPnode(c *Converter, n ast.Node, st state) string {
	tag, _ := n.Child(0).(string)
	children := n.Children[1:]

	containsLoop := false
	for _, child := range children {
		if cn, ok := child.(ast.Node); ok && (cn.Type == "while" || cn.Type == "for" || cn.Type == "until") {
			containsLoop = true
		}
	}

	if containsLoop {
		parts := make([]string, 0, len(children))
		for _, child := range children {
			parts = append(parts, c.emitOperand(child, 0))
		}
		return "[" + strings.Join(parts, ", ") + "].join(\"\")"
	}

	var b strings.Builder
	b.WriteString("`<" + tag + ">")
	for _, child := range children {
		if cn, ok := child.(ast.Node); ok {
			b.WriteString("${" + c.emit(cn, stateExpression) + "}")
		}
	}
	b.WriteString("</" + tag + ">`")
	return b.String()
}

// emitImport/emitExport lower to ESM or CJS per the `module` option (spec
// §6/§4.5.10).
func emitImport(c *Converter, n ast.Node, st state) string {
	from, _ := n.Child(0).(string)
	names := n.Children[1:]
	nameTexts := make([]string, 0, len(names))
	for _, nm := range names {
		s, _ := nm.(string)
		nameTexts = append(nameTexts, s)
	}
	if c.opts.Module == "cjs" {
		return "const { " + strings.Join(nameTexts, ", ") + " } = require(" + quoteJS(from) + ");"
	}
	return "import { " + strings.Join(nameTexts, ", ") + " } from " + quoteJS(from) + ";"
}

func emitExport(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return ""
	}
	text := c.emit(inner, stateStatement)
	if c.opts.Module == "cjs" {
		name := constName(inner.Child(0))
		return text + "\nmodule.exports." + name + " = " + name + ";"
	}
	return "export " + text
}
