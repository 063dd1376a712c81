package convert

import (
	"strconv"
	"strings"

	"github.com/rubyjs/compiler/ast"
)

func init() {
	register("block", emitBlock)
	register("numblock", emitNumblock)
	register("block_pass", emitBlockPass)
}

// emitBlock lowers block(send, args, body) to the wrapped send with an
// arrow-function argument appended (spec §4.5.6). The arrow-vs-function
// choice is always arrow: Ruby blocks never need their own `this` binding
// since ivars/self already resolve through the enclosing method's `this`
// captured by the closure.
func emitBlock(c *Converter, n ast.Node, st state) string {
	inner := asNode(n.Child(0))
	params := asNode(n.Child(1))
	body := n.Child(2)

	if loop, ok := rangeEachLoop(c, inner, params, body); ok {
		return loop
	}

	fn := c.emitArrowFunction(params, body)
	return attachBlockCallback(c, inner, fn)
}

// rangeEachLoop lowers `(lo..hi).each { |i| ... }` to a native for loop
// instead of materializing the range and calling Array.prototype.each on it
// (spec §4.5.7 "range-each loop lowering"): JS has no lazy Range, so routing
// this common case through the generic block-attachment path would force an
// eagerly-built array for what is almost always a simple counted loop.
func rangeEachLoop(c *Converter, inner ast.Node, params ast.Node, body any) (string, bool) {
	if inner.Type != "send" && inner.Type != "csend" {
		return "", false
	}
	if name, _ := inner.Child(1).(string); name != "each" {
		return "", false
	}
	recv, ok := inner.Child(0).(ast.Node)
	if !ok || (recv.Type != "irange" && recv.Type != "erange") {
		return "", false
	}
	if len(params.Children) != 1 {
		return "", false
	}
	argNode, ok := params.Child(0).(ast.Node)
	if !ok {
		return "", false
	}
	name, _ := argNode.Child(0).(string)
	if name == "" {
		return "", false
	}

	c.pushScope()
	defer c.popScope()
	c.declareLocal(name)

	start := c.emit(asNode(recv.Child(0)), stateExpression)
	end := c.emit(asNode(recv.Child(1)), stateExpression)
	cmp := "<="
	if recv.Type == "erange" {
		cmp = "<"
	}

	var b strings.Builder
	b.WriteString("for (let " + name + " = " + start + "; " + name + " " + cmp + " " + end + "; " + name + "++) {\n")
	b.WriteString(indentBlock(emitBranchStmts(c, body)))
	b.WriteString("}")
	return b.String(), true
}

// emitNumblock lowers a numbered-parameter block (`_1`, `_2`, ...; spec
// §4.5.6) to an arrow function with explicitly named parameters.
func emitNumblock(c *Converter, n ast.Node, st state) string {
	inner := asNode(n.Child(0))
	count, _ := n.Child(1).(int64)
	body := n.Child(2)

	c.pushScope()
	names := make([]string, 0, count)
	for i := int64(1); i <= count; i++ {
		name := "_" + strconv.FormatInt(i, 10)
		c.declareLocal(name)
		names = append(names, name)
	}
	bodyText := emitArrowBody(c, body)
	c.popScope()

	fn := "(" + strings.Join(names, ", ") + ") => " + bodyText
	return attachBlockCallback(c, inner, fn)
}

func (c *Converter) emitArrowFunction(params ast.Node, body any) string {
	c.pushScope()
	paramsText := ""
	if params.Type != "" {
		paramsText = c.emit(params, stateExpression)
	}
	bodyText := emitArrowBody(c, body)
	c.popScope()
	return "(" + paramsText + ") => " + bodyText
}

func emitArrowBody(c *Converter, body any) string {
	bn, ok := body.(ast.Node)
	if !ok {
		return "{}"
	}
	stmts := bodyStatements(bn)
	if len(stmts) == 1 {
		if only, ok := stmts[0].(ast.Node); ok {
			return "{ return " + c.emit(only, stateExpression) + "; }"
		}
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, stmt := range stmts {
		sn, ok := stmt.(ast.Node)
		if !ok {
			continue
		}
		text := c.emit(sn, stateStatement)
		if i == len(stmts)-1 && !strings.HasPrefix(strings.TrimSpace(text), "return") {
			text = "return " + text + ";"
		}
		b.WriteString("  ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// attachBlockCallback appends fn as the final argument of the send being
// blocked; Proc.new/proc/lambda receivers collapse to the bare arrow itself
// since a block given to one of those is the entire value, not an argument
// to a further call (spec §4.5.3 "Proc.new/proc/lambda reduction").
func attachBlockCallback(c *Converter, inner ast.Node, fn string) string {
	name, _ := inner.Child(1).(string)
	if recv, ok := inner.Child(0).(ast.Node); ok {
		if rn := constName(recv); (rn == "Proc" && name == "new") {
			return fn
		}
	} else if name == "proc" || name == "lambda" {
		return fn
	}

	recvChild := inner.Child(0)
	var args []any
	if len(inner.Children) > 2 {
		args = inner.Children[2:]
	}

	var receiver string
	hasReceiver := recvChild != nil
	if hasReceiver {
		receiver = c.emit(asNode(recvChild), stateMethod)
	} else {
		receiver = "this"
	}
	dot := "."
	if inner.Type == "csend" {
		dot = "?."
	}

	argTexts := make([]string, 0, len(args)+1)
	for _, a := range args {
		argTexts = append(argTexts, c.emitOperand(a, 0))
	}
	argTexts = append(argTexts, fn)

	prefix := ""
	if hasReceiver {
		prefix = receiver + dot
	}
	return prefix + name + "(" + strings.Join(argTexts, ", ") + ")"
}

// emitBlockPass lowers `&block`/`&:sym` argument forms: a bare proc
// reference passes through, a symbol becomes an arrow that invokes the
// method it names (spec §4.5.6 "&symbol to-proc").
func emitBlockPass(c *Converter, n ast.Node, st state) string {
	inner, ok := n.Child(0).(ast.Node)
	if !ok {
		return "undefined"
	}
	if inner.Type == "sym" {
		name, _ := inner.Child(0).(string)
		return "(x) => x." + name + "()"
	}
	return c.emit(inner, stateExpression)
}
