package convert

import "github.com/rubyjs/compiler/ast"

// OPERATORS groups operator selectors by precedence, lowest first; operators
// in the same inner slice share a priority and tie-break to the right (spec
// §4.5.2). LOGICAL covers the three keyword-form boolean tags, which are
// parenthesized using the same table entry as their symbolic cousins.
var OPERATORS = [][]string{
	{"or"},
	{"and"},
	{"not"},
	{"||"},
	{"&&"},
	{"|"},
	{"^"},
	{"&"},
	{"==", "!=", "===", "!=="},
	{"<", ">", "<=", ">="},
	{"<<", ">>", ">>>"},
	{"+", "-"},
	{"*", "/", "%"},
	{"**"},
}

// LOGICAL is the keyword-spelled boolean operator set, grouped specially
// per spec §4.5.2.
var LOGICAL = map[string]bool{"and": true, "not": true, "or": true}

// GROUP_OPERATORS always requires wrapping in parens when embedded as an
// operand of a larger expression, regardless of precedence (spec §4.5.2).
var GROUP_OPERATORS = map[string]bool{
	"begin": true, "dstr": true, "dsym": true, "and": true, "or": true,
	"nullish": true, "casgn": true, "if": true, "await": true, "await!": true,
}

var precedenceIndex = buildPrecedenceIndex()

func buildPrecedenceIndex() map[string]int {
	idx := map[string]int{}
	for i, group := range OPERATORS {
		for _, op := range group {
			idx[op] = i
		}
	}
	return idx
}

// operatorOf extracts the binary operator selector from a `send` node
// shaped like `send(lhs, op, rhs)`, or ok=false if n isn't a two-operand
// send.
func operatorOf(n ast.Node) (string, bool) {
	if n.Type != "send" || len(n.Children) != 3 {
		return "", false
	}
	op, ok := n.Children[1].(string)
	return op, ok
}
