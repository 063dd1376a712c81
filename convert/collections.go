package convert

import (
	"strings"

	"github.com/rubyjs/compiler/ast"
)

func init() {
	register("array", emitArray)
	register("hash", emitHash)
	register("pair", emitPair)
	register("irange", emitRange)
	register("erange", emitRange)
	register("hash_pattern", emitHashPattern)
	register("array_pattern", emitArrayPattern)
	register("find_pattern", emitArrayPattern)
}

func emitArray(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, c.emitOperand(child, 0))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func emitHash(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		cn, ok := child.(ast.Node)
		if !ok {
			continue
		}
		parts = append(parts, c.emit(cn, stateExpression))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func emitPair(c *Converter, n ast.Node, st state) string {
	key := n.Child(0)
	value := n.Child(1)
	keyText := hashKeyText(c, key)
	return keyText + ": " + c.emitOperand(value, 0)
}

func hashKeyText(c *Converter, key any) string {
	if kn, ok := key.(ast.Node); ok {
		switch kn.Type {
		case "sym":
			name, _ := kn.Child(0).(string)
			if isIdentifierLike(name) {
				return name
			}
			return quoteJS(name)
		case "str":
			text, _ := kn.Child(0).(string)
			return "[" + quoteJS(text) + "]"
		default:
			return "[" + c.emit(kn, stateExpression) + "]"
		}
	}
	return c.emitPrimitive(key)
}

func isIdentifierLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// emitRange renders a range literal outside of index/iteration context as a
// call to the `$range(start, end, inclusive)` runtime helper, which returns a
// materialized array, since JS has no lazy range type (spec
// §4.5.3's range-receiver rewriting covers the common each/map/[] cases;
// this is the fallback for a range used as a plain value).
func emitRange(c *Converter, n ast.Node, st state) string {
	start := c.emit(asNode(n.Child(0)), stateExpression)
	endChild := n.Child(1)
	if endChild == nil {
		return "{ start: " + start + " }"
	}
	end := c.emit(asNode(endChild), stateExpression)
	inclusive := "true"
	if n.Type == "erange" {
		inclusive = "false"
	}
	c.needHelper("range")
	return "$range(" + start + ", " + end + ", " + inclusive + ")"
}

func emitHashPattern(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		cn, ok := child.(ast.Node)
		if !ok {
			continue
		}
		if cn.Type == "pair" {
			key := hashKeyText(c, cn.Child(0))
			if target, ok := cn.Child(1).(ast.Node); ok {
				parts = append(parts, key+": "+c.emit(target, stateExpression))
				continue
			}
			parts = append(parts, key)
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func emitArrayPattern(c *Converter, n ast.Node, st state) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, c.emitOperand(child, 0))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
