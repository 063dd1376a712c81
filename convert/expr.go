package convert

import (
	"fmt"

	"github.com/rubyjs/compiler/ast"
)

// emitOperand emits child as an operand of a composite operator at the
// given outer precedence, wrapping it in parens when GROUP_OPERATORS names
// its tag, when it is itself a lower-precedence binary operator, or when it
// is an `if`-as-ternary nested inside another ternary (spec §4.5.2).
func (c *Converter) emitOperand(child any, outerPrec int) string {
	n, ok := child.(ast.Node)
	if !ok {
		return c.emitPrimitive(child)
	}
	text := c.emit(n, stateExpression)

	if GROUP_OPERATORS[n.Type] {
		return "(" + text + ")"
	}
	if op, isBinary := operatorOf(n); isBinary {
		if innerPrec, found := precedenceIndex[op]; found && innerPrec < outerPrec {
			return "(" + text + ")"
		}
	}
	return text
}

func (c *Converter) emitPrimitive(v any) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// truthyHelperPrelude renders the runtime helper function definitions that
// any handler flagged as needed over the course of lowering the program
// (spec §4.5.9's `$T`/`$ror`/`$rand` plus the pattern-match/range helpers
// used by case/in and range literals); the Converter tracks need across the
// whole program and the result is prepended to the rendered body once,
// after it is fully rendered (helpers may be needed by code emitted before
// the Converter has seen the whole program).
func (c *Converter) truthyHelperPrelude() string {
	if len(c.needTruthyHelpers) == 0 {
		return ""
	}
	var prelude string
	if c.needTruthyHelpers["T"] {
		prelude += "function $T(x) { return x !== false && x !== null && x !== undefined; }\n"
	}
	if c.needTruthyHelpers["ror"] {
		prelude += "function $ror(a, b) { return $T(a) ? a : b(); }\n"
	}
	if c.needTruthyHelpers["rand"] {
		prelude += "function $rand(a, b) { return $T(a) ? b() : a; }\n"
	}
	if c.needTruthyHelpers["range"] {
		prelude += "function $range(start, end, inclusive) {\n" +
			"  const last = inclusive ? end : end - 1;\n" +
			"  const out = [];\n" +
			"  for (let i = start; i <= last; i++) out.push(i);\n" +
			"  return out;\n" +
			"}\n"
	}
	if c.needTruthyHelpers["matches"] {
		prelude += "function $matches(value, pattern) {\n" +
			"  if (Array.isArray(pattern)) {\n" +
			"    return Array.isArray(value) && value.length === pattern.length &&\n" +
			"      pattern.every((p, i) => $matches(value[i], p));\n" +
			"  }\n" +
			"  if (pattern && typeof pattern === \"object\") {\n" +
			"    return value && Object.keys(pattern).every((k) => $matches(value[k], pattern[k]));\n" +
			"  }\n" +
			"  return value === pattern;\n" +
			"}\n"
	}
	return prelude
}

func (c *Converter) needHelper(name string) {
	c.needTruthyHelpers[name] = true
}
