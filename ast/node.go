// Package ast defines the uniform semantic tree the Walker produces, the
// Filter stack rewrites, and the Converter lowers to JavaScript. A Node is an
// immutable value: Updated never mutates in place, it returns a fresh Node.
package ast

import "reflect"

// Node is an immutable AST value: a type tag, an ordered list of children
// (each either a Node, a primitive, or nil), and an optional Location.
//
// Equality is structural: two nodes are Equal if their Type matches and
// every child is recursively Equal (primitives compare with ==).
type Node struct {
	Type     string
	Children []any
	Props    map[string]any
	Loc      *Location
}

// New constructs a Node. Children may themselves be Node values, nil, or any
// primitive (string, int64, float64, bool, *big.Rat for rationals, etc).
func New(typ string, children ...any) Node {
	return Node{Type: typ, Children: children}
}

// NewAt constructs a Node carrying the given Location.
func NewAt(typ string, loc *Location, children ...any) Node {
	return Node{Type: typ, Children: children, Loc: loc}
}

// WithProps returns a copy of n with the given properties merged in. Props
// are side-band metadata (e.g. a filter's provenance note) that do not
// participate in structural equality.
func (n Node) WithProps(props map[string]any) Node {
	merged := make(map[string]any, len(n.Props)+len(props))
	for k, v := range n.Props {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	n.Props = merged
	return n
}

// Updated returns a fresh Node with the given type/children replaced when
// non-nil/non-empty is requested; omitted arguments reuse the receiver's
// values. Updated never mutates n. A mismatched child count is accepted:
// nodes are bags, validation is a filter concern (per spec invariant).
func (n Node) Updated(typ string, children []any, props map[string]any) Node {
	out := n
	if typ != "" {
		out.Type = typ
	}
	if children != nil {
		out.Children = children
	}
	if props != nil {
		out = out.WithProps(props)
	}
	return out
}

// Child returns the i-th child, or nil if out of range.
func (n Node) Child(i int) any {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildNode returns the i-th child as a Node, ok=false if it is absent or not
// a Node (e.g. it is nil or a primitive).
func (n Node) ChildNode(i int) (Node, bool) {
	c := n.Child(i)
	if c == nil {
		return Node{}, false
	}
	child, ok := c.(Node)
	return child, ok
}

// ToChildrenList returns the Children slice as-is; provided for parity with
// the reference implementation's accessor of the same name.
func (n Node) ToChildrenList() []any {
	return n.Children
}

// ChildNodes returns only those children that are themselves Node values,
// in order, skipping primitives and nils.
func (n Node) ChildNodes() []Node {
	var out []Node
	for _, c := range n.Children {
		if child, ok := c.(Node); ok {
			out = append(out, child)
		}
	}
	return out
}

// Walk visits n and every descendant Node depth-first, calling visit on
// each. visit returns false to stop descending into that node's children;
// it does not stop the overall walk. Used by filter.Processor's default
// ProcessChildren and by the comment-association pass, which both need
// "every node carrying a location" without re-implementing traversal.
func (n Node) Walk(visit func(Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		if child, ok := c.(Node); ok {
			child.Walk(visit)
		}
	}
}

// Equals reports structural equality: same Type, recursively Equal children,
// primitive children compared with reflect.DeepEqual (covers numeric/string
// primitives and nil uniformly). Location and Props are not compared.
func (n Node) Equals(other Node) bool {
	if n.Type != other.Type {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !equalChild(n.Children[i], other.Children[i]) {
			return false
		}
	}
	return true
}

func equalChild(a, b any) bool {
	an, aok := a.(Node)
	bn, bok := b.(Node)
	if aok != bok {
		return false
	}
	if aok {
		return an.Equals(bn)
	}
	return reflect.DeepEqual(a, b)
}

// attrTags are send-like constructs that are never method calls in the
// is_method sense.
var attrTags = map[string]bool{"attr": true, "await_attr": true}

// IsMethod decides whether a send-shaped node prints with invocation
// parentheses or as a bare property access. This preserves the original
// Ruby syntactic distinction between `foo` and `foo()` when lowering to JS,
// and its exact behavior is load-bearing (spec §9): it peeks at the source
// byte immediately after the Selector span to check for `(`.
func (n Node) IsMethod() bool {
	switch n.Type {
	case "call":
		return true
	case "attr", "await_attr":
		return false
	case "def", "defs":
		name, _ := n.Child(methodNameIndex(n)).(string)
		if hasBang(name) {
			return true
		}
		if args, ok := n.ChildNode(argsIndex(n)); ok && len(args.Children) > 0 {
			return true
		}
		return selectorFollowedByParen(n.Loc)
	default:
		return selectorFollowedByParen(n.Loc)
	}
}

func hasBang(name string) bool {
	if name == "" {
		return false
	}
	last := name[len(name)-1]
	return last == '!' || last == '?'
}

// methodNameIndex/argsIndex: def(name, args, body) / defs(recv, name, args, body)
func methodNameIndex(n Node) int {
	if n.Type == "defs" {
		return 1
	}
	return 0
}

func argsIndex(n Node) int {
	if n.Type == "defs" {
		return 2
	}
	return 1
}

func selectorFollowedByParen(loc *Location) bool {
	if loc == nil || loc.Selector == nil || loc.Source == nil {
		return false
	}
	pos := loc.Selector.End
	if pos < 0 || pos >= len(loc.Source.Text) {
		return false
	}
	return loc.Source.Text[pos] == '('
}

// KnownTags is the stable AST tag vocabulary the Walker, filter stack, and
// Converter agree on. It is not exhaustive of every tag a filter may
// introduce (domain filters are out of core scope, per spec §1/§6), but it
// lists every tag the core itself produces or consumes; convert.Converter's
// test suite checks coverage against it.
var KnownTags = map[string]bool{}

func init() {
	for _, t := range []string{
		"int", "float", "rational", "complex", "str", "dstr", "xstr", "sym", "dsym",
		"true", "false", "nil", "self",
		"lvar", "lvasgn", "ivar", "ivasgn", "cvar", "cvasgn", "gvar", "gvasgn",
		"const", "casgn", "cbase",
		"send", "csend", "sendw", "send!", "await", "await!", "await_attr", "attr", "call",
		"block", "block_pass", "numblock", "args", "arg", "optarg", "restarg",
		"kwarg", "kwoptarg", "kwrestarg", "blockarg", "shadowarg",
		"irange", "erange",
		"if", "unless", "case", "when", "case_match", "in_pattern",
		"while", "until", "while_post", "until_post", "for", "for_of",
		"break", "next", "return", "redo", "retry",
		"rescue", "resbody", "ensure", "begin", "kwbegin",
		"op_asgn", "or_asgn", "and_asgn", "masgn", "mlhs",
		"class", "module", "sclass", "def", "defs",
		"hash", "pair", "array", "splat", "kwsplat",
		"hash_pattern", "array_pattern", "find_pattern",
		"match_var", "match_alt", "match_as", "pin",
		"and", "or", "not", "nullish",
		"regexp", "regopt",
		"xnode", "pnode", "prop",
		"autoreturn", "autobind", "private_method", "setter",
		"yield", "zsuper", "super",
		"import", "export",
		"alias", "undef", "defined?",
	} {
		KnownTags[t] = true
	}
}
