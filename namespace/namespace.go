// Package namespace tracks nested class/module scopes and the
// cross-scope visibility of declared names, as described in the Data
// Model's Namespace section. It is grounded on the teacher's scope-chain
// walk (analyzer/linage Scope + Identifier.resolveIdent's walk-outward
// lookup), adapted from byte-offset identifiers to named class/module
// descriptors.
package namespace

import "strings"

// Kind distinguishes the shape of a descriptor bound to a name.
type Kind string

const (
	KindSelf          Kind = "self"
	KindAutobindSelf  Kind = "autobind_self"
	KindPrivateMethod Kind = "private_method"
	KindSetter        Kind = "setter"
	KindOwner         Kind = "owner" // the owning class/module node itself
)

// Descriptor is what Find resolves a name to.
type Descriptor struct {
	Kind   Kind
	Prefix string // private_method name prefix ("#" or "_")
	Inner  string // private_method inner (unprefixed) name
	Owner  any    // the owning class/module AST node, for KindOwner
}

// Namespace maintains a stack of currently-entered scope paths and a
// mapping from scope path to the names visible in it.
type Namespace struct {
	stack []string
	// scopes maps a "/"-joined scope path to its locally-declared names.
	// A path is never removed on Leave, so re-entering a previously-seen
	// scope (reopening a class/module) yields the accumulated descriptors.
	scopes map[string]map[string]Descriptor
}

// New creates an empty Namespace positioned at the top level.
func New() *Namespace {
	return &Namespace{scopes: make(map[string]map[string]Descriptor)}
}

// Enter pushes constName onto the current scope path.
func (ns *Namespace) Enter(constName string) {
	ns.stack = append(ns.stack, constName)
	path := ns.path()
	if _, ok := ns.scopes[path]; !ok {
		ns.scopes[path] = make(map[string]Descriptor)
	}
}

// Leave pops the current scope. Enter/Leave calls must be balanced; Leave
// on an empty stack is a no-op (defensive, not load-bearing).
func (ns *Namespace) Leave() {
	if len(ns.stack) == 0 {
		return
	}
	ns.stack = ns.stack[:len(ns.stack)-1]
}

func (ns *Namespace) path() string {
	return strings.Join(ns.stack, "/")
}

// DefineProps registers descriptors visible in the current scope.
func (ns *Namespace) DefineProps(props map[string]Descriptor) {
	path := ns.path()
	scope, ok := ns.scopes[path]
	if !ok {
		scope = make(map[string]Descriptor)
		ns.scopes[path] = scope
	}
	for name, d := range props {
		scope[name] = d
	}
}

// GetOwnProps returns the descriptors declared directly in the current
// scope (not walking outward).
func (ns *Namespace) GetOwnProps() map[string]Descriptor {
	return ns.scopes[ns.path()]
}

// Find resolves name by walking outward from the current scope to the top
// level, returning the nearest definition.
func (ns *Namespace) Find(name string) (Descriptor, bool) {
	for depth := len(ns.stack); depth >= 0; depth-- {
		path := strings.Join(ns.stack[:depth], "/")
		if scope, ok := ns.scopes[path]; ok {
			if d, ok := scope[name]; ok {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// CurrentPath exposes the "/"-joined scope path, for diagnostics and tests.
func (ns *Namespace) CurrentPath() string {
	return ns.path()
}
