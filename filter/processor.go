// Package filter implements the AST-to-AST rewrite protocol (spec §4.4):
// Processor/BaseProcessor give external filter implementations a handler
// registry and default structural-sharing traversal, and Pipeline composes
// a filter stack into one rewrite pass over the Walker's output.
package filter

import (
	"github.com/rubyjs/compiler/ast"
	"github.com/rubyjs/compiler/config"
)

// Processor is satisfied by every filter. Process rewrites node and returns
// either the same value (no change) or a fresh one.
type Processor interface {
	Process(n ast.Node) ast.Node
}

// HandlerFunc is the signature filters register per tag. self is passed
// explicitly (rather than relying on Go method promotion) so a handler can
// recurse into the embedding filter's own Process, per §9's note that Go has
// no method_missing-style dynamic dispatch to lean on.
type HandlerFunc func(self Processor, n ast.Node) ast.Node

// PrependLister is implemented by a filter that needs to inject top-level
// statements ahead of the program body (e.g. a helper function
// definition) rather than rewrite in place.
type PrependLister interface {
	PrependList() []ast.Node
}

// Reorderer is the optional hook a filter can implement to influence filter
// stack ordering before Pipeline runs it.
type Reorderer interface {
	Reorder(filters []Processor) []Processor
}

// BaseProcessor is embedded by concrete filters to get Process/
// ProcessChildren/Register for free. Self must be set to the embedding
// filter (NewBaseProcessor(self)) so ProcessChildren recurses through the
// embedder's own overridden Process, not BaseProcessor's.
type BaseProcessor struct {
	Handlers map[string]HandlerFunc
	Self     Processor
	Parent   *BaseProcessor

	opts *config.Options // method allow-list source (spec §6 include/exclude/include_all/include_only)
}

// NewBaseProcessor constructs a BaseProcessor bound to self.
func NewBaseProcessor(self Processor) BaseProcessor {
	return BaseProcessor{Handlers: map[string]HandlerFunc{}, Self: self}
}

// Register installs a handler for tag, overwriting any previous one for the
// same tag (later registrations win, matching last-definition-wins method
// resequencing in the reference implementation).
func (b *BaseProcessor) Register(tag string, h HandlerFunc) {
	if b.Handlers == nil {
		b.Handlers = map[string]HandlerFunc{}
	}
	b.Handlers[tag] = h
}

func (b *BaseProcessor) self() Processor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

// Process dispatches on n.Type, falling back to ProcessChildren (and, if
// set, the parent processor) when no handler is registered for the tag, or
// when the tag is excluded by the method allow-list (spec §6).
func (b *BaseProcessor) Process(n ast.Node) ast.Node {
	if h, ok := b.Handlers[n.Type]; ok && !b.Excluded(n.Type) {
		return h(b.self(), n)
	}
	if b.Parent != nil {
		return b.Parent.Process(n)
	}
	return b.ProcessChildren(n)
}

// setOptions records the compiler options a filter runs under, letting
// Excluded resolve the include/exclude/include_all/include_only allow-list
// (spec §6 "filter method allow-list").
func (b *BaseProcessor) setOptions(opts *config.Options) {
	b.opts = opts
}

// Excluded reports whether tag's handler should be skipped in favor of
// falling through to the parent filter (or plain structural recursion),
// per the options surface's include/exclude/include_all/include_only
// allow-list. include_all takes precedence over everything; include_only
// is a whitelist; an explicit include always wins over exclude.
func (b *BaseProcessor) Excluded(tag string) bool {
	if b.opts == nil {
		return false
	}
	if b.opts.IncludeAll {
		return false
	}
	if len(b.opts.IncludeOnly) > 0 {
		return !containsTag(b.opts.IncludeOnly, tag)
	}
	if containsTag(b.opts.Include, tag) {
		return false
	}
	return containsTag(b.opts.Exclude, tag)
}

func containsTag(names []string, tag string) bool {
	for _, n := range names {
		if n == tag {
			return true
		}
	}
	return false
}

// ProcessChildren recurses into every Node-valued child via self.Process,
// returning n unchanged (same value) when no child actually changed —
// giving filters structural sharing for free, which Testable Property 2
// (identity filter stack matches no filter stack byte-for-byte) depends on.
func (b *BaseProcessor) ProcessChildren(n ast.Node) ast.Node {
	self := b.self()
	changed := false
	newChildren := make([]any, len(n.Children))
	for i, c := range n.Children {
		child, ok := c.(ast.Node)
		if !ok {
			newChildren[i] = c
			continue
		}
		processed := self.Process(child)
		newChildren[i] = processed
		if !processed.Equals(child) {
			changed = true
		}
	}
	if !changed {
		return n
	}
	return n.Updated("", newChildren, nil)
}

// S constructs a node sharing the current node's location, so a rewrite
// that replaces one construct with another keeps its place in source maps
// and in the comments map (which keys off span, not node identity).
func S(typ string, loc *ast.Location, children ...any) ast.Node {
	return ast.NewAt(typ, loc, children...)
}
