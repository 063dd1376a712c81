package filter

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rubyjs/compiler/ast"
	"github.com/rubyjs/compiler/config"
	"github.com/rubyjs/compiler/convert"
)

// IdentityFilter registers no handlers; Pipeline with only an IdentityFilter
// must produce byte-for-byte the same output as Pipeline with no filters at
// all (Testable Property 2).
type IdentityFilter struct {
	BaseProcessor
}

func NewIdentityFilter() *IdentityFilter {
	f := &IdentityFilter{}
	f.BaseProcessor = NewBaseProcessor(f)
	return f
}

// Pipeline runs a filter stack once over a Walker result and hands the
// rewritten tree to the Converter, implementing §4.4's seven-step procedure:
// instantiate filters, compose via parent chaining, run Process once,
// collect+dedupe+sort PrependList, re-associate comments, construct the
// Converter, invoke Convert.
type Pipeline struct {
	filters []Processor
	opts    *config.Options
	logger  *zap.Logger
}

// NewPipeline composes filters with explicit parent threading: each
// BaseProcessor-embedding filter's Parent is set to the previous filter's
// BaseProcessor, so an unhandled tag falls through the stack in order
// before reaching the default ProcessChildren traversal.
func NewPipeline(filters []Processor, opts *config.Options) *Pipeline {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ordered := filters
	for _, f := range filters {
		if r, ok := f.(Reorderer); ok {
			ordered = r.Reorder(ordered)
		}
	}
	chainParents(ordered)
	for _, f := range ordered {
		if bp, ok := f.(ParentAware); ok {
			bp.Base().setOptions(opts)
		}
	}
	logger.Debug("filter pipeline composed", zap.Int("filters", len(ordered)))
	return &Pipeline{filters: ordered, opts: opts, logger: logger}
}

// ParentAware is implemented by a filter that exposes its embedded
// BaseProcessor, letting Pipeline chain it to the previous filter in the
// stack so an unhandled tag falls through in registration order.
type ParentAware interface {
	Base() *BaseProcessor
}

func chainParents(filters []Processor) {
	var prev *BaseProcessor
	for _, f := range filters {
		bp, ok := f.(ParentAware)
		if !ok {
			continue
		}
		bp.Base().Parent = prev
		prev = bp.Base()
	}
}

// Base exposes IdentityFilter's embedded BaseProcessor for parent chaining.
func (f *IdentityFilter) Base() *BaseProcessor { return &f.BaseProcessor }

// Run executes every filter once over program, re-associates comments
// against the rewritten tree, and lowers the result to JavaScript text plus
// a source map via the convert package.
func (p *Pipeline) Run(program ast.Node, comments *ast.CommentsMap, file string) (*convert.Result, error) {
	current := program
	var prepends []ast.Node

	for _, f := range p.filters {
		current = f.Process(current)
		if pl, ok := f.(PrependLister); ok {
			prepends = append(prepends, pl.PrependList()...)
		}
	}

	prepends = dedupePrepends(prepends)
	if len(prepends) > 0 {
		children := make([]any, 0, len(prepends)+1)
		for _, n := range prepends {
			children = append(children, n)
		}
		children = append(children, current)
		current = ast.New("begin", children...)
	}

	finalComments := reassociate(current, comments)
	if n := len(finalComments.Orphan); n > 0 {
		p.logger.Debug("comments fell back to orphan after filter rewrite", zap.Int("count", n))
	}

	tempPrefix := uuid.NewString()[:8]
	conv := convert.New(p.opts, p.logger, tempPrefix)
	return conv.Convert(current, finalComments, file)
}

// dedupePrepends removes structurally-equal duplicates (two filters
// independently injecting the same helper) and stable-sorts by source
// start offset so prepended declarations appear in a deterministic order
// regardless of filter registration order.
func dedupePrepends(nodes []ast.Node) []ast.Node {
	var out []ast.Node
	for _, n := range nodes {
		dup := false
		for _, existing := range out {
			if existing.Equals(n) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return startOf(out[i]) < startOf(out[j])
	})
	return out
}

func startOf(n ast.Node) int {
	if n.Loc == nil {
		return 0
	}
	return n.Loc.Start
}

// reassociate rebuilds trailing/orphan attachment against the rewritten
// tree's located nodes, reusing the original _raw comment list: filters
// that preserve location via S() keep their existing attachment (the
// comments map keys off source span, not node identity), while filters
// that introduce brand-new unlocated nodes simply attach nothing.
func reassociate(program ast.Node, comments *ast.CommentsMap) *ast.CommentsMap {
	if comments == nil {
		return ast.NewCommentsMap()
	}
	var located []ast.LocatedNode
	var walk func(n ast.Node, depth int)
	walk = func(n ast.Node, depth int) {
		if n.Loc != nil {
			located = append(located, ast.LocatedNode{Node: n, Start: n.Loc.Start, End: n.Loc.End, Depth: depth})
		}
		for _, c := range n.Children {
			if child, ok := c.(ast.Node); ok {
				walk(child, depth+1)
			}
		}
	}
	walk(program, 0)
	return ast.Associate(located, comments.Raw)
}
