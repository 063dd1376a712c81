// Package convert lowers the rewritten uniform AST to JavaScript text while
// emitting a Source Map v3 record (spec §4.5). It is the dominant component
// of the pipeline: a large per-tag handler table built on top of the
// serializer package's token/line buffer.
package convert

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rubyjs/compiler/ast"
	"github.com/rubyjs/compiler/config"
	"github.com/rubyjs/compiler/diagnostics"
	"github.com/rubyjs/compiler/namespace"
	"github.com/rubyjs/compiler/serializer"
	"github.com/rubyjs/compiler/sourcemap"
)

// state is the emission mode installed for the duration of a handler call
// (spec §4.5.1): statement positions may emit attached comments and
// terminating semicolons; expression positions must parenthesize per
// precedence; method position additionally governs IsMethod()-style
// call-vs-property decisions for nested sends.
type state int

const (
	stateStatement state = iota
	stateExpression
	stateMethod
)

// Result is the Converter's output: rendered JavaScript plus its Source Map
// v3 record.
type Result struct {
	Code      string
	SourceMap *sourcemap.Map
}

// handlerFunc is registered per AST tag. c carries all mutable emission
// state; n is the node being lowered; st is the state it was entered in.
type handlerFunc func(c *Converter, n ast.Node, st state) string

// Converter lowers one program's AST to JS text. Not safe for concurrent
// use by a single instance; separate instances are fully independent
// (spec §5).
type Converter struct {
	opts       *config.Options
	logger     *zap.Logger
	tempPrefix string

	out *serializer.Serializer
	ns  *namespace.Namespace

	scopes []*scope

	comments *ast.CommentsMap
	emitted  map[string]bool // comment dedup by its span key

	mapBuilder *sourcemap.Builder
	curLine    int
	curNode    *ast.Node

	needTruthyHelpers map[string]bool

	classStack []*classCtx
	privNames  map[string]bool // ES2022 private-field prefixed names for the current class

	forcePrivateNext bool // set by the "private_method" wrapper before emitting its inner def

	src *ast.Source
}

// New constructs a Converter. tempPrefix (minted by filter.Pipeline via
// google/uuid) namespaces every synthesized temporary binding so a host
// that concatenates multiple independently compiled files never collides
// two files' temps.
func New(opts *config.Options, logger *zap.Logger, tempPrefix string) *Converter {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		opts:              opts,
		logger:            logger,
		tempPrefix:        tempPrefix,
		out:               serializer.New(opts.Width),
		ns:                namespace.New(),
		emitted:           map[string]bool{},
		needTruthyHelpers: map[string]bool{},
		privNames:         map[string]bool{},
	}
}

// Convert lowers program to JavaScript, producing a Result. program's
// Location.Source (read off the first located node) names the contributing
// source buffer for the emitted map.
func (c *Converter) Convert(program ast.Node, comments *ast.CommentsMap, file string) (*Result, error) {
	c.comments = comments
	if comments == nil {
		c.comments = ast.NewCommentsMap()
	}
	c.src = firstSource(program)
	c.mapBuilder = sourcemap.NewBuilder(file)

	c.pushScope()
	defer c.popScope()

	if c.opts.Strict {
		c.out.Puts(`"use strict";`)
	}

	body, err := c.safeEmit(program, stateStatement)
	if err != nil {
		return nil, err
	}
	c.out.Puts(body)

	c.flushPendingDeclarations()

	code := c.truthyHelperPrelude() + c.out.String()
	return &Result{Code: code, SourceMap: c.mapBuilder.Build()}, nil
}

func (c *Converter) safeEmit(n ast.Node, st state) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	out = c.emit(n, st)
	return
}

// emit dispatches on n.Type, installing st for the duration of the call
// (spec §4.5.1). An unknown tag is fatal (diagnostics.UnsupportedConstructError).
func (c *Converter) emit(n ast.Node, st state) string {
	h, ok := handlers[n.Type]
	if !ok {
		panic(diagnostics.NewUnsupportedConstructError("no handler for node type "+n.Type, n.Loc))
	}

	if st == stateStatement {
		c.emitLeadingComments(n)
	}
	text := h(c, n, st)
	if st == stateStatement {
		text += c.trailingComment(n)
	}
	return text
}

func firstSource(n ast.Node) *ast.Source {
	var found *ast.Source
	var walk func(ast.Node) bool
	walk = func(x ast.Node) bool {
		if found != nil {
			return false
		}
		if x.Loc != nil && x.Loc.Source != nil {
			found = x.Loc.Source
			return false
		}
		return true
	}
	n.Walk(walk)
	return found
}

type handlerTable map[string]handlerFunc

var handlers handlerTable

func register(tag string, h handlerFunc) {
	if handlers == nil {
		handlers = handlerTable{}
	}
	handlers[tag] = h
}

// checkCoverage reports every tag in ast.KnownTags without a registered
// handler; run from tests as the runtime substitute for a compile-time
// exhaustive switch over an intentionally open tag vocabulary (spec §9,
// SPEC_FULL §5.1).
func checkCoverage() []string {
	var missing []string
	for tag := range ast.KnownTags {
		if _, ok := handlers[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}
