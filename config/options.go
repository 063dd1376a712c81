// Package config defines the compiler's option surface (spec §6) as a plain
// struct plus functional-option constructors, mirroring the teacher's
// analyzer.Option pattern (analyzer/option.go).
package config

import (
	"go.uber.org/zap"

	"github.com/rubyjs/compiler/diagnostics"
)

// Comparison selects how `==`/`!=` lower (spec §6 `comparison`).
type Comparison string

const (
	ComparisonEquality Comparison = "equality"
	ComparisonIdentity Comparison = "identity"
)

// OrPolicy selects how `||` lowers (spec §6 `or`).
type OrPolicy string

const (
	OrAuto    OrPolicy = "auto"
	OrLogical OrPolicy = "logical"
	OrNullish OrPolicy = "nullish"
)

// TruthyMode selects Ruby-semantics-preserving truthiness (spec §6 `truthy`).
type TruthyMode string

const (
	TruthyJS   TruthyMode = "js"
	TruthyRuby TruthyMode = "ruby"
)

// ModuleKind selects the import/export lowering form (spec §6 `module`).
type ModuleKind string

const (
	ModuleESM ModuleKind = "esm"
	ModuleCJS ModuleKind = "cjs"
)

// Binding lets a host supply an evaluation context for backtick strings;
// absent, a backtick string is a SecurityError (spec §6 `binding`).
type Binding interface {
	Eval(command string) (string, error)
}

// Options mirrors every option enumerated in spec §6.
type Options struct {
	ESLevel           int
	Strict            bool
	Comparison        Comparison
	Or                OrPolicy
	Truthy            TruthyMode
	NullishToS        bool
	Module            ModuleKind
	UnderscoredPrivate bool
	Width             int

	FilterNames []string

	Include      []string
	Exclude      []string
	IncludeAll   bool
	IncludeOnly  []string

	File string

	Binding Binding
	Ivars   map[string]any

	Logger *zap.Logger
}

// Option mutates an Options value being built; matches the teacher's
// `func(*Analyzer) Option` idiom.
type Option func(*Options)

// DefaultOptions returns spec-conformant defaults: ES2015 baseline, js
// truthiness, equality comparison, ESM modules, 80-column width, and a
// no-op logger so callers that don't care about diagnostics pay nothing.
func DefaultOptions() *Options {
	return &Options{
		ESLevel:    2015,
		Comparison: ComparisonEquality,
		Or:         OrAuto,
		Truthy:     TruthyJS,
		Module:     ModuleESM,
		Width:      80,
		Logger:     zap.NewNop(),
	}
}

// New builds Options from DefaultOptions with the given overrides applied
// in order.
func New(opts ...Option) *Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(o)
	}
	return o
}

func WithESLevel(level int) Option {
	return func(o *Options) { o.ESLevel = level }
}

func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

func WithComparison(c Comparison) Option {
	return func(o *Options) { o.Comparison = c }
}

func WithOr(p OrPolicy) Option {
	return func(o *Options) { o.Or = p }
}

func WithTruthy(m TruthyMode) Option {
	return func(o *Options) { o.Truthy = m }
}

func WithNullishToS(b bool) Option {
	return func(o *Options) { o.NullishToS = b }
}

func WithModule(m ModuleKind) Option {
	return func(o *Options) { o.Module = m }
}

func WithUnderscoredPrivate(b bool) Option {
	return func(o *Options) { o.UnderscoredPrivate = b }
}

func WithWidth(w int) Option {
	return func(o *Options) { o.Width = w }
}

func WithFilters(names ...string) Option {
	return func(o *Options) { o.FilterNames = names }
}

func WithInclude(names ...string) Option {
	return func(o *Options) { o.Include = names }
}

func WithExclude(names ...string) Option {
	return func(o *Options) { o.Exclude = names }
}

func WithIncludeAll() Option {
	return func(o *Options) { o.IncludeAll = true }
}

func WithIncludeOnly(names ...string) Option {
	return func(o *Options) { o.IncludeOnly = names }
}

func WithFile(name string) Option {
	return func(o *Options) { o.File = name }
}

func WithBinding(b Binding) Option {
	return func(o *Options) { o.Binding = b }
}

func WithIvars(ivars map[string]any) Option {
	return func(o *Options) { o.Ivars = ivars }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Validate reports an invalid option value (a non-positive width) as a
// ConfigurationConflictError (spec §7).
func (o *Options) Validate() error {
	if o.Width <= 0 {
		return diagnostics.NewConfigurationConflictError("width must be positive")
	}
	return nil
}
