// Package rubyjsc is the public entry point: Convert wires walker.Parse,
// filter.NewPipeline, and Pipeline.Run into the single call a host program
// makes (spec §6's conceptual `convert(source, options)`).
package rubyjsc

import (
	"github.com/rubyjs/compiler/config"
	"github.com/rubyjs/compiler/filter"
	"github.com/rubyjs/compiler/sourcemap"
	"github.com/rubyjs/compiler/walker"
)

// Result is the compiled output: JavaScript text plus its Source Map v3
// record.
type Result struct {
	Code      string
	SourceMap *sourcemap.Map
}

// Convert parses source as Ruby, runs the configured filter stack once, and
// lowers the result to JavaScript. opts may be nil, taking
// config.DefaultOptions(). name is the logical file name recorded on the
// source map and diagnostics; it defaults to opts.File, falling back to
// "source.rb" when both are empty.
func Convert(source []byte, opts *config.Options) (*Result, error) {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	name := opts.File
	if name == "" {
		name = "source.rb"
	}

	parsed, err := walker.Parse(name, source)
	if err != nil {
		return nil, err
	}

	filters := ResolveFilters(opts)
	pipeline := filter.NewPipeline(filters, opts)

	res, err := pipeline.Run(parsed.Program, parsed.Comments, name)
	if err != nil {
		return nil, err
	}
	return &Result{Code: res.Code, SourceMap: res.SourceMap}, nil
}
