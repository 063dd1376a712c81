package rubyjsc

import (
	"go.uber.org/zap"

	"github.com/rubyjs/compiler/config"
	"github.com/rubyjs/compiler/filter"
)

// filterRegistry resolves a config.Options.FilterNames entry (spec §6
// `filters: list<FilterCtor | string>`) to a fresh Processor instance. A
// host embedding its own filters builds its Processor slice directly and
// bypasses this registry entirely; it exists for the common case of
// selecting among the filters this module ships by name (e.g. from a YAML
// profile, where a Go constructor value can't be expressed).
var filterRegistry = map[string]func() filter.Processor{
	"identity":   func() filter.Processor { return filter.NewIdentityFilter() },
	"visibility": func() filter.Processor { return filter.NewVisibilityFilter() },
}

// defaultFilterNames is the filter stack Convert runs when opts.FilterNames
// is empty: just enough to make private_method/setter lowering reachable
// from ordinary Ruby visibility syntax (spec §4.5.4).
var defaultFilterNames = []string{"visibility"}

// ResolveFilters builds the Processor stack named by opts.FilterNames (or
// defaultFilterNames when that list is empty), in order. An unknown name is
// logged and skipped rather than treated as fatal: a profile written
// against a newer module version may name a filter this build doesn't
// ship.
func ResolveFilters(opts *config.Options) []filter.Processor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	names := opts.FilterNames
	if len(names) == 0 {
		names = defaultFilterNames
	}
	out := make([]filter.Processor, 0, len(names))
	for _, name := range names {
		ctor, ok := filterRegistry[name]
		if !ok {
			logger.Warn("unknown filter name, skipping", zap.String("filter", name))
			continue
		}
		logger.Debug("registering filter", zap.String("filter", name))
		out = append(out, ctor())
	}
	return out
}
