package lexgen

import (
	"github.com/coregx/lexgen/cache"
	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/mode"
	"github.com/coregx/lexgen/prefilter"
)

// buildCache memoizes compiled Scanners by the deep equality of their mode
// definitions (spec's build-time caching optimization contract), grounded
// in the teacher's dfa/lazy.Cache RWMutex-guarded map.
var buildCache = cache.New[*Scanner]()

// Builder accumulates scanner modes (or a single implicit mode, via the
// single-mode shortcut AddPatterns) and compiles them into a Scanner.
type Builder struct {
	registry *classes.Registry
	defs     []mode.Def
}

// NewBuilder creates an empty Builder with its own character-class registry.
func NewBuilder() *Builder {
	return &Builder{registry: classes.NewRegistry()}
}

// AddMode appends a fully specified mode.
func (b *Builder) AddMode(def mode.Def) *Builder {
	b.defs = append(b.defs, def)
	return b
}

// AddPatterns is the single-mode shortcut: it adds patterns to mode 0
// (creating it, named "", on first use) for callers that only need one
// mode and no transitions.
func (b *Builder) AddPatterns(patterns ...mode.PatternDef) *Builder {
	if len(b.defs) == 0 {
		b.defs = append(b.defs, mode.Def{})
	}
	b.defs[0].Patterns = append(b.defs[0].Patterns, patterns...)
	return b
}

// Build compiles every added mode into a Scanner. It always compiles
// fresh and never consults the build cache — two Builders with deep-equal
// mode definitions get two independent Scanners, each with its own
// current_mode, so mode-switch state is never accidentally shared across
// unrelated Scanner instances.
func (b *Builder) Build() (*Scanner, error) {
	return b.build()
}

// BuildCached is Build, but reuses a previously cached Scanner compiled
// from a deep-equal mode-definition list anywhere in the process, per the
// build-time caching optimization contract (spec §5/§9). Callers that opt
// into this must accept that Scanners returned for equal definitions are
// the same instance, sharing current_mode across call sites.
func (b *Builder) BuildCached() (*Scanner, error) {
	key, err := cache.Key(b.defs)
	if err != nil {
		return nil, err
	}
	return buildCache.Get(key, func() (*Scanner, error) {
		return b.build()
	})
}

func (b *Builder) build() (*Scanner, error) {
	modes := make([]*runtimeMode, len(b.defs))
	for i, def := range b.defs {
		cm, err := mode.Compile(def, b.registry)
		if err != nil {
			return nil, err
		}

		sources := make([]string, len(def.Patterns))
		for j, p := range def.Patterns {
			sources[j] = p.Source
		}
		pf, engaged, err := prefilter.ForMode(sources, b.registry)
		if err != nil {
			return nil, err
		}
		if !engaged {
			pf = nil
		}

		modes[i] = &runtimeMode{compiled: cm, prefilter: pf}
	}

	s := &Scanner{registry: b.registry, modes: modes}
	return s, nil
}
