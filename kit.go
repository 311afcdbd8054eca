package regexkit

import (
	"log"

	"github.com/regexkit/regexkit/rcache"
	"github.com/regexkit/regexkit/syntax"
)

// parsed is what Kit caches per pattern source: the AST and the
// pattern envelope it was split from.
type parsed struct {
	pattern *syntax.Pattern
	root    *syntax.Node
}

// Kit is a regexkit pipeline bound to a specific AST cache. The
// package-level Parse and Analyze functions behave like a Kit backed
// by NullCache; the other package-level functions have no Kit
// counterpart. Callers that parse or analyze the same pattern source repeatedly
// (a linter watching a codebase, a solver run over many pairs drawn
// from a shared pattern set) construct a Kit to skip redundant
// re-parsing (spec.md §5/§6's cache contract).
type Kit struct {
	cache rcache.Cache
	keyFn rcache.KeyFunc
}

// NewKit returns a Kit backed by cache, using rcache.GenerateKey to
// derive cache keys from raw pattern source. A nil cache is treated
// as rcache.NullCache{} — caching is always optional, never required
// for correctness.
func NewKit(cache rcache.Cache) *Kit {
	if cache == nil {
		cache = rcache.NullCache{}
	}
	return &Kit{cache: cache, keyFn: rcache.GenerateKey}
}

// WithKeyFunc overrides the cache key derivation, e.g. to namespace
// keys across multiple Kits sharing one backend.
func (k *Kit) WithKeyFunc(fn rcache.KeyFunc) *Kit {
	k.keyFn = fn
	return k
}

// Parse is Parse, cached on source's content hash. A cache backend
// failure on Get or Put is logged with the standard log package and
// treated as a miss: per spec.md §7 a CacheError is recoverable, never
// fatal, so Kit falls back to recomputing rather than surfacing it to
// the caller.
func (k *Kit) Parse(source string) (*syntax.Pattern, *syntax.Node, error) {
	key := k.keyFn(source)
	if cached, ok, err := k.cache.Get(key); err != nil {
		log.Printf("regexkit: cache get failed, recomputing: %v", err)
	} else if ok {
		if p, ok := cached.(parsed); ok {
			return p.pattern, p.root, nil
		}
	}

	pattern, root, err := Parse(source)
	if err != nil {
		return pattern, root, err
	}

	if err := k.cache.Put(key, parsed{pattern: pattern, root: root}); err != nil {
		log.Printf("regexkit: cache put failed: %v", err)
	}
	return pattern, root, nil
}

// Analyze is Analyze, reusing Kit's cached AST when source was parsed
// before.
func (k *Kit) Analyze(source string) (AnalyzeReport, error) {
	pattern, root, err := k.Parse(source)
	if err != nil {
		return AnalyzeReport{}, err
	}
	return analyze(pattern, root)
}
