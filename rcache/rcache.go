// Package rcache is regexkit's content-addressed cache contract:
// get/put/invalidate over a stable string key, with a default
// fnv128a-based key generator over the raw pattern source (spec.md
// §5/§6). regexkit.Kit uses it to cache parsed ASTs; no DFA cache is
// built on it, and the solver determinizes both patterns on every
// call. A cache backend failure is recoverable — CacheError, never
// fatal — so callers log it and recompute rather than aborting.
package rcache

// Cache is the contract every cache backend (in-memory, filesystem,
// external pool) implements. Get's second return reports whether key
// was present; a miss is never an error, just a signal to recompute.
type Cache interface {
	Get(key string) (value any, ok bool, err error)
	Put(key string, value any) error
	Invalidate(key string) error
}

// KeyFunc derives a stable cache key from a pattern's raw source.
type KeyFunc func(source string) string
