package rcache

import (
	"encoding/hex"
	"hash/fnv"
)

// GenerateKey is the default KeyFunc: an fnv128a content hash of
// source, hex-encoded. Stable across processes given identical input,
// per spec.md §6's cache key contract.
func GenerateKey(source string) string {
	h := fnv.New128a()
	_, _ = h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}
