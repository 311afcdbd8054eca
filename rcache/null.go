package rcache

// NullCache is a Cache that stores nothing: every Get is a miss, Put
// and Invalidate are no-ops. Callers that disable caching entirely use
// this instead of special-casing a nil Cache everywhere.
type NullCache struct{}

func (NullCache) Get(string) (any, bool, error) { return nil, false, nil }
func (NullCache) Put(string, any) error         { return nil }
func (NullCache) Invalidate(string) error       { return nil }
