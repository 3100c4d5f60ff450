package pokemon

import "context"

type bypassCacheKey struct{}

// ContextWithBypassCache marks ctx so fetches skip cached responses and go to
// the upstream. Fresh results are still written back to the cache.
func ContextWithBypassCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCacheKey{}, true)
}

// BypassCache reports whether ctx was marked by ContextWithBypassCache.
func BypassCache(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(bypassCacheKey{}).(bool)
	return v
}
