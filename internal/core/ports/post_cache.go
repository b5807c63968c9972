package ports

import "context"

// PostCache caches rendered post-listing pages. Implementations are best-effort:
// a cache error must never fail the request, only bypass the cache.
type PostCache interface {
	GetPage(ctx context.Context, page int32) (*PostPage, bool, error)
	SetPage(ctx context.Context, page int32, data *PostPage) error
	// Invalidate drops every cached page; called after any post mutation.
	Invalidate(ctx context.Context) error
}
