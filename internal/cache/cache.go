package cache

import "context"

// PageCache stores rendered HTML pages keyed by request path. Writes to the
// content store invalidate the affected paths; /api/revalidate purges
// everything. All of it is best-effort: callers log failures and move on.
type PageCache interface {
	GetPage(ctx context.Context, path string) ([]byte, bool, error)
	SetPage(ctx context.Context, path string, html []byte) error
	Invalidate(ctx context.Context, paths ...string) error
	PurgeAll(ctx context.Context) error
	Close() error
}
