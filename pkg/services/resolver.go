package services

import (
	"context"

	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/sources"
)

// Resolve materializes one reference field. A field with no references
// resolves to an empty slice without touching the network; otherwise each
// reference is fetched concurrently and failures are dropped.
func Resolve[T any](ctx context.Context, client *sources.Client, refs data.Refs) []T {
	if len(refs) == 0 {
		return []T{}
	}
	return sources.FetchMany[T](ctx, client, refs)
}

// ResolveOne materializes a single-URL reference such as a homeworld. It is
// nil when the field is empty or the fetch failed.
func ResolveOne[T any](ctx context.Context, client *sources.Client, ref data.Text) *T {
	refs := data.One(ref)
	if len(refs) == 0 {
		return nil
	}
	return sources.FetchEach[T](ctx, client, refs)[refs[0]]
}
