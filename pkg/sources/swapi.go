package sources

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kerbaras/holocron/pkg/utils"
)

// Client fetches resources from a SWAPI-compatible API. Its fetch functions
// never return errors: failures are logged and surface as absent values or
// dropped entries.
type Client struct {
	api            Getter
	logger         *slog.Logger
	maxConcurrency int
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxConcurrency caps in-flight requests per FetchMany call. Zero or less
// means unbounded.
func WithMaxConcurrency(n int) ClientOption {
	return func(c *Client) {
		c.maxConcurrency = n
	}
}

func NewClient(api Getter, opts ...ClientOption) *Client {
	c := &Client{
		api:            api,
		logger:         utils.NewDiscardLogger(),
		maxConcurrency: 8,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSwapi builds a client for the public API.
func NewSwapi(opts ...ClientOption) *Client {
	return NewClient(utils.NewAPI(utils.DefaultBaseURL), opts...)
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// FetchOne GETs one resource. It returns nil when the request or decoding fails.
func FetchOne[T any](ctx context.Context, c *Client, path string) *T {
	return fetch[T](ctx, c, path, "FetchOne")
}

// FetchList GETs a list endpoint. It returns an empty slice on failure.
func FetchList[T any](ctx context.Context, c *Client, path string) []T {
	var out []T
	if err := c.api.Get(ctx, path, nil, &out); err != nil {
		c.logFailure("FetchList", typeName[T](), path, err)
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// FetchMany GETs every URL concurrently and returns the resources that were
// fetched successfully. Failed entries are dropped, so the result may be
// shorter than urls. Surviving entries keep their relative input order.
func FetchMany[T any](ctx context.Context, c *Client, urls []string) []T {
	results := fetchAll[T](ctx, c, urls)
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	if dropped := len(urls) - len(out); dropped > 0 {
		c.logger.Debug("partial fetch", "type", typeName[T](), "requested", len(urls), "dropped", dropped)
	}
	return out
}

// FetchEach is FetchMany keyed by URL, for callers that must know which
// reference a result came from (services.ResolveOne looks its ref up here).
// Failed URLs map to nil.
func FetchEach[T any](ctx context.Context, c *Client, urls []string) map[string]*T {
	results := fetchAll[T](ctx, c, urls)
	out := make(map[string]*T, len(urls))
	for i, u := range urls {
		if r, ok := out[u]; ok && r != nil {
			continue
		}
		out[u] = results[i]
	}
	return out
}

func fetchAll[T any](ctx context.Context, c *Client, urls []string) []*T {
	results := make([]*T, len(urls))
	if len(urls) == 0 {
		return results
	}

	var sem chan struct{}
	if c.maxConcurrency > 0 {
		sem = make(chan struct{}, c.maxConcurrency)
	}

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					c.logFailure("FetchMany", typeName[T](), u, ctx.Err())
					return
				}
			}
			results[i] = fetch[T](ctx, c, u, "FetchMany")
		}(i, u)
	}
	wg.Wait()

	return results
}

// fetch returns nil on failure and for a null body.
func fetch[T any](ctx context.Context, c *Client, path, op string) *T {
	var v *T
	if err := c.api.Get(ctx, path, nil, &v); err != nil {
		c.logFailure(op, typeName[T](), path, err)
		return nil
	}
	if v == nil {
		c.logger.Warn("empty resource", "op", op, "type", typeName[T](), "target", path)
	}
	return v
}

func (c *Client) logFailure(op, typ, target string, err error) {
	c.logger.Warn("fetch failed", "op", op, "type", typ, "target", target, "error", err)
}

func typeName[T any]() string {
	var v T
	return fmt.Sprintf("%T", v)
}
