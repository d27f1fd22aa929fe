package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/sources"
)

// Browser is the non-generic view of a List that the presentation layer
// binds to.
type Browser interface {
	Kind() data.Kind
	Load(ctx context.Context)
	Cancel()
	Search(query string)
	Query() string
	NextPage()
	PreviousPage()
	Page() int
	TotalPages() int
	IsFirstPage() bool
	IsLastPage() bool
	Count() int
	PageResources() []data.Resource
	Loading() bool
	Err() string
}

// List is the listing state of one resource kind: the full collection, the
// filtered view of it and a page window over the filtered view.
type List[T data.Resource] struct {
	client  *sources.Client
	kind    data.Kind
	perPage int
	logger  *slog.Logger

	mu       sync.Mutex
	all      []T
	filtered []T
	query    string
	page     int
	order    func(a, b T) int
	loading  bool
	err      string
	gen      uint64
	cancel   context.CancelFunc
}

// NewList creates an empty list for kind. A perPage of zero or less uses the
// kind's default.
func NewList[T data.Resource](client *sources.Client, kind data.Kind, perPage int) *List[T] {
	if perPage <= 0 {
		perPage = kind.PerPage()
	}
	return &List[T]{
		client:   client,
		kind:     kind,
		perPage:  perPage,
		logger:   client.Logger(),
		all:      []T{},
		filtered: []T{},
		page:     1,
	}
}

// NewBrowser returns the list for kind with films in episode order.
func NewBrowser(kind data.Kind, client *sources.Client, perPage int) (Browser, error) {
	switch kind {
	case data.KindFilms:
		l := NewList[data.Film](client, kind, perPage)
		l.SortBy(data.CompareEpisode)
		return l, nil
	case data.KindPeople:
		return NewList[data.Person](client, kind, perPage), nil
	case data.KindPlanets:
		return NewList[data.Planet](client, kind, perPage), nil
	case data.KindSpecies:
		return NewList[data.Species](client, kind, perPage), nil
	case data.KindStarships:
		return NewList[data.Starship](client, kind, perPage), nil
	case data.KindVehicles:
		return NewList[data.Vehicle](client, kind, perPage), nil
	}
	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

// Load fetches the full collection. On success the filter is cleared and the
// page reset to 1; on failure the collections keep their prior value.
func (l *List[T]) Load(ctx context.Context) {
	ctx, gen := l.begin(ctx)
	logger := l.logger.With("kind", string(l.kind), "load_id", uuid.NewString())
	logger.Debug("loading list")

	items, err := l.run(ctx)
	l.finish(gen, items, err, logger)
}

func (l *List[T]) begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	l.loading = true
	l.err = ""

	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

func (l *List[T]) run(ctx context.Context) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while loading: %v", r)
		}
	}()

	items = sources.FetchList[T](ctx, l.client, l.kind.Endpoint())
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return items, nil
}

func (l *List[T]) finish(gen uint64, items []T, err error, logger *slog.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		logger.Debug("discarding superseded load")
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.loading = false

	if err != nil {
		l.err = fmt.Sprintf("Failed to load %s. Please try again later.", strings.ToLower(l.kind.Plural()))
		logger.Error("failed to load list", "error", err)
		return
	}

	l.all = items
	if l.order != nil {
		slices.SortStableFunc(l.all, l.order)
	}
	l.query = ""
	l.filtered = l.all
	l.page = 1
	logger.Debug("list loaded", "count", len(items))
}

// Cancel abandons the load in flight, if any.
func (l *List[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel == nil {
		return
	}
	l.cancel()
	l.cancel = nil
	l.gen++
	l.loading = false
}

// Search filters the collection by a case-insensitive substring of the display
// name. The query is matched as given; a blank query shows everything. The
// page always resets to 1.
func (l *List[T]) Search(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query = query
	l.applyFilter()
	l.page = 1
}

func (l *List[T]) applyFilter() {
	if strings.TrimSpace(l.query) == "" {
		l.filtered = l.all
		return
	}
	needle := strings.ToLower(l.query)
	filtered := make([]T, 0, len(l.all))
	for _, item := range l.all {
		if strings.Contains(strings.ToLower(item.DisplayName()), needle) {
			filtered = append(filtered, item)
		}
	}
	l.filtered = filtered
}

// SortBy orders the collection with cmp, now and after every load. The current
// filter is re-applied; the page is kept.
func (l *List[T]) SortBy(cmp func(a, b T) int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.order = cmp
	if cmp == nil {
		return
	}
	sorted := slices.Clone(l.all)
	slices.SortStableFunc(sorted, cmp)
	l.all = sorted
	l.applyFilter()
}

func (l *List[T]) NextPage() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.page < l.totalPages() {
		l.page++
	}
}

func (l *List[T]) PreviousPage() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.page > 1 {
		l.page--
	}
}

func (l *List[T]) totalPages() int {
	return (len(l.filtered) + l.perPage - 1) / l.perPage
}

// TotalPages is ceil(filtered/perPage); zero when nothing matches.
func (l *List[T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages()
}

func (l *List[T]) IsFirstPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page == 1
}

func (l *List[T]) IsLastPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page == l.totalPages()
}

// Items returns the current page window of the filtered collection.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := (l.page - 1) * l.perPage
	if start >= len(l.filtered) {
		return []T{}
	}
	end := min(start+l.perPage, len(l.filtered))
	return slices.Clone(l.filtered[start:end])
}

func (l *List[T]) PageResources() []data.Resource {
	return data.Resources(l.Items())
}

func (l *List[T]) Filtered() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.filtered)
}

func (l *List[T]) All() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.all)
}

func (l *List[T]) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.filtered)
}

func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *List[T]) PerPage() int {
	return l.perPage
}

func (l *List[T]) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *List[T]) Kind() data.Kind {
	return l.kind
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
