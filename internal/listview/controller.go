// Package listview implements the paginated list controller shared by
// every dashboard list view (media feed, flagged queue, topics, watchlist).
// One controller replaces the per-view copies of the same fetch/filter/
// pagination loop: it fetches one page consistent with the current filter
// set, tracks loading and error state, and guarantees that a slow, stale
// response can never overwrite the state of a newer one.
package listview

import (
	"context"
	"slices"
	"sync"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
)

// Fetcher loads one page of items for a filter set.
type Fetcher[T any] func(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]T, domain.Pagination, error)

// State is a snapshot of one list view.
type State[T any] struct {
	Items      []T
	Loading    bool
	Err        *apperr.Error
	Pagination domain.Pagination
	Filters    domain.FilterSet
}

// Controller orchestrates fetches for one list view. Safe for concurrent
// use; every load carries a sequence number and only the latest one may
// land, so out-of-order completions are discarded instead of clobbering
// fresher state.
type Controller[T any] struct {
	mu      sync.Mutex
	fetcher Fetcher[T]
	idOf    func(T) string
	limit   int

	seq   uint64
	state State[T]
}

// New creates a controller over the given fetcher. idOf extracts the
// identifier used by Patch and Remove.
func New[T any](fetcher Fetcher[T], idOf func(T) string, limit int) *Controller[T] {
	return &Controller[T]{
		fetcher: fetcher,
		idOf:    idOf,
		limit:   limit,
		state: State[T]{
			Pagination: domain.NewPagination(1, limit, 0),
		},
	}
}

// Load fetches the given page under the current filters. An empty token
// means logged out: nothing to show, not an error, and the fetcher is
// never called. The returned error, if any, is also recorded in the state
// with the previous items left visible.
func (c *Controller[T]) Load(ctx context.Context, token string, page int) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if token == "" {
		c.seq++
		c.state.Items = nil
		c.state.Loading = false
		c.state.Err = nil
		c.state.Pagination = domain.NewPagination(1, c.limit, 0)
		c.mu.Unlock()
		return nil
	}

	c.seq++
	seq := c.seq
	filters := c.state.Filters
	c.state.Loading = true
	c.state.Err = nil
	// The page is reflected before the fetch completes so pagination
	// controls track the user's click, not the network.
	c.state.Pagination.CurrentPage = page
	c.mu.Unlock()

	items, pagination, err := c.fetcher(ctx, token, filters, page, c.limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// A newer load superseded this one while it was in flight.
		return nil
	}

	c.state.Loading = false
	if err != nil {
		// Keep the previous items visible; stale beats blank.
		c.state.Err = apperr.From(err)
		return c.state.Err
	}

	c.state.Items = items
	c.state.Err = nil
	if pagination.Limit == 0 {
		pagination = domain.NewPagination(page, c.limit, len(items))
	}
	c.state.Pagination = pagination
	return nil
}

// SetFilters replaces the filter set. Any change resets the current page
// to 1; the caller is expected to Load afterwards.
func (c *Controller[T]) SetFilters(filters domain.FilterSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Filters.Equal(filters) {
		c.state.Pagination.CurrentPage = 1
	}
	c.state.Filters = filters.Normalize()
}

// State returns a snapshot of the current view state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.state
	snapshot.Items = slices.Clone(c.state.Items)
	return snapshot
}

// Patch applies fn to the item with the given id, in place. Returns false
// when the item is not on the current page.
func (c *Controller[T]) Patch(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Items {
		if c.idOf(c.state.Items[i]) == id {
			fn(&c.state.Items[i])
			return true
		}
	}
	return false
}

// Remove deletes the item with the given id from the current page and
// shrinks the pagination totals, without a refetch. Exactly one item is
// removed; returns false when no item matches.
func (c *Controller[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Items {
		if c.idOf(c.state.Items[i]) == id {
			c.state.Items = slices.Delete(c.state.Items, i, i+1)
			c.state.Pagination = c.state.Pagination.WithTotal(c.state.Pagination.TotalItems - 1)
			return true
		}
	}
	return false
}
