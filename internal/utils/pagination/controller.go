package pagination

import (
	"fmt"
	"sync"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
)

// DefaultLimit is the page size used when a view does not ask for one.
const DefaultLimit = 20

// Request is one page fetch issued by a Controller. Generation ties it to the view state it was issued for.
type Request struct {
	Page       int
	Limit      int
	Generation uint64
}

// State is a copy of the controller's current view.
type State[T any] struct {
	Items       []T
	Page        int // Last applied page, 0 before the first page arrives
	Limit       int
	HasNextPage bool
	Generation  uint64
	Fingerprint string
}

// Controller accumulates pages of a listing requested by an explicit (page, limit) pair.
// Items of later pages are appended after earlier ones; nothing already accumulated is reordered.
// Changing the view (filter or sort) through Reset discards everything and restarts at page 1,
// and completions for requests issued before the reset are rejected.
type Controller[T any] struct {
	mu          sync.Mutex
	limit       int
	page        int
	hasNext     bool
	items       []T
	generation  uint64
	fingerprint string
}

// NewController creates a controller with the given page size. A non-positive limit uses DefaultLimit.
func NewController[T any](limit int) *Controller[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Controller[T]{limit: limit}
}

// Reset discards the accumulated items, records the fingerprint of the new view and returns the page 1 request.
func (c *Controller[T]) Reset(fingerprint string) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.fingerprint = fingerprint
	c.page = 0
	c.hasNext = false
	c.items = nil
	return Request{Page: 1, Limit: c.limit, Generation: c.generation}
}

// Next returns the request for the page after the last applied one. It reports false when the
// server said there is no next page or no page has arrived yet.
func (c *Controller[T]) Next() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == 0 || !c.hasNext {
		return Request{}, false
	}
	return Request{Page: c.page + 1, Limit: c.limit, Generation: c.generation}, true
}

// Apply appends the items of the page fetched for req. A response for an older generation, or for a
// page that is not the next one (e.g. a duplicate load-more), is discarded with apperrors.ErrSuperseded.
func (c *Controller[T]) Apply(req Request, items []T, hasNextPage bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if req.Generation != c.generation {
		return fmt.Errorf("page %d of generation %d, current is %d: %w", req.Page, req.Generation, c.generation, apperrors.ErrSuperseded)
	}
	if req.Page != c.page+1 {
		return fmt.Errorf("page %d arrived after page %d: %w", req.Page, c.page, apperrors.ErrSuperseded)
	}
	c.items = append(c.items, items...)
	c.page = req.Page
	c.hasNext = hasNextPage
	return nil
}

// Refresh replaces the accumulated items with newer copies of every applied page of generation, in page
// order. Page count and generation stay as they are. It fails with apperrors.ErrSuperseded when the view
// was reset since, or when pages does not hold exactly the applied pages.
func (c *Controller[T]) Refresh(generation uint64, pages [][]T, hasNextPage bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return fmt.Errorf("refresh of generation %d, current is %d: %w", generation, c.generation, apperrors.ErrSuperseded)
	}
	if len(pages) != c.page {
		return fmt.Errorf("refresh of %d pages, %d applied: %w", len(pages), c.page, apperrors.ErrSuperseded)
	}
	var items []T
	for _, p := range pages {
		items = append(items, p...)
	}
	c.items = items
	c.hasNext = hasNextPage
	return nil
}

// Fingerprint returns the fingerprint recorded by the last Reset.
func (c *Controller[T]) Fingerprint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fingerprint
}

// Generation returns the current view generation.
func (c *Controller[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Items:       items,
		Page:        c.page,
		Limit:       c.limit,
		HasNextPage: c.hasNext,
		Generation:  c.generation,
		Fingerprint: c.fingerprint,
	}
}
