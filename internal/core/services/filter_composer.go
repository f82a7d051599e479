package services

import (
	"sync"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// FilterComposer holds the current filter of a transaction view.
type FilterComposer struct {
	mu      sync.Mutex
	current domain.TransactionFilter
}

// NewFilterComposer starts with every field unset.
func NewFilterComposer() *FilterComposer {
	return &FilterComposer{}
}

// Current returns the filter in effect.
func (c *FilterComposer) Current() domain.TransactionFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Update merges patch into the current filter and reports whether anything changed.
func (c *FilterComposer) Update(patch domain.FilterPatch) (domain.TransactionFilter, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := patch.Apply(c.current)
	if err != nil {
		return c.current, false, err
	}
	changed := !next.Equal(c.current)
	c.current = next
	return next, changed, nil
}

// Clear unsets every field and reports whether anything was set before.
func (c *FilterComposer) Clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := !c.current.IsEmpty()
	c.current = domain.TransactionFilter{}
	return changed
}
