package pagination

import (
	"fmt"
	"testing"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageOf(page, limit int) []string {
	items := make([]string, limit)
	for i := range items {
		items[i] = fmt.Sprintf("p%d-%d", page, i)
	}
	return items
}

func TestController_LoadMoreAppendsInOrder(t *testing.T) {
	c := NewController[string](2)
	req := c.Reset("view")
	assert.Equal(t, Request{Page: 1, Limit: 2, Generation: 1}, req)

	require.NoError(t, c.Apply(req, pageOf(1, 2), true))

	var previous []string
	for page := 2; page <= 4; page++ {
		next, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, page, next.Page)
		assert.Equal(t, 2, next.Limit)

		previous = c.Snapshot().Items
		require.NoError(t, c.Apply(next, pageOf(page, 2), page < 4))

		got := c.Snapshot().Items
		assert.GreaterOrEqual(t, len(got), len(previous))
		assert.Equal(t, previous, got[:len(previous)], "earlier pages stay a prefix")
	}

	_, ok := c.Next()
	assert.False(t, ok, "server reported no next page")
	assert.Len(t, c.Snapshot().Items, 8)
}

func TestController_NextBeforeFirstPage(t *testing.T) {
	c := NewController[string](0)
	c.Reset("view")

	_, ok := c.Next()
	assert.False(t, ok)
	assert.Equal(t, DefaultLimit, c.Snapshot().Limit)
}

func TestController_ResetDiscardsAndRejectsStaleCompletion(t *testing.T) {
	c := NewController[string](2)
	first := c.Reset("category=Travel")
	require.NoError(t, c.Apply(first, pageOf(1, 2), true))
	stale, ok := c.Next()
	require.True(t, ok)

	restart := c.Reset("category=Shopping")
	assert.Equal(t, 1, restart.Page)
	assert.Empty(t, c.Snapshot().Items)
	assert.Equal(t, "category=Shopping", c.Fingerprint())

	err := c.Apply(stale, pageOf(2, 2), false)
	assert.ErrorIs(t, err, apperrors.ErrSuperseded)
	assert.Empty(t, c.Snapshot().Items)

	require.NoError(t, c.Apply(restart, []string{"s1"}, false))
	assert.Equal(t, []string{"s1"}, c.Snapshot().Items)
}

func TestController_DuplicateLoadMoreIsDiscarded(t *testing.T) {
	c := NewController[string](1)
	req := c.Reset("")
	require.NoError(t, c.Apply(req, []string{"a"}, true))

	next, _ := c.Next()
	again, _ := c.Next()
	require.NoError(t, c.Apply(next, []string{"b"}, true))

	assert.ErrorIs(t, c.Apply(again, []string{"b"}, true), apperrors.ErrSuperseded)
	assert.Equal(t, []string{"a", "b"}, c.Snapshot().Items)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c := NewController[string](1)
	req := c.Reset("")
	require.NoError(t, c.Apply(req, []string{"a"}, false))

	snap := c.Snapshot()
	snap.Items[0] = "mutated"

	assert.Equal(t, []string{"a"}, c.Snapshot().Items)
}

func TestController_RefreshReplacesAppliedPages(t *testing.T) {
	c := NewController[string](2)
	req := c.Reset("view")
	require.NoError(t, c.Apply(req, pageOf(1, 2), true))
	next, _ := c.Next()
	require.NoError(t, c.Apply(next, []string{"p2-0"}, false))
	generation := c.Generation()

	require.NoError(t, c.Refresh(generation, [][]string{{"new-0", "new-1"}, {"new-2"}}, true))

	snap := c.Snapshot()
	assert.Equal(t, []string{"new-0", "new-1", "new-2"}, snap.Items)
	assert.Equal(t, 2, snap.Page)
	assert.True(t, snap.HasNextPage)
	assert.Equal(t, generation, snap.Generation)

	assert.ErrorIs(t, c.Refresh(generation, [][]string{{"x"}}, false), apperrors.ErrSuperseded, "page count differs")
	c.Reset("other")
	assert.ErrorIs(t, c.Refresh(generation, nil, false), apperrors.ErrSuperseded, "view was reset")
	assert.Empty(t, c.Snapshot().Items)
}
