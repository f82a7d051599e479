package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// MutationRunner executes remote mutations and refreshes the queries they invalidate.
type MutationRunner struct {
	BaseService
	store *cache.Store
	graph *cache.InvalidationGraph
}

// NewMutationRunner creates a runner over store using graph for invalidation.
func NewMutationRunner(store *cache.Store, graph *cache.InvalidationGraph) *MutationRunner {
	return &MutationRunner{store: store, graph: graph}
}

// RunMutation calls do and, only once it succeeded, refreshes every query the mutation kind invalidates.
// A failed mutation leaves the cache untouched. If the mutation committed but the refresh failed, the
// committed value is returned together with an error classified as apperrors.ErrNetworkFailure.
func RunMutation[T any](ctx context.Context, r *MutationRunner, kind domain.MutationKind, do func(ctx context.Context) (T, error)) (T, error) {
	result, err := do(ctx)
	if err != nil {
		r.LogDebug(ctx, "Mutation rejected, cache left untouched",
			slog.String("mutation", kind.String()),
			slog.String("error", err.Error()))
		return result, err
	}

	targets := r.graph.Targets(kind)
	if err := r.store.Invalidate(ctx, targets); err != nil {
		r.LogError(ctx, err, "Mutation committed but dependent queries could not be refreshed",
			slog.String("mutation", kind.String()),
			slog.String("queries", targets.String()))
		return result, &CommittedError{Mutation: kind, Queries: targets, Err: err}
	}

	r.LogDebug(ctx, "Mutation committed", slog.String("mutation", kind.String()), slog.String("refreshed", targets.String()))
	return result, nil
}

// CommittedError reports a mutation the remote service accepted whose dependent queries could not be
// refreshed. It matches apperrors.ErrNetworkFailure.
type CommittedError struct {
	Mutation domain.MutationKind
	Queries  cache.QuerySet
	Err      error
}

func (e *CommittedError) Error() string {
	return fmt.Sprintf("%s committed, refresh of %s failed: %v", e.Mutation, e.Queries, e.Err)
}

func (e *CommittedError) Unwrap() []error {
	return []error{apperrors.ErrNetworkFailure, e.Err}
}

// runMutationNoResult adapts a mutation without a result value.
func runMutationNoResult(ctx context.Context, r *MutationRunner, kind domain.MutationKind, do func(ctx context.Context) error) error {
	_, err := RunMutation(ctx, r, kind, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, do(ctx)
	})
	return err
}
