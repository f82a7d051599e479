package cache

import (
	"fmt"
	"strings"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// QuerySet is a set of query kinds.
type QuerySet uint32

// NewQuerySet builds a set from kinds.
func NewQuerySet(kinds ...domain.QueryKind) QuerySet {
	var s QuerySet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns s plus k.
func (s QuerySet) With(k domain.QueryKind) QuerySet {
	return s | 1<<uint(k)
}

// Has reports whether k is in s.
func (s QuerySet) Has(k domain.QueryKind) bool {
	return s&(1<<uint(k)) != 0
}

// Kinds lists the members of s in declaration order.
func (s QuerySet) Kinds() []domain.QueryKind {
	var out []domain.QueryKind
	for _, k := range domain.AllQueryKinds() {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s QuerySet) String() string {
	names := make([]string, 0)
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// InvalidationGraph maps every mutation kind to the fixed set of queries that must be refreshed
// once the mutation has been acknowledged.
type InvalidationGraph struct {
	edges map[domain.MutationKind]QuerySet
}

// NewInvalidationGraph validates edges and builds a graph. Every declared mutation kind needs an entry
// (an empty set is allowed) and every target must be a declared query kind.
func NewInvalidationGraph(edges map[domain.MutationKind]QuerySet) (*InvalidationGraph, error) {
	var known QuerySet
	for _, k := range domain.AllQueryKinds() {
		known = known.With(k)
	}

	g := &InvalidationGraph{edges: make(map[domain.MutationKind]QuerySet, len(edges))}
	for kind, targets := range edges {
		if !kind.Valid() {
			return nil, fmt.Errorf("invalidation graph: unknown mutation kind %d", kind)
		}
		if targets&^known != 0 {
			return nil, fmt.Errorf("invalidation graph: %s targets an unknown query kind", kind)
		}
		g.edges[kind] = targets
	}
	for _, kind := range domain.AllMutationKinds() {
		if _, ok := g.edges[kind]; !ok {
			return nil, fmt.Errorf("invalidation graph: no entry for %s", kind)
		}
	}
	return g, nil
}

var (
	accountTargets = NewQuerySet(
		domain.QueryAccounts,
		domain.QueryAccount,
		domain.QueryDashboardStats,
		domain.QueryTotalBalance,
	)
	transactionTargets = NewQuerySet(
		domain.QueryTransactions,
		domain.QueryDashboardStats,
		domain.QueryAccounts,
		domain.QueryAnalytics,
	)
	enrollmentTargets = NewQuerySet(domain.QueryTwoFactorStatus)
)

// DefaultEdges returns the edges used by the dashboard.
func DefaultEdges() map[domain.MutationKind]QuerySet {
	return map[domain.MutationKind]QuerySet{
		domain.MutationCreateAccount:         accountTargets,
		domain.MutationUpdateAccount:         accountTargets,
		domain.MutationDeleteAccount:         accountTargets,
		domain.MutationCreateTransaction:     transactionTargets,
		domain.MutationUpdateTransaction:     transactionTargets,
		domain.MutationDeleteTransaction:     transactionTargets,
		domain.MutationSendSetupCode:         0,
		domain.MutationEnableTwoFactor:       enrollmentTargets,
		domain.MutationDisableTwoFactor:      enrollmentTargets,
		domain.MutationRegenerateBackupCodes: enrollmentTargets,
		// A completed login purges the whole cache instead.
		domain.MutationLoginStep1: 0,
		domain.MutationLoginStep2: 0,
	}
}

// DefaultInvalidationGraph returns the graph built from DefaultEdges.
// It panics if the table is incomplete, which can only happen when a new kind is declared without an edge.
func DefaultInvalidationGraph() *InvalidationGraph {
	g, err := NewInvalidationGraph(DefaultEdges())
	if err != nil {
		panic(err)
	}
	return g
}

// Targets returns the queries kind invalidates.
func (g *InvalidationGraph) Targets(kind domain.MutationKind) QuerySet {
	return g.edges[kind]
}
