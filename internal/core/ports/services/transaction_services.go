package services

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// TransactionViewSvc drives the paged, filtered transaction listing.
type TransactionViewSvc interface {
	// View returns the current listing, loading the first page if nothing has been loaded yet.
	View(ctx context.Context) (*domain.TransactionView, error)

	// UpdateFilters merges patch into the current filter. Any change restarts paging at page 1.
	UpdateFilters(ctx context.Context, patch domain.FilterPatch) (*domain.TransactionView, error)

	// ClearFilters unsets every filter field.
	ClearFilters(ctx context.Context) (*domain.TransactionView, error)

	// SetSort changes the ordering. Any change restarts paging at page 1.
	SetSort(ctx context.Context, sort domain.TransactionSort) (*domain.TransactionView, error)

	// LoadMore appends the next page. pageToken, when given, must belong to the current view.
	LoadMore(ctx context.Context, pageToken string) (*domain.TransactionView, error)
}

// TransactionReaderSvc defines the remaining transaction reads.
type TransactionReaderSvc interface {
	RecentTransactions(ctx context.Context, limit int) cache.Result[[]domain.Transaction]
	Categories(ctx context.Context) cache.Result[[]domain.Category]
}

// TransactionWriterSvc defines write operations for transactions.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, input domain.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionViewSvc
	TransactionReaderSvc
	TransactionWriterSvc
}
