package repositories

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// TransactionReader defines the transaction queries of the remote data service.
type TransactionReader interface {
	// Transactions returns one page of the filtered, sorted listing.
	Transactions(ctx context.Context, query domain.TransactionQuery) (*domain.TransactionPage, error)

	// RecentTransactions returns the newest transactions across all accounts.
	RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	// Categories returns the categories known to the service.
	Categories(ctx context.Context) ([]domain.Category, error)
}

// TransactionWriter defines the transaction mutations of the remote data service.
type TransactionWriter interface {
	CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// TransactionRemoteFacade combines all transaction-related remote interfaces.
type TransactionRemoteFacade interface {
	TransactionReader
	TransactionWriter
}
