package services

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	ListAccounts(ctx context.Context) cache.Result[[]domain.Account]
	GetAccount(ctx context.Context, accountID string) cache.Result[*domain.Account]
	TotalBalance(ctx context.Context) cache.Result[decimal.Decimal]

	// Overview groups the accounts by type and reconciles them with the bank connections.
	Overview(ctx context.Context) (*domain.AccountsOverview, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
