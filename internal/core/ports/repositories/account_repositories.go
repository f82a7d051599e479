package repositories

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines the account queries of the remote data service.
type AccountReader interface {
	// Accounts lists every account of the signed-in user.
	Accounts(ctx context.Context) ([]domain.Account, error)

	// Account retrieves one account. Returns apperrors.ErrNotFound for an unknown ID.
	Account(ctx context.Context, id string) (*domain.Account, error)

	// TotalBalance returns the sum of all account balances.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// AccountWriter defines the account mutations of the remote data service.
type AccountWriter interface {
	CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id string, input domain.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountRemoteFacade combines all account-related remote interfaces.
type AccountRemoteFacade interface {
	AccountReader
	AccountWriter
}
