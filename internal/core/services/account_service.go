package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type accountKeyVars struct {
	ID string `json:"id"`
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	remote      portsrepo.AccountRemoteFacade
	connections portsrepo.BankConnectionReader
	store       *cache.Store
	mutations   *MutationRunner
}

// NewAccountService creates the account service.
func NewAccountService(remote portsrepo.AccountRemoteFacade, connections portsrepo.BankConnectionReader, store *cache.Store, mutations *MutationRunner) portssvc.AccountSvcFacade {
	return &accountService{
		remote:      remote,
		connections: connections,
		store:       store,
		mutations:   mutations,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListAccounts(ctx context.Context) cache.Result[[]domain.Account] {
	key, _ := cache.NewKey(domain.QueryAccounts, nil)
	return cache.Read(ctx, s.store, key, cache.CacheAndNetwork, s.remote.Accounts)
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) cache.Result[*domain.Account] {
	if err := s.ValidateVar("account id", accountID, "required"); err != nil {
		return cache.Result[*domain.Account]{Err: err}
	}
	key, err := cache.NewKey(domain.QueryAccount, accountKeyVars{ID: accountID})
	if err != nil {
		return cache.Result[*domain.Account]{Err: err}
	}
	return cache.Read(ctx, s.store, key, cache.CacheAndNetwork, func(ctx context.Context) (*domain.Account, error) {
		return s.remote.Account(ctx, accountID)
	})
}

func (s *accountService) TotalBalance(ctx context.Context) cache.Result[decimal.Decimal] {
	key, _ := cache.NewKey(domain.QueryTotalBalance, nil)
	return cache.Read(ctx, s.store, key, cache.CacheAndNetwork, s.remote.TotalBalance)
}

func (s *accountService) Overview(ctx context.Context) (*domain.AccountsOverview, error) {
	accounts := s.ListAccounts(ctx)
	if accounts.Err != nil {
		s.LogError(ctx, accounts.Err, "Failed to load accounts for overview")
		return nil, accounts.Err
	}

	connKey, _ := cache.NewKey(domain.QueryBankConnections, nil)
	connections := cache.Read(ctx, s.store, connKey, cache.CacheAndNetwork, s.connections.BankConnections)
	if connections.Err != nil {
		// without connection data every account shows as manual, which is still a useful page
		s.LogError(ctx, connections.Err, "Failed to load bank connections, showing accounts as manual")
	}

	rec := Reconcile(accounts.Data, connections.Data)
	for _, c := range rec.Conflicts {
		s.GetLogger(ctx).Warn("Account claimed by more than one bank connection, first one wins",
			slog.String("account_id", c.AccountID),
			slog.Any("connection_ids", c.ConnectionIDs))
	}

	return &domain.AccountsOverview{
		Groups:    GroupAccountsByType(accounts.Data, rec),
		Summary:   accounting.SummarizeBalances(accounts.Data),
		Conflicts: rec.Conflicts,
		Loading:   accounts.Loading || connections.Loading,
	}, nil
}

func (s *accountService) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	if err := s.ValidateInput(input); err != nil {
		s.LogDebug(ctx, "Invalid account input", slog.String("error", err.Error()))
		return nil, err
	}

	account, err := RunMutation(ctx, s.mutations, domain.MutationCreateAccount, func(ctx context.Context) (*domain.Account, error) {
		return s.remote.CreateAccount(ctx, input)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("name", input.Name))
		return account, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.ID))
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error) {
	if err := s.ValidateVar("account id", accountID, "required"); err != nil {
		return nil, err
	}
	if input.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}
	if err := s.ValidateInput(input); err != nil {
		return nil, err
	}

	account, err := RunMutation(ctx, s.mutations, domain.MutationUpdateAccount, func(ctx context.Context) (*domain.Account, error) {
		return s.remote.UpdateAccount(ctx, accountID, input)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return account, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.ValidateVar("account id", accountID, "required"); err != nil {
		return err
	}

	err := runMutationNoResult(ctx, s.mutations, domain.MutationDeleteAccount, func(ctx context.Context) error {
		return s.remote.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
