package services

import (
	"fmt"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/platform/config"
	"github.com/SscSPs/spendwise_client/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share store, which the caller owns (Init before serving, Dispose on shutdown).
func NewServiceContainer(cfg *config.Config, remotes portsrepo.RemoteProvider, store *cache.Store) (*portssvc.ServiceContainer, error) {
	graph, err := cache.NewInvalidationGraph(cache.DefaultEdges())
	if err != nil {
		return nil, err
	}

	ledgerKey, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return nil, fmt.Errorf("failed to key code ledger: %w", err)
	}
	codes, err := NewCodeLedger([]byte(ledgerKey))
	if err != nil {
		return nil, err
	}

	mutations := NewMutationRunner(store, graph)

	container := &portssvc.ServiceContainer{}
	container.Auth = NewStepUpAuthService(remotes.Login, store, codes, WithPendingTokenTTL(cfg.PendingTokenTTL))
	container.TwoFactor = NewTwoFactorService(remotes.TwoFactor, store, mutations, codes)
	container.Account = NewAccountService(remotes.Accounts, remotes.BankConnections, store, mutations)
	container.Transaction = NewTransactionService(remotes.Transactions, store, mutations,
		WithPageSize(cfg.PageSize),
		WithLocalFiltering(cfg.LocalFiltering),
	)
	container.Dashboard = NewDashboardService(remotes.Dashboard, store)

	return container, nil
}
