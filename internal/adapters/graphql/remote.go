package graphql

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Ensure Client implements the RemoteDataService interface
var _ portsrepo.RemoteDataService = (*Client)(nil)

func (c *Client) Accounts(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := c.do(ctx, opGetAccounts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Account(ctx context.Context, id string) (*domain.Account, error) {
	var out *domain.Account
	if err := c.do(ctx, opGetAccount, idVars{ID: id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var out decimal.Decimal
	if err := c.do(ctx, opGetTotalBalance, nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	var out *domain.Account
	if err := c.do(ctx, opCreateAccount, inputVars[domain.CreateAccountInput]{Input: input}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id string, input domain.UpdateAccountInput) (*domain.Account, error) {
	var out *domain.Account
	if err := c.do(ctx, opUpdateAccount, updateVars[domain.UpdateAccountInput]{ID: id, Input: input}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteAccount, idVars{ID: id}, nil)
}

func (c *Client) Transactions(ctx context.Context, query domain.TransactionQuery) (*domain.TransactionPage, error) {
	var out *domain.TransactionPage
	if err := c.do(ctx, opGetTransactions, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, opGetRecentTransactions, limitVars{Limit: limit}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, opGetCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	var out *domain.Transaction
	if err := c.do(ctx, opCreateTransaction, inputVars[domain.CreateTransactionInput]{Input: input}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	var out *domain.Transaction
	if err := c.do(ctx, opUpdateTransaction, updateVars[domain.UpdateTransactionInput]{ID: id, Input: input}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteTransaction, idVars{ID: id}, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out *domain.DashboardStats
	if err := c.do(ctx, opGetDashboardStats, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Analytics(ctx context.Context) (*domain.Analytics, error) {
	var out *domain.Analytics
	if err := c.do(ctx, opGetAnalytics, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TwoFactorStatus(ctx context.Context) (*domain.TwoFactorStatus, error) {
	var out *domain.TwoFactorStatus
	if err := c.do(ctx, opGetTwoFactorStatus, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	return c.do(ctx, opSendSetupCode, setupCodeVars{Type: string(factor), PhoneNumber: phoneNumber}, nil)
}

func (c *Client) EnableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return c.do(ctx, opEnableTwoFactor, factorCodeVars{Type: string(factor), Code: code}, nil)
}

func (c *Client) DisableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return c.do(ctx, opDisableTwoFactor, factorCodeVars{Type: string(factor), Code: code}, nil)
}

func (c *Client) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	var out []string
	if err := c.do(ctx, opRegenerateBackupCodes, passwordVars{Password: password}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LoginStep1(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	var out *domain.LoginStep1Result
	if err := c.do(ctx, opLoginStep1, credentialsVars{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LoginStep2(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	var out *domain.Session
	if err := c.do(ctx, opLoginStep2, secondFactorVars{PendingToken: pendingToken, Code: code, Type: string(factor)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BankConnections(ctx context.Context) ([]domain.BankConnection, error) {
	var out []domain.BankConnection
	if err := c.do(ctx, opGetBankConnections, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
