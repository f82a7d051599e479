package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// countingRemote is a small RemoteDataService that counts how often each query is fetched.
type countingRemote struct {
	mu       sync.Mutex
	fetches  map[domain.QueryKind]int
	failing  map[domain.QueryKind]error
	accounts []domain.Account
	txs      []domain.Transaction
	rejectTx error
}

func newCountingRemote() *countingRemote {
	return &countingRemote{
		fetches: make(map[domain.QueryKind]int),
		failing: make(map[domain.QueryKind]error),
		accounts: []domain.Account{
			{ID: "a1", Type: domain.Checking, Name: "Everyday", Institution: "First Bank", Balance: decimal.NewFromInt(1200)},
			{ID: "a2", Type: domain.Credit, Name: "Card", Institution: "First Bank", Balance: decimal.NewFromInt(-300)},
		},
		txs: []domain.Transaction{
			{ID: "t1", AccountID: "a1", Amount: decimal.NewFromInt(-25), Type: domain.Expense, Category: "Shopping", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func (r *countingRemote) hit(kind domain.QueryKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[kind]++
	return r.failing[kind]
}

func (r *countingRemote) count(kind domain.QueryKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches[kind]
}

func (r *countingRemote) counts() map[domain.QueryKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.QueryKind]int, len(r.fetches))
	for k, v := range r.fetches {
		out[k] = v
	}
	return out
}

func (r *countingRemote) fail(kind domain.QueryKind, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing[kind] = err
}

func (r *countingRemote) Accounts(ctx context.Context) ([]domain.Account, error) {
	if err := r.hit(domain.QueryAccounts); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Account(nil), r.accounts...), nil
}

func (r *countingRemote) Account(ctx context.Context, id string) (*domain.Account, error) {
	if err := r.hit(domain.QueryAccount); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			acc := a
			return &acc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *countingRemote) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	if err := r.hit(domain.QueryTotalBalance); err != nil {
		return decimal.Zero, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, a := range r.accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}

func (r *countingRemote) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc := domain.Account{ID: "a-new", Type: input.Type, Name: input.Name, Institution: input.Institution, Balance: input.Balance}
	r.accounts = append(r.accounts, acc)
	return &acc, nil
}

func (r *countingRemote) UpdateAccount(ctx context.Context, id string, input domain.UpdateAccountInput) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts[i] = input.Apply(a)
			acc := r.accounts[i]
			return &acc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *countingRemote) DeleteAccount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *countingRemote) Transactions(ctx context.Context, query domain.TransactionQuery) (*domain.TransactionPage, error) {
	if err := r.hit(domain.QueryTransactions); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &domain.TransactionPage{}
	for _, t := range r.txs {
		page.Edges = append(page.Edges, domain.TransactionEdge{Node: t})
	}
	return page, nil
}

func (r *countingRemote) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if err := r.hit(domain.QueryRecentTransactions); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Transaction(nil), r.txs...), nil
}

func (r *countingRemote) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := r.hit(domain.QueryCategories); err != nil {
		return nil, err
	}
	return []domain.Category{{Name: "Shopping"}}, nil
}

func (r *countingRemote) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejectTx != nil {
		return nil, r.rejectTx
	}
	tx := domain.Transaction{ID: "t-new", AccountID: input.AccountID, Amount: input.Amount, Type: input.Type, Category: input.Category, Date: input.Date}
	r.txs = append(r.txs, tx)
	return &tx, nil
}

func (r *countingRemote) UpdateTransaction(ctx context.Context, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.txs {
		if t.ID == id {
			r.txs[i] = input.Apply(t)
			tx := r.txs[i]
			return &tx, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *countingRemote) DeleteTransaction(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.txs {
		if t.ID == id {
			r.txs = append(r.txs[:i], r.txs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *countingRemote) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if err := r.hit(domain.QueryDashboardStats); err != nil {
		return nil, err
	}
	return &domain.DashboardStats{AccountCount: 2}, nil
}

func (r *countingRemote) Analytics(ctx context.Context) (*domain.Analytics, error) {
	if err := r.hit(domain.QueryAnalytics); err != nil {
		return nil, err
	}
	return &domain.Analytics{}, nil
}

func (r *countingRemote) TwoFactorStatus(ctx context.Context) (*domain.TwoFactorStatus, error) {
	if err := r.hit(domain.QueryTwoFactorStatus); err != nil {
		return nil, err
	}
	return &domain.TwoFactorStatus{}, nil
}

func (r *countingRemote) SendSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	return nil
}

func (r *countingRemote) EnableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return nil
}

func (r *countingRemote) DisableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return nil
}

func (r *countingRemote) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	return []string{"AAAA-BBBB"}, nil
}

func (r *countingRemote) LoginStep1(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	return nil, apperrors.ErrInvalidCredentials
}

func (r *countingRemote) LoginStep2(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	return nil, apperrors.ErrTokenExpired
}

func (r *countingRemote) BankConnections(ctx context.Context) ([]domain.BankConnection, error) {
	if err := r.hit(domain.QueryBankConnections); err != nil {
		return nil, err
	}
	return nil, nil
}
