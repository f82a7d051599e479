package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type seedTx struct {
	account  string
	amount   string
	txType   domain.TransactionType
	category string
	merchant string
	daysAgo  int
}

var seedTransactions = []seedTx{
	{"acc-checking", "4200.00", domain.Income, "Income", "Acme Corp Payroll", 1},
	{"acc-checking", "-86.45", domain.Expense, "Food & Dining", "Green Grocer", 2},
	{"acc-credit", "-42.10", domain.Expense, "Transportation", "City Rideshare", 3},
	{"acc-checking", "-1450.00", domain.Expense, "Bills & Utilities", "Parkside Apartments", 4},
	{"acc-credit", "-129.99", domain.Expense, "Shopping", "Outfitters", 5},
	{"acc-credit", "-18.50", domain.Expense, "Entertainment", "Streamly", 6},
	{"acc-checking", "-500.00", domain.Transfer, "Transfer", "To High-Yield Savings", 7},
	{"acc-savings", "500.00", domain.Transfer, "Transfer", "From Everyday Checking", 7},
	{"acc-credit", "-612.30", domain.Expense, "Travel", "Skyway Airlines", 9},
	{"acc-credit", "-214.00", domain.Expense, "Travel", "Harbor Hotel", 10},
	{"acc-checking", "-64.20", domain.Expense, "Healthcare", "Corner Pharmacy", 12},
	{"acc-checking", "-38.75", domain.Expense, "Food & Dining", "Noodle House", 13},
	{"acc-credit", "-95.00", domain.Expense, "Education", "Online Courses", 15},
	{"acc-checking", "-120.40", domain.Expense, "Bills & Utilities", "City Power", 16},
	{"acc-checking", "-55.00", domain.Expense, "Personal Care", "Barber Shop", 18},
	{"acc-savings", "24.18", domain.Income, "Income", "Interest", 20},
	{"acc-credit", "-73.60", domain.Expense, "Food & Dining", "Green Grocer", 21},
	{"acc-credit", "-48.00", domain.Expense, "Transportation", "Fuel Stop", 24},
	{"acc-checking", "4200.00", domain.Income, "Income", "Acme Corp Payroll", 31},
	{"acc-checking", "-1450.00", domain.Expense, "Bills & Utilities", "Parkside Apartments", 34},
	{"acc-credit", "-230.15", domain.Expense, "Shopping", "Home Goods", 37},
	{"acc-credit", "-61.90", domain.Expense, "Entertainment", "Cinema Plaza", 40},
	{"acc-checking", "-92.30", domain.Expense, "Food & Dining", "Green Grocer", 44},
	{"acc-investment", "-1000.00", domain.Transfer, "Transfer", "Index Fund Purchase", 45},
	{"acc-cash", "-12.00", domain.Expense, "Food & Dining", "Farmers Market", 48},
	{"acc-checking", "-35.00", domain.Expense, "Other", "Post Office", 52},
}

func (r *Remote) seed(now time.Time) {
	synced := now.Add(-2 * time.Hour)
	r.accounts = []domain.Account{
		{ID: "acc-checking", Type: domain.Checking, Name: "Everyday Checking", Institution: "First Harbor Bank", Balance: decimal.RequireFromString("5240.75"), LastSynced: &synced},
		{ID: "acc-savings", Type: domain.Savings, Name: "High-Yield Savings", Institution: "First Harbor Bank", Balance: decimal.RequireFromString("18500.00"), LastSynced: &synced},
		{ID: "acc-credit", Type: domain.Credit, Name: "Rewards Card", Institution: "Summit Card Services", Balance: decimal.RequireFromString("-1845.20"), LastSynced: &synced},
		{ID: "acc-investment", Type: domain.Investment, Name: "Brokerage", Institution: "Northwind Investing", Balance: decimal.RequireFromString("32750.00"), LastSynced: &synced},
		{ID: "acc-cash", Type: domain.Checking, Name: "Cash Wallet", Institution: "Manual", Balance: decimal.RequireFromString("140.00")},
	}

	r.txs = make([]domain.Transaction, 0, len(seedTransactions))
	for i, s := range seedTransactions {
		merchant := s.merchant
		r.txs = append(r.txs, domain.Transaction{
			ID:        fmt.Sprintf("txn-%03d", i+1),
			AccountID: s.account,
			Amount:    decimal.RequireFromString(s.amount),
			Type:      s.txType,
			Category:  s.category,
			Merchant:  &merchant,
			Date:      now.AddDate(0, 0, -s.daysAgo).Truncate(time.Hour),
		})
	}

	r.connections = []domain.BankConnection{
		{
			ID: "conn-harbor", Status: domain.ConnectionActive, InstitutionName: "First Harbor Bank",
			Accounts: []domain.LinkedAccount{
				{ID: "acc-checking", Name: "Everyday Checking", Mask: "4821", IsLinked: true},
				{ID: "acc-savings", Name: "High-Yield Savings", Mask: "9034", IsLinked: true},
			},
		},
		{
			ID: "conn-summit", Status: domain.ConnectionError, InstitutionName: "Summit Card Services",
			Accounts: []domain.LinkedAccount{
				{ID: "acc-credit", Name: "Rewards Card", Mask: "1177", IsLinked: true},
			},
		},
		{
			ID: "conn-northwind", Status: domain.ConnectionPendingDisconnect, InstitutionName: "Northwind Investing",
			Accounts: []domain.LinkedAccount{
				{ID: "acc-investment", Name: "Brokerage", Mask: "5560", IsLinked: true},
				{ID: "ext-retirement", Name: "Retirement", Mask: "7712", IsLinked: false},
			},
		},
	}
}

func (r *Remote) findAccountLocked(id string) int {
	return slices.IndexFunc(r.accounts, func(a domain.Account) bool { return a.ID == id })
}

func (r *Remote) findTransactionLocked(id string) int {
	return slices.IndexFunc(r.txs, func(t domain.Transaction) bool { return t.ID == id })
}

func (r *Remote) Accounts(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.accounts), nil
}

func (r *Remote) Account(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.findAccountLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
	}
	a := r.accounts[i]
	return &a, nil
}

func (r *Remote) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalLocked(), nil
}

func (r *Remote) totalLocked() decimal.Decimal {
	return accounting.TotalBalance(r.accounts)
}

func (r *Remote) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, input.Type)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a := domain.Account{
		ID:          uuid.NewString(),
		Type:        input.Type,
		Name:        input.Name,
		Institution: input.Institution,
		Balance:     input.Balance,
	}
	r.accounts = append(r.accounts, a)
	return &a, nil
}

func (r *Remote) UpdateAccount(ctx context.Context, id string, input domain.UpdateAccountInput) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.findAccountLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
	}
	r.accounts[i] = input.Apply(r.accounts[i])
	a := r.accounts[i]
	return &a, nil
}

// DeleteAccount removes the account together with its transactions.
func (r *Remote) DeleteAccount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.findAccountLocked(id)
	if i < 0 {
		return fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
	}
	r.accounts = slices.Delete(r.accounts, i, i+1)
	r.txs = slices.DeleteFunc(r.txs, func(t domain.Transaction) bool { return t.AccountID == id })
	return nil
}

func compareTransactions(sort domain.TransactionSort) func(a, b domain.Transaction) int {
	field := cmp.Or(sort.Field, domain.SortByDate)
	order := cmp.Or(sort.Order, domain.Descending)
	return func(a, b domain.Transaction) int {
		var c int
		switch field {
		case domain.SortByAmount:
			c = a.Amount.Cmp(b.Amount)
		case domain.SortByCategory:
			c = cmp.Compare(a.Category, b.Category)
		default:
			c = a.Date.Compare(b.Date)
		}
		if order == domain.Descending {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	}
}

// Transactions filters, sorts and pages the transactions the way the real service does.
func (r *Remote) Transactions(ctx context.Context, query domain.TransactionQuery) (*domain.TransactionPage, error) {
	page, limit := query.Pagination.Page, query.Pagination.Limit
	if page < 1 || limit < 1 || limit > 100 {
		return nil, fmt.Errorf("%w: invalid pagination page=%d limit=%d", apperrors.ErrValidation, page, limit)
	}

	r.mu.Lock()
	matched := slices.Clone(r.txs)
	r.mu.Unlock()

	if query.Filters != nil {
		matched = query.Filters.Filter(matched)
	}
	slices.SortStableFunc(matched, compareTransactions(query.Sort))

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	out := &domain.TransactionPage{
		Edges:    make([]domain.TransactionEdge, 0, end-start),
		PageInfo: domain.PageInfo{HasNextPage: end < len(matched)},
	}
	for _, t := range matched[start:end] {
		out.Edges = append(out.Edges, domain.TransactionEdge{Node: t})
	}
	return out, nil
}

func (r *Remote) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	r.mu.Lock()
	recent := slices.Clone(r.txs)
	r.mu.Unlock()

	slices.SortStableFunc(recent, compareTransactions(domain.DefaultTransactionSort))
	return recent[:min(limit, len(recent))], nil
}

// Categories returns the distinct categories in use, sorted by name.
func (r *Remote) Categories(ctx context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.txs))
	for _, t := range r.txs {
		names = append(names, t.Category)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	out := make([]domain.Category, len(names))
	for i, n := range names {
		out[i] = domain.Category{Name: n}
	}
	return out, nil
}

func (r *Remote) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, input.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findAccountLocked(input.AccountID) < 0 {
		return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, input.AccountID)
	}
	t := domain.Transaction{
		ID:          uuid.NewString(),
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Merchant:    input.Merchant,
		Description: input.Description,
		Date:        input.Date,
	}
	r.txs = append(r.txs, t)
	r.adjustBalanceLocked(t.AccountID, t.Amount)
	return &t, nil
}

func (r *Remote) UpdateTransaction(ctx context.Context, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.findTransactionLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("transaction %s: %w", id, apperrors.ErrNotFound)
	}
	if input.AccountID != nil && r.findAccountLocked(*input.AccountID) < 0 {
		return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, *input.AccountID)
	}
	old := r.txs[i]
	updated := input.Apply(old)
	r.adjustBalanceLocked(old.AccountID, old.Amount.Neg())
	r.adjustBalanceLocked(updated.AccountID, updated.Amount)
	r.txs[i] = updated
	return &updated, nil
}

func (r *Remote) DeleteTransaction(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.findTransactionLocked(id)
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, apperrors.ErrNotFound)
	}
	r.adjustBalanceLocked(r.txs[i].AccountID, r.txs[i].Amount.Neg())
	r.txs = slices.Delete(r.txs, i, i+1)
	return nil
}

func (r *Remote) adjustBalanceLocked(accountID string, delta decimal.Decimal) {
	if i := r.findAccountLocked(accountID); i >= 0 {
		r.accounts[i].Balance = r.accounts[i].Balance.Add(delta)
	}
}

// DashboardStats sums income and expenses of the current calendar month.
func (r *Remote) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	income, expenses := accounting.CashFlowSince(r.txs, accounting.MonthStart(r.now()))
	return &domain.DashboardStats{
		TotalBalance:    r.totalLocked(),
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		AccountCount:    len(r.accounts),
	}, nil
}

// Analytics reports expense totals per category, largest first.
func (r *Remote) Analytics(ctx context.Context) (*domain.Analytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &domain.Analytics{SpendingByCategory: accounting.SpendingByCategory(r.txs)}, nil
}

func (r *Remote) BankConnections(ctx context.Context) ([]domain.BankConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.BankConnection, len(r.connections))
	for i, c := range r.connections {
		c.Accounts = slices.Clone(c.Accounts)
		out[i] = c
	}
	return out, nil
}
