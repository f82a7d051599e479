package handlers_test

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock StepUpAuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SubmitCredentials(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginStep1Result), args.Error(1)
}
func (m *MockAuthService) VerifySecondFactor(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	args := m.Called(ctx, pendingToken, code, factor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) Abandon(ctx context.Context) {
	m.Called(ctx)
}
func (m *MockAuthService) Logout(ctx context.Context) {
	m.Called(ctx)
}
func (m *MockAuthService) State() domain.AuthState {
	return m.Called().Get(0).(domain.AuthState)
}
func (m *MockAuthService) Pending() *domain.PendingAuthentication {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.PendingAuthentication)
}
func (m *MockAuthService) CurrentSession() (*domain.Session, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Session), args.Bool(1)
}

var _ portssvc.StepUpAuthSvcFacade = (*MockAuthService)(nil)

// --- Mock TwoFactorService ---
type MockTwoFactorService struct {
	mock.Mock
}

func (m *MockTwoFactorService) Status(ctx context.Context) cache.Result[*domain.TwoFactorStatus] {
	return m.Called(ctx).Get(0).(cache.Result[*domain.TwoFactorStatus])
}
func (m *MockTwoFactorService) RequestSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	return m.Called(ctx, factor, phoneNumber).Error(0)
}
func (m *MockTwoFactorService) EnableFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return m.Called(ctx, factor, code).Error(0)
}
func (m *MockTwoFactorService) DisableFactor(ctx context.Context, factor domain.FactorType, code string) error {
	return m.Called(ctx, factor, code).Error(0)
}
func (m *MockTwoFactorService) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portssvc.TwoFactorSvcFacade = (*MockTwoFactorService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context) cache.Result[[]domain.Account] {
	return m.Called(ctx).Get(0).(cache.Result[[]domain.Account])
}
func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) cache.Result[*domain.Account] {
	return m.Called(ctx, accountID).Get(0).(cache.Result[*domain.Account])
}
func (m *MockAccountService) TotalBalance(ctx context.Context) cache.Result[decimal.Decimal] {
	return m.Called(ctx).Get(0).(cache.Result[decimal.Decimal])
}
func (m *MockAccountService) Overview(ctx context.Context) (*domain.AccountsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountsOverview), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) view(args mock.Arguments) (*domain.TransactionView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionView), args.Error(1)
}
func (m *MockTransactionService) View(ctx context.Context) (*domain.TransactionView, error) {
	return m.view(m.Called(ctx))
}
func (m *MockTransactionService) UpdateFilters(ctx context.Context, patch domain.FilterPatch) (*domain.TransactionView, error) {
	return m.view(m.Called(ctx, patch))
}
func (m *MockTransactionService) ClearFilters(ctx context.Context) (*domain.TransactionView, error) {
	return m.view(m.Called(ctx))
}
func (m *MockTransactionService) SetSort(ctx context.Context, sort domain.TransactionSort) (*domain.TransactionView, error) {
	return m.view(m.Called(ctx, sort))
}
func (m *MockTransactionService) LoadMore(ctx context.Context, pageToken string) (*domain.TransactionView, error) {
	return m.view(m.Called(ctx, pageToken))
}
func (m *MockTransactionService) RecentTransactions(ctx context.Context, limit int) cache.Result[[]domain.Transaction] {
	return m.Called(ctx, limit).Get(0).(cache.Result[[]domain.Transaction])
}
func (m *MockTransactionService) Categories(ctx context.Context) cache.Result[[]domain.Category] {
	return m.Called(ctx).Get(0).(cache.Result[[]domain.Category])
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) cache.Result[*domain.DashboardStats] {
	return m.Called(ctx).Get(0).(cache.Result[*domain.DashboardStats])
}
func (m *MockDashboardService) Analytics(ctx context.Context) cache.Result[*domain.Analytics] {
	return m.Called(ctx).Get(0).(cache.Result[*domain.Analytics])
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)
