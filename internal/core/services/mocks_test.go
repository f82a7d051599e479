package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLoginRemote is a mock type for the LoginRemote interface
type MockLoginRemote struct {
	mock.Mock
}

func (m *MockLoginRemote) LoginStep1(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginStep1Result), args.Error(1)
}

func (m *MockLoginRemote) LoginStep2(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	args := m.Called(ctx, pendingToken, code, factor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// MockTwoFactorRemote is a mock type for the TwoFactorRemoteFacade interface
type MockTwoFactorRemote struct {
	mock.Mock
}

func (m *MockTwoFactorRemote) TwoFactorStatus(ctx context.Context) (*domain.TwoFactorStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TwoFactorStatus), args.Error(1)
}

func (m *MockTwoFactorRemote) SendSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	args := m.Called(ctx, factor, phoneNumber)
	return args.Error(0)
}

func (m *MockTwoFactorRemote) EnableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	args := m.Called(ctx, factor, code)
	return args.Error(0)
}

func (m *MockTwoFactorRemote) DisableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	args := m.Called(ctx, factor, code)
	return args.Error(0)
}

func (m *MockTwoFactorRemote) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockAccountRemote is a mock type for the AccountRemoteFacade interface
type MockAccountRemote struct {
	mock.Mock
}

func (m *MockAccountRemote) Accounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRemote) Account(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRemote) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRemote) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRemote) UpdateAccount(ctx context.Context, id string, input domain.UpdateAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRemote) DeleteAccount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRemote is a mock type for the TransactionRemoteFacade interface
type MockTransactionRemote struct {
	mock.Mock
}

func (m *MockTransactionRemote) Transactions(ctx context.Context, query domain.TransactionQuery) (*domain.TransactionPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockTransactionRemote) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockTransactionRemote) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) UpdateTransaction(ctx context.Context, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) DeleteTransaction(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBankConnectionReader is a mock type for the BankConnectionReader interface
type MockBankConnectionReader struct {
	mock.Mock
}

func (m *MockBankConnectionReader) BankConnections(ctx context.Context) ([]domain.BankConnection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankConnection), args.Error(1)
}

// MockDashboardReader is a mock type for the DashboardReader interface
type MockDashboardReader struct {
	mock.Mock
}

func (m *MockDashboardReader) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockDashboardReader) Analytics(ctx context.Context) (*domain.Analytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analytics), args.Error(1)
}

// newTestStore returns a running store that never revalidates fresh values in the background,
// so mock expectations only see the calls a test makes itself.
func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.NewStore(64, cache.WithRevalidateAfter(time.Hour))
	require.NoError(t, err)
	store.Init(context.Background())
	t.Cleanup(store.Dispose)
	return store
}

func strPtr(s string) *string {
	return &s
}
