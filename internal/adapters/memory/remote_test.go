package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/spendwise_client/internal/adapters/memory"
	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "memory-remote-test-secret"

type RemoteTestSuite struct {
	suite.Suite
	ctx    context.Context
	now    time.Time
	codes  int
	remote *memory.Remote
}

func (s *RemoteTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	s.codes = 0

	remote, err := memory.NewRemote(testSecret, "spendwise-test",
		memory.WithClock(func() time.Time { return s.now }),
		memory.WithPendingTTL(5*time.Minute),
		memory.WithCodeGenerator(func() string {
			s.codes++
			return fmt.Sprintf("%06d", 100000+s.codes)
		}),
	)
	s.Require().NoError(err)
	s.remote = remote
}

func TestRemoteTestSuite(t *testing.T) {
	suite.Run(t, new(RemoteTestSuite))
}

func (s *RemoteTestSuite) login() *domain.PendingAuthentication {
	res, err := s.remote.LoginStep1(s.ctx, memory.DemoEmail, memory.DemoPassword)
	s.Require().NoError(err)
	s.Require().NotNil(res.Pending)
	s.Require().Nil(res.Session)
	return res.Pending
}

func (s *RemoteTestSuite) TestLoginStep1_RejectsBadCredentials() {
	_, err := s.remote.LoginStep1(s.ctx, memory.DemoEmail, "wrong")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.remote.LoginStep1(s.ctx, "nobody@example.com", memory.DemoPassword)
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *RemoteTestSuite) TestLogin_EmailFactor() {
	pending := s.login()
	s.Equal([]domain.FactorType{domain.FactorEmail}, pending.AvailableFactors)
	s.Equal(s.now, pending.IssuedAt)

	outbox := s.remote.Outbox()
	s.Require().Len(outbox, 1)
	s.Equal(memory.DemoEmail, outbox[0].Destination)
	code := outbox[0].Code

	_, err := s.remote.LoginStep2(s.ctx, pending.Token, "000000", domain.FactorEmail)
	s.ErrorIs(err, apperrors.ErrInvalidCode)

	session, err := s.remote.LoginStep2(s.ctx, pending.Token, code, domain.FactorEmail)
	s.Require().NoError(err)
	s.NotEmpty(session.AccessToken)

	claims, err := utils.ParseAndValidateJWT(session.AccessToken, testSecret)
	s.Require().NoError(err)
	s.Equal(session.UserID, claims.Subject)

	_, err = s.remote.LoginStep2(s.ctx, pending.Token, code, domain.FactorEmail)
	s.ErrorIs(err, apperrors.ErrTokenExpired, "pending tokens are single-use")
}

func (s *RemoteTestSuite) TestLoginStep2_PendingTokenExpires() {
	pending := s.login()
	code, ok := s.remote.LastCode(domain.FactorEmail)
	s.Require().True(ok)

	s.now = s.now.Add(5 * time.Minute)
	_, err := s.remote.LoginStep2(s.ctx, pending.Token, code, domain.FactorEmail)
	s.ErrorIs(err, apperrors.ErrTokenExpired)
}

func (s *RemoteTestSuite) TestLoginStep2_FactorMismatch() {
	pending := s.login()
	_, err := s.remote.LoginStep2(s.ctx, pending.Token, "123456", domain.FactorSMS)
	s.ErrorIs(err, apperrors.ErrFactorMismatch)
}

func (s *RemoteTestSuite) TestEnrollSMSAndUseBackupCode() {
	phone := "+14155550199"
	s.Require().ErrorIs(s.remote.SendSetupCode(s.ctx, domain.FactorSMS, nil), apperrors.ErrValidation)
	s.Require().NoError(s.remote.SendSetupCode(s.ctx, domain.FactorSMS, &phone))

	s.ErrorIs(s.remote.EnableTwoFactor(s.ctx, domain.FactorSMS, "999999"), apperrors.ErrInvalidCode)

	code, ok := s.remote.LastCode(domain.FactorSMS)
	s.Require().True(ok)
	s.Require().NoError(s.remote.EnableTwoFactor(s.ctx, domain.FactorSMS, code))

	status, err := s.remote.TwoFactorStatus(s.ctx)
	s.Require().NoError(err)
	s.True(status.SMSEnabled)
	s.True(status.PhoneVerified)
	s.Require().NotNil(status.PhoneNumber)
	s.Equal(phone, *status.PhoneNumber)
	s.Equal(8, status.BackupCodesRemaining)

	_, err = s.remote.RegenerateBackupCodes(s.ctx, "wrong")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	backup, err := s.remote.RegenerateBackupCodes(s.ctx, memory.DemoPassword)
	s.Require().NoError(err)
	s.Len(backup, 8)

	pending := s.login()
	s.Equal([]domain.FactorType{domain.FactorEmail, domain.FactorSMS, domain.FactorBackupCode}, pending.AvailableFactors)
	_, err = s.remote.LoginStep2(s.ctx, pending.Token, backup[0], domain.FactorBackupCode)
	s.Require().NoError(err)

	pending = s.login()
	_, err = s.remote.LoginStep2(s.ctx, pending.Token, backup[0], domain.FactorBackupCode)
	s.ErrorIs(err, apperrors.ErrInvalidCode, "backup codes are single-use")

	status, err = s.remote.TwoFactorStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(7, status.BackupCodesRemaining)
}

func (s *RemoteTestSuite) TestDisableTwoFactor_WithSetupCode() {
	s.Require().NoError(s.remote.SendSetupCode(s.ctx, domain.FactorEmail, nil))
	code, _ := s.remote.LastCode(domain.FactorEmail)

	s.ErrorIs(s.remote.DisableTwoFactor(s.ctx, domain.FactorEmail, "nope"), apperrors.ErrInvalidCode)
	s.Require().NoError(s.remote.DisableTwoFactor(s.ctx, domain.FactorEmail, code))

	res, err := s.remote.LoginStep1(s.ctx, memory.DemoEmail, memory.DemoPassword)
	s.Require().NoError(err)
	s.Nil(res.Pending)
	s.Require().NotNil(res.Session, "no factor left means a direct session")
}

func (s *RemoteTestSuite) TestTransactions_PagingFilteringSorting() {
	var all []string
	for page := 1; ; page++ {
		res, err := s.remote.Transactions(s.ctx, domain.TransactionQuery{
			Pagination: domain.PageRequest{Page: page, Limit: 10},
			Sort:       domain.DefaultTransactionSort,
		})
		s.Require().NoError(err)
		for _, n := range res.Nodes() {
			all = append(all, n.ID)
		}
		if !res.PageInfo.HasNextPage {
			s.Equal(3, page)
			break
		}
	}
	s.Len(all, 26)
	s.Equal("txn-001", all[0])

	travel := "Travel"
	res, err := s.remote.Transactions(s.ctx, domain.TransactionQuery{
		Filters:    &domain.TransactionFilter{Category: &travel},
		Pagination: domain.PageRequest{Page: 1, Limit: 10},
	})
	s.Require().NoError(err)
	s.Len(res.Edges, 2)
	s.False(res.PageInfo.HasNextPage)

	res, err = s.remote.Transactions(s.ctx, domain.TransactionQuery{
		Pagination: domain.PageRequest{Page: 1, Limit: 2},
		Sort:       domain.TransactionSort{Field: domain.SortByAmount, Order: domain.Ascending},
	})
	s.Require().NoError(err)
	s.Equal([]string{"txn-004", "txn-020"}, []string{res.Edges[0].Node.ID, res.Edges[1].Node.ID})

	_, err = s.remote.Transactions(s.ctx, domain.TransactionQuery{Pagination: domain.PageRequest{Page: 0, Limit: 10}})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RemoteTestSuite) TestTransactionMutations_AdjustBalances() {
	before, err := s.remote.Account(s.ctx, "acc-checking")
	s.Require().NoError(err)

	amount := decimal.RequireFromString("-25.00")
	created, err := s.remote.CreateTransaction(s.ctx, domain.CreateTransactionInput{
		AccountID: "acc-checking", Amount: amount, Type: domain.Expense, Category: "Other", Date: s.now,
	})
	s.Require().NoError(err)

	after, err := s.remote.Account(s.ctx, "acc-checking")
	s.Require().NoError(err)
	s.True(before.Balance.Add(amount).Equal(after.Balance))

	s.Require().NoError(s.remote.DeleteTransaction(s.ctx, created.ID))
	restored, err := s.remote.Account(s.ctx, "acc-checking")
	s.Require().NoError(err)
	s.True(before.Balance.Equal(restored.Balance))

	s.ErrorIs(s.remote.DeleteTransaction(s.ctx, created.ID), apperrors.ErrNotFound)

	_, err = s.remote.CreateTransaction(s.ctx, domain.CreateTransactionInput{
		AccountID: "missing", Amount: amount, Type: domain.Expense, Category: "Other", Date: s.now,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RemoteTestSuite) TestDeleteAccount_RemovesItsTransactions() {
	s.Require().NoError(s.remote.DeleteAccount(s.ctx, "acc-cash"))

	_, err := s.remote.Account(s.ctx, "acc-cash")
	s.ErrorIs(err, apperrors.ErrNotFound)

	cash := "acc-cash"
	res, err := s.remote.Transactions(s.ctx, domain.TransactionQuery{
		Filters:    &domain.TransactionFilter{AccountID: &cash},
		Pagination: domain.PageRequest{Page: 1, Limit: 10},
	})
	s.Require().NoError(err)
	s.Empty(res.Edges)

	s.ErrorIs(s.remote.DeleteAccount(s.ctx, "acc-cash"), apperrors.ErrNotFound)
}

func (s *RemoteTestSuite) TestReporting() {
	total, err := s.remote.TotalBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal("54785.55", total.StringFixed(2))

	stats, err := s.remote.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, stats.AccountCount)
	s.Equal("4200.00", stats.MonthlyIncome.StringFixed(2))
	s.Equal("2926.69", stats.MonthlyExpenses.StringFixed(2))

	analytics, err := s.remote.Analytics(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(analytics.SpendingByCategory)
	s.Equal("Bills & Utilities", analytics.SpendingByCategory[0].Category)
	s.Equal("3020.40", analytics.SpendingByCategory[0].Total.StringFixed(2))

	categories, err := s.remote.Categories(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 12)
	s.Equal("Bills & Utilities", categories[0].Name)

	recent, err := s.remote.RecentTransactions(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(recent, 3)
	s.Equal("txn-001", recent[0].ID)
}

func TestBankConnections_AreCopies(t *testing.T) {
	remote, err := memory.NewRemote(testSecret, "spendwise-test")
	require.NoError(t, err)

	conns, err := remote.BankConnections(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 3)
	conns[0].Accounts[0].IsLinked = false

	again, err := remote.BankConnections(context.Background())
	require.NoError(t, err)
	assert.True(t, again[0].Accounts[0].IsLinked)
	assert.Equal(t, domain.ConnectionError, again[1].Status)
}
