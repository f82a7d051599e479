package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/core/services"
	"github.com/SscSPs/spendwise_client/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MutationInvalidationTestSuite struct {
	suite.Suite
	remote    *countingRemote
	store     *cache.Store
	container *portssvc.ServiceContainer
}

func (suite *MutationInvalidationTestSuite) SetupTest() {
	suite.remote = newCountingRemote()
	suite.store = newTestStore(suite.T())
	container, err := services.NewServiceContainer(&config.Config{PageSize: 20}, portsrepo.NewRemoteProvider(suite.remote), suite.store)
	suite.Require().NoError(err)
	suite.container = container
	suite.warmEveryQuery()
}

// warmEveryQuery loads one variant of every query kind.
func (suite *MutationInvalidationTestSuite) warmEveryQuery() {
	ctx := context.Background()
	c := suite.container
	_, err := c.Account.Overview(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(c.Account.GetAccount(ctx, "a1").Err)
	suite.Require().NoError(c.Account.TotalBalance(ctx).Err)
	suite.Require().NoError(c.Dashboard.Stats(ctx).Err)
	suite.Require().NoError(c.Dashboard.Analytics(ctx).Err)
	_, err = c.Transaction.View(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(c.Transaction.RecentTransactions(ctx, 0).Err)
	suite.Require().NoError(c.Transaction.Categories(ctx).Err)
	suite.Require().NoError(c.TwoFactor.Status(ctx).Err)

	for _, kind := range domain.AllQueryKinds() {
		suite.Require().Equal(1, suite.remote.count(kind), "warm-up of %s", kind)
	}
}

// assertRefetched checks that exactly the kinds in want were fetched once more since before.
func (suite *MutationInvalidationTestSuite) assertRefetched(before map[domain.QueryKind]int, want cache.QuerySet) {
	after := suite.remote.counts()
	for _, kind := range domain.AllQueryKinds() {
		expected := before[kind]
		if want.Has(kind) {
			expected++
		}
		suite.Equal(expected, after[kind], "fetches of %s", kind)
	}
}

func (suite *MutationInvalidationTestSuite) newTransactionInput() domain.CreateTransactionInput {
	return domain.CreateTransactionInput{
		AccountID: "a1",
		Amount:    decimal.NewFromInt(-40),
		Type:      domain.Expense,
		Category:  "Food & Dining",
		Date:      time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *MutationInvalidationTestSuite) TestCreateTransaction_RefreshesExactlyItsTargets() {
	before := suite.remote.counts()

	tx, err := suite.container.Transaction.CreateTransaction(context.Background(), suite.newTransactionInput())

	suite.Require().NoError(err)
	suite.Equal("t-new", tx.ID)
	suite.assertRefetched(before, cache.DefaultInvalidationGraph().Targets(domain.MutationCreateTransaction))
	suite.Equal(before[domain.QueryTotalBalance], suite.remote.count(domain.QueryTotalBalance))
	suite.Equal(before[domain.QueryCategories], suite.remote.count(domain.QueryCategories))
}

func (suite *MutationInvalidationTestSuite) TestUpdateAccount_RefreshesExactlyItsTargets() {
	before := suite.remote.counts()

	_, err := suite.container.Account.UpdateAccount(context.Background(), "a1", domain.UpdateAccountInput{Name: strPtr("Bills")})

	suite.Require().NoError(err)
	suite.assertRefetched(before, cache.NewQuerySet(
		domain.QueryAccounts, domain.QueryAccount, domain.QueryDashboardStats, domain.QueryTotalBalance))
}

func (suite *MutationInvalidationTestSuite) TestEnableFactor_RefreshesOnlyEnrollmentStatus() {
	before := suite.remote.counts()

	err := suite.container.TwoFactor.EnableFactor(context.Background(), domain.FactorEmail, "123456")

	suite.Require().NoError(err)
	suite.assertRefetched(before, cache.NewQuerySet(domain.QueryTwoFactorStatus))
}

func (suite *MutationInvalidationTestSuite) TestRejectedMutation_LeavesCacheUntouched() {
	suite.remote.rejectTx = errors.Join(apperrors.ErrValidation, errors.New("amount sign disagrees with type"))
	before := suite.remote.counts()

	_, err := suite.container.Transaction.CreateTransaction(context.Background(), suite.newTransactionInput())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertRefetched(before, 0)
	for _, key := range suite.store.Keys() {
		suite.False(suite.store.IsStale(key), "%s marked stale", key)
	}
}

func (suite *MutationInvalidationTestSuite) TestDeleteAccount_EvictsTheDeletedAccount() {
	err := suite.container.Account.DeleteAccount(context.Background(), "a1")

	suite.Require().NoError(err)
	for _, key := range suite.store.Keys() {
		suite.NotEqual(domain.QueryAccount, key.Kind, "deleted account is still cached as %s", key)
	}
	accounts := suite.container.Account.ListAccounts(context.Background())
	suite.Require().NoError(accounts.Err)
	suite.Len(accounts.Data, 1)
}

func (suite *MutationInvalidationTestSuite) TestCommittedMutation_RefreshFailure() {
	suite.remote.fail(domain.QueryAccounts, apperrors.ErrNetworkFailure)

	tx, err := suite.container.Transaction.CreateTransaction(context.Background(), suite.newTransactionInput())

	suite.Require().NotNil(tx, "the committed value is still returned")
	suite.ErrorIs(err, apperrors.ErrNetworkFailure)
	var committed *services.CommittedError
	suite.Require().ErrorAs(err, &committed)
	suite.Equal(domain.MutationCreateTransaction, committed.Mutation)

	accountsKey, _ := cache.NewKey(domain.QueryAccounts, nil)
	suite.True(suite.store.IsStale(accountsKey))
}

func TestMutationInvalidationTestSuite(t *testing.T) {
	suite.Run(t, new(MutationInvalidationTestSuite))
}
