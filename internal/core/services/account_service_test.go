package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRemote      *MockAccountRemote
	mockConnections *MockBankConnectionReader
	store           *cache.Store
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRemote = new(MockAccountRemote)
	suite.mockConnections = new(MockBankConnectionReader)
	suite.store = newTestStore(suite.T())
	mutations := services.NewMutationRunner(suite.store, cache.DefaultInvalidationGraph())
	suite.service = services.NewAccountService(suite.mockRemote, suite.mockConnections, suite.store, mutations)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestOverview_ReconcilesConnections() {
	ctx := context.Background()
	accounts := []domain.Account{
		{ID: "chk", Type: domain.Checking, Name: "Everyday", Balance: decimal.NewFromInt(900)},
		{ID: "card", Type: domain.Credit, Name: "Card", Balance: decimal.NewFromInt(-100)},
	}
	connections := []domain.BankConnection{
		{ID: "conn-1", Status: domain.ConnectionError, Accounts: []domain.LinkedAccount{{ID: "card", Mask: "4242", IsLinked: true}}},
	}
	suite.mockRemote.On("Accounts", mock.Anything).Return(accounts, nil).Once()
	suite.mockConnections.On("BankConnections", mock.Anything).Return(connections, nil).Once()

	overview, err := suite.service.Overview(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(overview.Groups, 2)
	suite.Equal(domain.Manual{}, overview.Groups[0].Accounts[0].Connection)
	card := overview.Groups[1].Accounts[0]
	suite.Equal("card", card.Account.ID)
	suite.True(domain.OffersReauth(card.Connection))
	suite.True(decimal.NewFromInt(800).Equal(overview.Summary.NetWorth))
	suite.False(overview.Loading)
	suite.mockRemote.AssertExpectations(suite.T())
	suite.mockConnections.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestOverview_ConnectionFailureShowsManual() {
	ctx := context.Background()
	accounts := []domain.Account{{ID: "chk", Type: domain.Checking, Balance: decimal.NewFromInt(10)}}
	suite.mockRemote.On("Accounts", mock.Anything).Return(accounts, nil).Once()
	suite.mockConnections.On("BankConnections", mock.Anything).Return(nil, apperrors.ErrNetworkFailure).Once()

	overview, err := suite.service.Overview(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.Manual{}, overview.Groups[0].Accounts[0].Connection)
}

func (suite *AccountServiceTestSuite) TestOverview_AccountsFailure() {
	suite.mockRemote.On("Accounts", mock.Anything).Return(nil, apperrors.ErrNetworkFailure).Once()

	overview, err := suite.service.Overview(context.Background())

	suite.ErrorIs(err, apperrors.ErrNetworkFailure)
	suite.Nil(overview)
	suite.mockConnections.AssertNotCalled(suite.T(), "BankConnections", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	suite.mockRemote.On("Account", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	res := suite.service.GetAccount(context.Background(), "missing")

	suite.ErrorIs(res.Err, apperrors.ErrNotFound)
	suite.Nil(res.Data)
}

func (suite *AccountServiceTestSuite) TestGetAccount_EmptyID() {
	res := suite.service.GetAccount(context.Background(), "")

	suite.ErrorIs(res.Err, apperrors.ErrValidation)
	suite.mockRemote.AssertNotCalled(suite.T(), "Account", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	input := domain.CreateAccountInput{
		Name:        "Rainy Day",
		Type:        domain.Savings,
		Balance:     decimal.NewFromInt(500),
		Institution: "First Bank",
	}
	created := &domain.Account{ID: "sav", Type: input.Type, Name: input.Name, Institution: input.Institution, Balance: input.Balance}
	suite.mockRemote.On("CreateAccount", mock.Anything, input).Return(created, nil).Once()

	account, err := suite.service.CreateAccount(ctx, input)

	suite.Require().NoError(err)
	suite.Equal("sav", account.ID)
	suite.mockRemote.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	input := domain.CreateAccountInput{Name: "Odd", Type: "LOAN", Institution: "First Bank"}

	account, err := suite.service.CreateAccount(context.Background(), input)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockRemote.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NothingToUpdate() {
	_, err := suite.service.UpdateAccount(context.Background(), "chk", domain.UpdateAccountInput{})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RemoteError() {
	suite.mockRemote.On("DeleteAccount", mock.Anything, "chk").Return(assert.AnError).Once()

	err := suite.service.DeleteAccount(context.Background(), "chk")

	suite.ErrorIs(err, assert.AnError)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
