package dto

import (
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to add an account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,max=100"`
	Type        domain.AccountType `json:"type" binding:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT"`
	Institution string             `json:"institution" binding:"required,max=100"`
	Balance     decimal.Decimal    `json:"balance"`
}

// UpdateAccountRequest defines the editable fields of an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string          `json:"name"`
	Institution *string          `json:"institution"`
	Balance     *decimal.Decimal `json:"balance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID          string             `json:"id"`
	Type        domain.AccountType `json:"type"`
	Name        string             `json:"name"`
	Institution string             `json:"institution"`
	Balance     decimal.Decimal    `json:"balance"`
	LastSynced  *time.Time         `json:"lastSynced,omitempty"`
	Manual      bool               `json:"manual"`
}

// ListAccountsResponse is the account list. Stale is set when the data could not be refreshed.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Stale    bool              `json:"stale,omitempty"`
}

// TotalBalanceResponse is the sum of every account balance.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Stale        bool            `json:"stale,omitempty"`
}

// ConnectionStateResponse is the reconciled bank-connection state of one account.
type ConnectionStateResponse struct {
	Kind         string `json:"kind"`
	ConnectionID string `json:"connectionId,omitempty"`
	Mask         string `json:"mask,omitempty"`
	OffersReauth bool   `json:"offersReauth"`
}

// AccountStatusResponse is an account with its connection state.
type AccountStatusResponse struct {
	AccountResponse
	Connection ConnectionStateResponse `json:"connection"`
}

// AccountGroupResponse is the accounts of one type.
type AccountGroupResponse struct {
	Type     domain.AccountType      `json:"type"`
	Label    string                  `json:"label"`
	Total    decimal.Decimal         `json:"total"`
	Accounts []AccountStatusResponse `json:"accounts"`
}

// AccountsOverviewResponse is the accounts page.
type AccountsOverviewResponse struct {
	Groups    []AccountGroupResponse      `json:"groups"`
	Summary   domain.BalanceSummary       `json:"summary"`
	Conflicts []domain.ConnectionConflict `json:"conflicts,omitempty"`
	Loading   bool                        `json:"loading,omitempty"`
}
