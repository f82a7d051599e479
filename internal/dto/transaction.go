package dto

import (
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to add a transaction.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"accountId" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category    string                 `json:"category" binding:"required,max=60"`
	Merchant    *string                `json:"merchant,omitempty"`
	Description *string                `json:"description,omitempty"`
	Date        time.Time              `json:"date" binding:"required"`
}

// UpdateTransactionRequest defines the editable fields of a transaction. Omitted fields are unchanged.
type UpdateTransactionRequest struct {
	AccountID   *string                 `json:"accountId,omitempty"`
	Amount      *decimal.Decimal        `json:"amount,omitempty"`
	Type        *domain.TransactionType `json:"type,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Merchant    *string                 `json:"merchant,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Date        *time.Time              `json:"date,omitempty"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID          string                 `json:"id"`
	AccountID   string                 `json:"accountId"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Merchant    *string                `json:"merchant,omitempty"`
	Description *string                `json:"description,omitempty"`
	Date        time.Time              `json:"date"`
}

// ListTransactionsParams defines the query parameters of the transaction listing.
// Any filter or sort parameter present is merged into the current view.
type ListTransactionsParams struct {
	Search    *string  `form:"search"`
	Category  *string  `form:"category"`
	Type      *string  `form:"type"`
	AccountID *string  `form:"accountId"`
	StartDate *string  `form:"startDate"`
	EndDate   *string  `form:"endDate"`
	MinAmount *string  `form:"minAmount"`
	MaxAmount *string  `form:"maxAmount"`
	Unset     []string `form:"unset"`
	Clear     bool     `form:"clear"`
	SortField *string  `form:"sortField"`
	SortOrder *string  `form:"sortOrder"`
}

// LoadMoreRequest asks for the next page of the current view.
type LoadMoreRequest struct {
	PageToken string `json:"pageToken"`
}

// TransactionViewResponse is the accumulated transaction listing.
type TransactionViewResponse struct {
	Items         []TransactionResponse    `json:"items"`
	Filters       domain.TransactionFilter `json:"filters"`
	Sort          domain.TransactionSort   `json:"sort"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
	HasNextPage   bool                     `json:"hasNextPage"`
	NextPageToken string                   `json:"nextPageToken,omitempty"`
	Loading       bool                     `json:"loading,omitempty"`
}

// RecentTransactionsParams defines the query parameters of the recent transactions list.
type RecentTransactionsParams struct {
	Limit int `form:"limit,default=5"`
}

// ListTransactionsResponse is a plain transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Stale        bool                  `json:"stale,omitempty"`
}

// CategoriesResponse lists the category names offered when entering a transaction.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Stale      bool     `json:"stale,omitempty"`
}
