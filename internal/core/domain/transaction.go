package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Transaction represents a single money movement on one account.
// The sign of Amount is expected to agree with Type, but that is a display concern and is not enforced here.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Merchant    *string         `json:"merchant,omitempty"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

// CreateTransactionInput holds the fields accepted when adding a transaction.
type CreateTransactionInput struct {
	AccountID   string          `json:"accountId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type" validate:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category    string          `json:"category" validate:"required,max=60"`
	Merchant    *string         `json:"merchant,omitempty" validate:"omitempty,max=120"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        time.Time       `json:"date" validate:"required"`
}

// UpdateTransactionInput holds the editable fields of a transaction. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	AccountID   *string          `json:"accountId,omitempty" validate:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1,max=60"`
	Merchant    *string          `json:"merchant,omitempty" validate:"omitempty,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time       `json:"date,omitempty"`
}

// Apply returns a copy of t with the update applied.
func (in UpdateTransactionInput) Apply(t Transaction) Transaction {
	if in.AccountID != nil {
		t.AccountID = *in.AccountID
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Merchant != nil {
		t.Merchant = in.Merchant
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	return t
}

// SortField selects the ordering key of a transaction listing.
type SortField string

const (
	SortByDate     SortField = "DATE"
	SortByAmount   SortField = "AMOUNT"
	SortByCategory SortField = "CATEGORY"
)

// SortOrder is the direction of a transaction listing.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// TransactionSort is the sort input of the Transactions query.
type TransactionSort struct {
	Field SortField `json:"field" validate:"omitempty,oneof=DATE AMOUNT CATEGORY"`
	Order SortOrder `json:"order" validate:"omitempty,oneof=ASC DESC"`
}

// DefaultTransactionSort is newest first.
var DefaultTransactionSort = TransactionSort{Field: SortByDate, Order: Descending}

// PageRequest is the explicit (page, limit) pair used by transaction listings. Pages start at 1.
type PageRequest struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// TransactionQuery carries the variables of the Transactions query.
type TransactionQuery struct {
	Filters    *TransactionFilter `json:"filters,omitempty"`
	Pagination PageRequest        `json:"pagination"`
	Sort       TransactionSort    `json:"sort"`
}

// PageInfo reports whether a listing has more pages.
type PageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
}

// TransactionEdge wraps one transaction node of a listing.
type TransactionEdge struct {
	Node Transaction `json:"node"`
}

// TransactionPage is one page of the Transactions query.
type TransactionPage struct {
	Edges    []TransactionEdge `json:"edges"`
	PageInfo PageInfo          `json:"pageInfo"`
}

// Nodes returns the transactions of the page in order.
func (p TransactionPage) Nodes() []Transaction {
	nodes := make([]Transaction, len(p.Edges))
	for i, e := range p.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// Category is a transaction category offered to the user.
type Category struct {
	Name string `json:"name"`
}

// SuggestedCategories is the closed set of categories suggested when entering a transaction.
var SuggestedCategories = []string{
	"Food & Dining",
	"Shopping",
	"Transportation",
	"Bills & Utilities",
	"Entertainment",
	"Healthcare",
	"Travel",
	"Education",
	"Personal Care",
	"Income",
	"Transfer",
	"Other",
}
