package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter is the predicate of a transaction view. Every nil (or empty Search) field is unset
// and imposes no constraint. Date and amount bounds are inclusive.
type TransactionFilter struct {
	Search    string           `json:"search,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Type      *TransactionType `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	AccountID *string          `json:"accountId,omitempty"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f TransactionFilter) IsEmpty() bool {
	return f.Search == "" && f.Category == nil && f.Type == nil && f.AccountID == nil &&
		f.StartDate == nil && f.EndDate == nil && f.MinAmount == nil && f.MaxAmount == nil
}

// Matches reports whether t passes every set predicate. Predicates are checked in the order
// search, category, type, account, start date, end date, min amount, max amount.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Search != "" && !matchesSearch(t, strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

// Filter returns the transactions of txs that match f, preserving order.
func (f TransactionFilter) Filter(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// any one of merchant, description or category containing the needle is enough
func matchesSearch(t Transaction, needle string) bool {
	if t.Merchant != nil && strings.Contains(strings.ToLower(*t.Merchant), needle) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), needle)
}

// Equal reports whether f and o set the same predicates to the same values.
func (f TransactionFilter) Equal(o TransactionFilter) bool {
	return f.Search == o.Search &&
		equalPtr(f.Category, o.Category, func(a, b string) bool { return a == b }) &&
		equalPtr(f.Type, o.Type, func(a, b TransactionType) bool { return a == b }) &&
		equalPtr(f.AccountID, o.AccountID, func(a, b string) bool { return a == b }) &&
		equalPtr(f.StartDate, o.StartDate, time.Time.Equal) &&
		equalPtr(f.EndDate, o.EndDate, time.Time.Equal) &&
		equalPtr(f.MinAmount, o.MinAmount, decimal.Decimal.Equal) &&
		equalPtr(f.MaxAmount, o.MaxAmount, decimal.Decimal.Equal)
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

// FilterField names one predicate of a TransactionFilter.
type FilterField string

const (
	FilterSearch    FilterField = "search"
	FilterCategory  FilterField = "category"
	FilterType      FilterField = "type"
	FilterAccountID FilterField = "accountId"
	FilterStartDate FilterField = "startDate"
	FilterEndDate   FilterField = "endDate"
	FilterMinAmount FilterField = "minAmount"
	FilterMaxAmount FilterField = "maxAmount"
)

// FilterPatch is a partial change to a TransactionFilter. Nil fields are left as they are, fields listed
// in Unset are cleared, and an empty search, category or account is the same as unsetting it.
type FilterPatch struct {
	Search    *string          `json:"search,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Type      *TransactionType `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	AccountID *string          `json:"accountId,omitempty"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	Unset     []FilterField    `json:"unset,omitempty"`
}

// Apply returns f with the patch merged in.
func (p FilterPatch) Apply(f TransactionFilter) (TransactionFilter, error) {
	for _, field := range p.Unset {
		switch field {
		case FilterSearch:
			f.Search = ""
		case FilterCategory:
			f.Category = nil
		case FilterType:
			f.Type = nil
		case FilterAccountID:
			f.AccountID = nil
		case FilterStartDate:
			f.StartDate = nil
		case FilterEndDate:
			f.EndDate = nil
		case FilterMinAmount:
			f.MinAmount = nil
		case FilterMaxAmount:
			f.MaxAmount = nil
		default:
			return f, fmt.Errorf("unknown filter field %q", field)
		}
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Category != nil {
		f.Category = nonEmpty(*p.Category)
	}
	if p.Type != nil {
		t := *p.Type
		f.Type = &t
	}
	if p.AccountID != nil {
		f.AccountID = nonEmpty(*p.AccountID)
	}
	if p.StartDate != nil {
		d := *p.StartDate
		f.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		f.EndDate = &d
	}
	if p.MinAmount != nil {
		a := *p.MinAmount
		f.MinAmount = &a
	}
	if p.MaxAmount != nil {
		a := *p.MaxAmount
		f.MaxAmount = &a
	}
	return f, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
