package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of a user account as shown on the dashboard.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
)

// AccountTypes lists every account type in display order.
var AccountTypes = []AccountType{Checking, Savings, Credit, Investment}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Credit, Investment:
		return true
	}
	return false
}

// Label returns the heading used when accounts are grouped by type.
func (t AccountType) Label() string {
	switch t {
	case Checking:
		return "Checking"
	case Savings:
		return "Savings"
	case Credit:
		return "Credit Cards"
	case Investment:
		return "Investments"
	}
	return string(t)
}

// Account represents a financial account owned by the signed-in user.
type Account struct {
	ID          string          `json:"id"`
	Type        AccountType     `json:"type"` // Immutable after creation
	Name        string          `json:"name"`
	Institution string          `json:"institution"`
	Balance     decimal.Decimal `json:"balance"`              // Negative for liabilities
	LastSynced  *time.Time      `json:"lastSynced,omitempty"` // Nil for manually entered accounts
}

// IsManual reports whether the account has never been synced from a bank connection.
func (a Account) IsManual() bool {
	return a.LastSynced == nil
}

// CreateAccountInput holds the fields accepted when adding an account.
type CreateAccountInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Type        AccountType     `json:"type" validate:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT"`
	Balance     decimal.Decimal `json:"balance"`
	Institution string          `json:"institution" validate:"required,max=100"`
}

// UpdateAccountInput holds the editable fields of an account.
// The account type is deliberately absent: it cannot change after creation.
type UpdateAccountInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Institution *string          `json:"institution,omitempty" validate:"omitempty,min=1,max=100"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (in UpdateAccountInput) IsEmpty() bool {
	return in.Name == nil && in.Institution == nil && in.Balance == nil
}

// Apply returns a copy of a with the update applied.
func (in UpdateAccountInput) Apply(a Account) Account {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Institution != nil {
		a.Institution = *in.Institution
	}
	if in.Balance != nil {
		a.Balance = *in.Balance
	}
	return a
}

// ParseAccountType converts a raw string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}
