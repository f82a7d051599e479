package domain

import "github.com/shopspring/decimal"

// TransactionView is the accumulated, filtered transaction list shown on the transactions page.
type TransactionView struct {
	Items         []Transaction     `json:"items"`
	Filters       TransactionFilter `json:"filters"`
	Sort          TransactionSort   `json:"sort"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
	HasNextPage   bool              `json:"hasNextPage"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	Loading       bool              `json:"loading"`
}

// AccountStatus pairs an account with its reconciled connection state.
type AccountStatus struct {
	Account    Account
	Connection ConnectionState
}

// AccountGroup is the accounts of one type, in input order, with their summed balance.
type AccountGroup struct {
	Type     AccountType
	Label    string
	Accounts []AccountStatus
	Total    decimal.Decimal
}

// BalanceSummary splits balances into assets and liabilities. Liabilities are reported as a positive amount.
type BalanceSummary struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
}

// ConnectionConflict is an account claimed by more than one bank connection. The first claim wins.
type ConnectionConflict struct {
	AccountID     string   `json:"accountId"`
	ConnectionIDs []string `json:"connectionIds"`
}

// AccountsOverview is the accounts page: grouped accounts with connection states and a balance summary.
type AccountsOverview struct {
	Groups    []AccountGroup
	Summary   BalanceSummary
	Conflicts []ConnectionConflict
	Loading   bool
}
