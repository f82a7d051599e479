package dto

import "github.com/shopspring/decimal"

// DashboardResponse is the headline block of the dashboard with the latest transactions.
type DashboardResponse struct {
	TotalBalance       decimal.Decimal       `json:"totalBalance"`
	MonthlyIncome      decimal.Decimal       `json:"monthlyIncome"`
	MonthlyExpenses    decimal.Decimal       `json:"monthlyExpenses"`
	AccountCount       int                   `json:"accountCount"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	Stale              bool                  `json:"stale,omitempty"`
}

// CategoryTotalResponse is the spending of one category.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// AnalyticsResponse is the spending breakdown.
type AnalyticsResponse struct {
	SpendingByCategory []CategoryTotalResponse `json:"spendingByCategory"`
	Stale              bool                    `json:"stale,omitempty"`
}
