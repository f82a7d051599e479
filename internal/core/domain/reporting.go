package domain

import "github.com/shopspring/decimal"

// DashboardStats is the headline block of the dashboard.
type DashboardStats struct {
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	AccountCount    int             `json:"accountCount"`
}

// CategoryTotal is the absolute spending of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Analytics is the spending breakdown shown on the analytics page.
type Analytics struct {
	SpendingByCategory []CategoryTotal `json:"spendingByCategory"`
}
