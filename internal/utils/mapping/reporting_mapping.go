package mapping

import (
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/dto"
)

// ToDashboardResponse combines the dashboard stats with the latest transactions
func ToDashboardResponse(stats *domain.DashboardStats, recent []domain.Transaction, stale bool) dto.DashboardResponse {
	return dto.DashboardResponse{
		TotalBalance:       stats.TotalBalance,
		MonthlyIncome:      stats.MonthlyIncome,
		MonthlyExpenses:    stats.MonthlyExpenses,
		AccountCount:       stats.AccountCount,
		RecentTransactions: ToTransactionResponses(recent),
		Stale:              stale,
	}
}

// ToAnalyticsResponse converts the spending breakdown
func ToAnalyticsResponse(a *domain.Analytics, stale bool) dto.AnalyticsResponse {
	res := dto.AnalyticsResponse{
		SpendingByCategory: make([]dto.CategoryTotalResponse, len(a.SpendingByCategory)),
		Stale:              stale,
	}
	for i, ct := range a.SpendingByCategory {
		res.SpendingByCategory[i] = dto.CategoryTotalResponse{Category: ct.Category, Total: ct.Total}
	}
	return res
}
