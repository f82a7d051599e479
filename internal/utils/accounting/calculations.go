package accounting

import (
	"cmp"
	"slices"
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalBalance sums the balances of accounts. Liabilities carry a negative balance and reduce the total.
func TotalBalance(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// SummarizeBalances splits balances into assets and liabilities.
func SummarizeBalances(accounts []domain.Account) domain.BalanceSummary {
	summary := domain.BalanceSummary{Assets: decimal.Zero, Liabilities: decimal.Zero, NetWorth: decimal.Zero}
	for _, acc := range accounts {
		if acc.Balance.IsNegative() {
			summary.Liabilities = summary.Liabilities.Add(acc.Balance.Neg())
		} else {
			summary.Assets = summary.Assets.Add(acc.Balance)
		}
		summary.NetWorth = summary.NetWorth.Add(acc.Balance)
	}
	return summary
}

// MonthStart returns midnight of the first day of the month of t, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// CashFlowSince sums income and expenses dated at or after since. Both are returned as positive amounts
// whatever sign the transactions were recorded with. Transfers are left out.
func CashFlowSince(txs []domain.Transaction, since time.Time) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.Date.Before(since) {
			continue
		}
		switch t.Type {
		case domain.Income:
			income = income.Add(t.Amount.Abs())
		case domain.Expense:
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return income, expenses
}

// SpendingByCategory totals expenses per category, largest first. Equal totals are ordered by name.
func SpendingByCategory(txs []domain.Transaction) []domain.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != domain.Expense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}

	out := make([]domain.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, domain.CategoryTotal{Category: category, Total: total})
	}
	slices.SortFunc(out, func(a, b domain.CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}
