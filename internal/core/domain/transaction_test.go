package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUpdateTransactionInput_Apply(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	original := domain.Transaction{
		ID:        "txn_123",
		AccountID: "acc_123",
		Amount:    decimal.NewFromFloat(-42.50),
		Type:      domain.Expense,
		Category:  "Shopping",
		Date:      date,
	}

	tests := []struct {
		name   string
		update domain.UpdateTransactionInput
		check  func(t *testing.T, got domain.Transaction)
	}{
		{
			name:   "empty update keeps everything",
			update: domain.UpdateTransactionInput{},
			check: func(t *testing.T, got domain.Transaction) {
				assert.Equal(t, original, got)
			},
		},
		{
			name:   "category and merchant change",
			update: domain.UpdateTransactionInput{Category: stringPtr("Travel"), Merchant: stringPtr("Delta")},
			check: func(t *testing.T, got domain.Transaction) {
				assert.Equal(t, "Travel", got.Category)
				assert.Equal(t, "Delta", *got.Merchant)
				assert.True(t, original.Amount.Equal(got.Amount))
			},
		},
		{
			name:   "amount and type change",
			update: domain.UpdateTransactionInput{Amount: decimalPtr(decimal.NewFromInt(100)), Type: typePtr(domain.Income)},
			check: func(t *testing.T, got domain.Transaction) {
				assert.True(t, decimal.NewFromInt(100).Equal(got.Amount))
				assert.Equal(t, domain.Income, got.Type)
				assert.Equal(t, "txn_123", got.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.update.Apply(original))
		})
	}
}

func TestTransactionPage_Nodes(t *testing.T) {
	page := domain.TransactionPage{
		Edges: []domain.TransactionEdge{
			{Node: domain.Transaction{ID: "1"}},
			{Node: domain.Transaction{ID: "2"}},
		},
		PageInfo: domain.PageInfo{HasNextPage: true},
	}

	nodes := page.Nodes()

	assert.Len(t, nodes, 2)
	assert.Equal(t, "1", nodes[0].ID)
	assert.Equal(t, "2", nodes[1].ID)
}

func TestUpdateAccountInput_ApplyNeverTouchesType(t *testing.T) {
	acc := domain.Account{ID: "acc_1", Type: domain.Credit, Name: "Old", Balance: decimal.NewFromInt(-300)}
	newName := "Sapphire"

	got := domain.UpdateAccountInput{Name: &newName}.Apply(acc)

	assert.Equal(t, "Sapphire", got.Name)
	assert.Equal(t, domain.Credit, got.Type)
	assert.True(t, domain.UpdateAccountInput{}.IsEmpty())
}
