package repositories

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// DashboardReader defines the aggregate queries behind the dashboard and analytics pages.
type DashboardReader interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	Analytics(ctx context.Context) (*domain.Analytics, error)
}

// BankConnectionReader lists the externally managed bank connections of the signed-in user.
type BankConnectionReader interface {
	BankConnections(ctx context.Context) ([]domain.BankConnection, error)
}
