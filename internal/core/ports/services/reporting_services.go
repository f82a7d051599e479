package services

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// DashboardSvc serves the aggregate reads of the dashboard and analytics pages.
type DashboardSvc interface {
	Stats(ctx context.Context) cache.Result[*domain.DashboardStats]
	Analytics(ctx context.Context) cache.Result[*domain.Analytics]
}
