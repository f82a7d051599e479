package services

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
)

// dashboardService implements the DashboardSvc interface
type dashboardService struct {
	BaseService
	remote portsrepo.DashboardReader
	store  *cache.Store
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(remote portsrepo.DashboardReader, store *cache.Store) portssvc.DashboardSvc {
	return &dashboardService{remote: remote, store: store}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) Stats(ctx context.Context) cache.Result[*domain.DashboardStats] {
	key, _ := cache.NewKey(domain.QueryDashboardStats, nil)
	res := cache.Read(ctx, s.store, key, cache.CacheAndNetwork, s.remote.DashboardStats)
	if res.Err != nil {
		s.LogError(ctx, res.Err, "Failed to load dashboard stats")
	}
	return res
}

func (s *dashboardService) Analytics(ctx context.Context) cache.Result[*domain.Analytics] {
	key, _ := cache.NewKey(domain.QueryAnalytics, nil)
	res := cache.Read(ctx, s.store, key, cache.CacheAndNetwork, s.remote.Analytics)
	if res.Err != nil {
		s.LogError(ctx, res.Err, "Failed to load analytics")
	}
	return res
}
