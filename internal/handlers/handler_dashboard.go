package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

const dashboardRecentLimit = 5

type dashboardHandler struct {
	dashboard    portssvc.DashboardSvc
	transactions portssvc.TransactionReaderSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboard portssvc.DashboardSvc, transactions portssvc.TransactionReaderSvc) {
	h := &dashboardHandler{dashboard: dashboard, transactions: transactions}
	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/analytics", h.getAnalytics)
}

// getDashboard godoc
// @Summary Dashboard
// @Description Headline figures of the current month and the latest transactions
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	stats, statsStale, ok := readResult(c, h.dashboard.Stats(ctx), "Failed to load dashboard")
	if !ok {
		return
	}
	recent, recentStale, ok := readResult(c, h.transactions.RecentTransactions(ctx, dashboardRecentLimit), "Failed to load recent transactions")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapping.ToDashboardResponse(stats, recent, statsStale || recentStale))
}

// getAnalytics godoc
// @Summary Spending analytics
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /analytics [get]
func (h *dashboardHandler) getAnalytics(c *gin.Context) {
	analytics, stale, ok := readResult(c, h.dashboard.Analytics(c.Request.Context()), "Failed to load analytics")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapping.ToAnalyticsResponse(analytics, stale))
}
