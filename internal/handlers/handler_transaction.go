package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactions portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactions portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactions: transactions}

	group := rg.Group("/transactions")
	{
		group.GET("", h.listTransactions)
		group.POST("", h.createTransaction)
		group.POST("/load-more", h.loadMore)
		group.GET("/recent", h.recentTransactions)
		group.PUT("/:id", h.updateTransaction)
		group.DELETE("/:id", h.deleteTransaction)
	}
	rg.GET("/categories", h.categories)
}

// listTransactions godoc
// @Summary Transaction listing
// @Description Returns the accumulated pages of the current view. Filter and sort parameters that are present
// @Description are merged into the view; any change restarts paging at page 1. An empty value unsets a filter.
// @Tags transactions
// @Produce json
// @Param search query string false "Case-insensitive text in merchant, description or category"
// @Param category query string false "Exact category"
// @Param type query string false "INCOME, EXPENSE or TRANSFER"
// @Param accountId query string false "Account ID"
// @Param startDate query string false "Inclusive start (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Inclusive end (YYYY-MM-DD or RFC 3339)"
// @Param minAmount query string false "Inclusive minimum amount"
// @Param maxAmount query string false "Inclusive maximum amount"
// @Param unset query []string false "Filter fields to clear"
// @Param clear query bool false "Clear every filter first"
// @Param sortField query string false "DATE, AMOUNT or CATEGORY"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {object} dto.TransactionViewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	patch, hasPatch, err := mapping.ToFilterPatch(params)
	if err != nil {
		respondError(c, err, "Invalid filters")
		return
	}

	var view *domain.TransactionView
	if params.Clear {
		if view, err = h.transactions.ClearFilters(ctx); err != nil {
			respondError(c, err, "Failed to clear filters")
			return
		}
	}
	if hasPatch {
		if view, err = h.transactions.UpdateFilters(ctx, patch); err != nil {
			respondError(c, err, "Failed to apply filters")
			return
		}
	}
	if params.SortField != nil || params.SortOrder != nil {
		current := domain.DefaultTransactionSort
		if view != nil {
			current = view.Sort
		} else if v, err := h.transactions.View(ctx); err == nil {
			current = v.Sort
		}
		sort, _ := mapping.ToTransactionSort(params, current)
		if view, err = h.transactions.SetSort(ctx, sort); err != nil {
			respondError(c, err, "Failed to change sort order")
			return
		}
	}
	if view == nil {
		if view, err = h.transactions.View(ctx); err != nil {
			respondError(c, err, "Failed to list transactions")
			return
		}
	}
	c.JSON(http.StatusOK, mapping.ToTransactionViewResponse(view))
}

// loadMore godoc
// @Summary Load the next page
// @Description Appends the next page to the current view. A page token from an older view is rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.LoadMoreRequest false "Page token of the view being extended"
// @Success 200 {object} dto.TransactionViewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "The view changed since the token was issued"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/load-more [post]
func (h *transactionHandler) loadMore(c *gin.Context) {
	var req dto.LoadMoreRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req, "LoadMore") {
		return
	}
	view, err := h.transactions.LoadMore(c.Request.Context(), req.PageToken)
	if err != nil {
		respondError(c, err, "Failed to load more transactions")
		return
	}
	c.JSON(http.StatusOK, mapping.ToTransactionViewResponse(view))
}

// recentTransactions godoc
// @Summary Latest transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Number of transactions (1-50)" default(5)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/recent [get]
func (h *transactionHandler) recentTransactions(c *gin.Context) {
	var params dto.RecentTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	txs, stale, ok := readResult(c, h.transactions.RecentTransactions(c.Request.Context(), params.Limit), "Failed to load recent transactions")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: mapping.ToTransactionResponses(txs), Stale: stale})
}

// categories godoc
// @Summary Transaction categories
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *transactionHandler) categories(c *gin.Context) {
	categories, stale, ok := readResult(c, h.transactions.Categories(c.Request.Context()), "Failed to load categories")
	if !ok {
		return
	}
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: names, Stale: stale})
}

// createTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req, "CreateTransaction") {
		return
	}
	tx, err := h.transactions.CreateTransaction(c.Request.Context(), mapping.ToCreateTransactionInput(req))
	if err != nil && !committed(c, err) {
		respondError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, mapping.ToTransactionResponse(*tx))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req, "UpdateTransaction") {
		return
	}
	tx, err := h.transactions.UpdateTransaction(c.Request.Context(), c.Param("id"), mapping.ToUpdateTransactionInput(req))
	if err != nil && !committed(c, err) {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, mapping.ToTransactionResponse(*tx))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	if err := h.transactions.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil && !committed(c, err) {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
