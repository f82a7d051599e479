package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		// static segments are matched before :id
		accounts.GET("/overview", h.overview)
		accounts.GET("/total-balance", h.totalBalance)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds a manually tracked account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req, "CreateAccount") {
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", string(req.Type)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), mapping.ToCreateAccountInput(req))
	if err != nil && !committed(c, err) {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.ID))
	c.JSON(http.StatusCreated, mapping.ToAccountResponse(*account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, stale, ok := readResult(c, h.accountService.ListAccounts(c.Request.Context()), "Failed to list accounts")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: mapping.ToAccountResponses(accounts), Stale: stale})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, _, ok := readResult(c, h.accountService.GetAccount(c.Request.Context(), c.Param("id")), "Failed to retrieve account")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapping.ToAccountResponse(*account))
}

// totalBalance godoc
// @Summary Total balance across accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts/total-balance [get]
func (h *accountHandler) totalBalance(c *gin.Context) {
	total, stale, ok := readResult(c, h.accountService.TotalBalance(c.Request.Context()), "Failed to load total balance")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{TotalBalance: total, Stale: stale})
}

// overview godoc
// @Summary Accounts page
// @Description Accounts grouped by type, each with its reconciled bank-connection state, and a balance summary
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountsOverviewResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts/overview [get]
func (h *accountHandler) overview(c *gin.Context) {
	overview, err := h.accountService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load accounts overview")
		return
	}
	c.JSON(http.StatusOK, mapping.ToAccountsOverviewResponse(overview))
}

// updateAccount godoc
// @Summary Update an account
// @Description The account type cannot be changed
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req, "UpdateAccount") {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, mapping.ToUpdateAccountInput(req))
	if err != nil && !committed(c, err) {
		respondError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, mapping.ToAccountResponse(*account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 502 {object} dto.ErrorResponse "Service unreachable"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("id")
	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil && !committed(c, err) {
		respondError(c, err, "Failed to delete account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted successfully", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
