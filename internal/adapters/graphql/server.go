package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/gorilla/mux"
)

const maxRequestBytes = 1 << 20

type operationHandler func(ctx context.Context, vars json.RawMessage) (any, error)

type route struct {
	op     operation
	handle operationHandler
}

// Server exposes a RemoteDataService as the GraphQL-over-HTTP endpoint the client speaks.
// It dispatches on operationName and ignores the query document, so it only answers the operations
// the client defines.
type Server struct {
	remote portsrepo.RemoteDataService
	secret string
	logger *slog.Logger
	routes map[string]route
}

// NewServer creates a server over remote. Bearer tokens are verified with secret.
func NewServer(remote portsrepo.RemoteDataService, secret string, logger *slog.Logger) *Server {
	s := &Server{remote: remote, secret: secret, logger: logger, routes: make(map[string]route)}
	s.register()
	return s
}

// Router returns the HTTP routes of the server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			s.logger.Debug("Failed to write health response", slog.String("error", err.Error()))
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/graphql", s.handleGraphQL).Methods(http.MethodPost)
	return r
}

// handle adapts a typed operation to an operationHandler.
func handle[V any, R any](fn func(ctx context.Context, vars V) (R, error)) operationHandler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var vars V
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &vars); err != nil {
				return nil, fmt.Errorf("%w: malformed variables: %s", apperrors.ErrValidation, err.Error())
			}
		}
		return fn(ctx, vars)
	}
}

// done is the boolean result of mutations that return nothing else.
func done(err error) (bool, error) {
	return err == nil, err
}

func (s *Server) add(op operation, h operationHandler) {
	s.routes[op.Name] = route{op: op, handle: h}
}

func (s *Server) register() {
	type none struct{}
	r := s.remote

	s.add(opGetAccounts, handle(func(ctx context.Context, _ none) ([]domain.Account, error) {
		return r.Accounts(ctx)
	}))
	s.add(opGetAccount, handle(func(ctx context.Context, v idVars) (*domain.Account, error) {
		return r.Account(ctx, v.ID)
	}))
	s.add(opGetTotalBalance, handle(func(ctx context.Context, _ none) (string, error) {
		total, err := r.TotalBalance(ctx)
		return total.String(), err
	}))
	s.add(opGetDashboardStats, handle(func(ctx context.Context, _ none) (*domain.DashboardStats, error) {
		return r.DashboardStats(ctx)
	}))
	s.add(opGetTransactions, handle(func(ctx context.Context, v domain.TransactionQuery) (*domain.TransactionPage, error) {
		return r.Transactions(ctx, v)
	}))
	s.add(opGetRecentTransactions, handle(func(ctx context.Context, v limitVars) ([]domain.Transaction, error) {
		return r.RecentTransactions(ctx, v.Limit)
	}))
	s.add(opGetCategories, handle(func(ctx context.Context, _ none) ([]domain.Category, error) {
		return r.Categories(ctx)
	}))
	s.add(opGetAnalytics, handle(func(ctx context.Context, _ none) (*domain.Analytics, error) {
		return r.Analytics(ctx)
	}))
	s.add(opGetTwoFactorStatus, handle(func(ctx context.Context, _ none) (*domain.TwoFactorStatus, error) {
		return r.TwoFactorStatus(ctx)
	}))
	s.add(opGetBankConnections, handle(func(ctx context.Context, _ none) ([]domain.BankConnection, error) {
		return r.BankConnections(ctx)
	}))

	s.add(opCreateAccount, handle(func(ctx context.Context, v inputVars[domain.CreateAccountInput]) (*domain.Account, error) {
		return r.CreateAccount(ctx, v.Input)
	}))
	s.add(opUpdateAccount, handle(func(ctx context.Context, v updateVars[domain.UpdateAccountInput]) (*domain.Account, error) {
		return r.UpdateAccount(ctx, v.ID, v.Input)
	}))
	s.add(opDeleteAccount, handle(func(ctx context.Context, v idVars) (bool, error) {
		return done(r.DeleteAccount(ctx, v.ID))
	}))
	s.add(opCreateTransaction, handle(func(ctx context.Context, v inputVars[domain.CreateTransactionInput]) (*domain.Transaction, error) {
		return r.CreateTransaction(ctx, v.Input)
	}))
	s.add(opUpdateTransaction, handle(func(ctx context.Context, v updateVars[domain.UpdateTransactionInput]) (*domain.Transaction, error) {
		return r.UpdateTransaction(ctx, v.ID, v.Input)
	}))
	s.add(opDeleteTransaction, handle(func(ctx context.Context, v idVars) (bool, error) {
		return done(r.DeleteTransaction(ctx, v.ID))
	}))
	s.add(opSendSetupCode, handle(func(ctx context.Context, v setupCodeVars) (bool, error) {
		return done(r.SendSetupCode(ctx, domain.FactorType(v.Type), v.PhoneNumber))
	}))
	s.add(opEnableTwoFactor, handle(func(ctx context.Context, v factorCodeVars) (bool, error) {
		return done(r.EnableTwoFactor(ctx, domain.FactorType(v.Type), v.Code))
	}))
	s.add(opDisableTwoFactor, handle(func(ctx context.Context, v factorCodeVars) (bool, error) {
		return done(r.DisableTwoFactor(ctx, domain.FactorType(v.Type), v.Code))
	}))
	s.add(opRegenerateBackupCodes, handle(func(ctx context.Context, v passwordVars) ([]string, error) {
		return r.RegenerateBackupCodes(ctx, v.Password)
	}))
	s.add(opLoginStep1, handle(func(ctx context.Context, v credentialsVars) (*domain.LoginStep1Result, error) {
		return r.LoginStep1(ctx, v.Email, v.Password)
	}))
	s.add(opLoginStep2, handle(func(ctx context.Context, v secondFactorVars) (*domain.Session, error) {
		return r.LoginStep2(ctx, v.PendingToken, v.Code, domain.FactorType(v.Type))
	}))
}

type incomingRequest struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.writeErrors(w, http.StatusBadRequest, "", fmt.Errorf("%w: unreadable body", apperrors.ErrValidation))
		return
	}
	var req incomingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrors(w, http.StatusBadRequest, "", fmt.Errorf("%w: body is not a GraphQL request", apperrors.ErrValidation))
		return
	}

	rt, found := s.routes[req.OperationName]
	if !found {
		s.writeErrors(w, http.StatusBadRequest, req.OperationName, fmt.Errorf("%w: unknown operation %q", apperrors.ErrValidation, req.OperationName))
		return
	}

	logger := s.logger.With(slog.String("operation", rt.op.Name))
	ctx := middleware.WithLogger(r.Context(), logger)

	if !rt.op.Public {
		if err := s.authenticate(r); err != nil {
			logger.Warn("Rejected unauthenticated operation", slog.String("error", err.Error()))
			s.writeErrors(w, http.StatusOK, rt.op.Name, err)
			return
		}
	}

	result, err := rt.handle(ctx, req.Variables)
	if err != nil {
		logger.Info("Operation failed", slog.String("error", err.Error()))
		s.writeErrors(w, http.StatusOK, rt.op.Name, err)
		return
	}

	data, err := json.Marshal(map[string]any{rt.op.Field: result})
	if err != nil {
		logger.Error("Failed to encode result", slog.String("error", err.Error()))
		s.writeErrors(w, http.StatusInternalServerError, rt.op.Name, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"data":%s}`, data); err != nil {
		logger.Debug("Failed to write response", slog.String("error", err.Error()))
	}
}

func (s *Server) authenticate(r *http.Request) error {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return fmt.Errorf("%w: bearer token required", apperrors.ErrUnauthorized)
	}
	if _, err := utils.ParseAndValidateJWT(parts[1], s.secret); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	return nil
}

func (s *Server) writeErrors(w http.ResponseWriter, status int, opName string, err error) {
	e := gqlError{Message: err.Error()}
	e.Extensions.Code = codeForError(err)
	if e.Extensions.Code == CodeInternal {
		// internal details stay in the log
		e.Message = "internal error"
		s.logger.Error("Operation failed with an internal error", slog.String("operation", opName), slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]any{"errors": []gqlError{e}, "data": nil}); encErr != nil {
		s.logger.Debug("Failed to write error response", slog.String("error", encErr.Error()))
	}
}
