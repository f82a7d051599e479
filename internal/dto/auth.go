package dto

import (
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// LoginRequest is the credential step of a login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest is the second-factor step of a login.
type VerifyRequest struct {
	PendingToken string            `json:"pendingToken" binding:"required"`
	Code         string            `json:"code" binding:"required"`
	Factor       domain.FactorType `json:"factor" binding:"required,oneof=EMAIL SMS BACKUP_CODE"`
}

// Login statuses.
const (
	LoginAuthenticated        = "authenticated"
	LoginSecondFactorRequired = "second_factor_required"
)

// LoginResponse carries either a session or the pending second-factor challenge.
type LoginResponse struct {
	Status  string           `json:"status"`
	Session *SessionResponse `json:"session,omitempty"`
	Pending *PendingResponse `json:"pending,omitempty"`
}

// SessionResponse describes the signed-in session. The access token stays on the server.
type SessionResponse struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PendingResponse is the second-factor challenge of a login attempt.
type PendingResponse struct {
	PendingToken     string              `json:"pendingToken"`
	AvailableFactors []domain.FactorType `json:"availableFactors"`
	IssuedAt         time.Time           `json:"issuedAt"`
}

// AuthStateResponse reports the position of the login state machine.
type AuthStateResponse struct {
	State   string           `json:"state"`
	Pending *PendingResponse `json:"pending,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}
