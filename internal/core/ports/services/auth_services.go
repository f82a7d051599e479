package services

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// LoginSvc drives the two login steps.
type LoginSvc interface {
	// SubmitCredentials starts a new login attempt, abandoning any pending one. The result carries
	// either a completed session or a pending authentication.
	SubmitCredentials(ctx context.Context, email, password string) (*domain.LoginStep1Result, error)

	// VerifySecondFactor completes a pending login with a code of one of the offered factors.
	VerifySecondFactor(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error)

	// Abandon drops the pending login without contacting the remote service.
	Abandon(ctx context.Context)

	// Logout ends the session and forgets every cached query.
	Logout(ctx context.Context)
}

// AuthStateSvc exposes the current position of the login state machine.
type AuthStateSvc interface {
	State() domain.AuthState
	Pending() *domain.PendingAuthentication
	CurrentSession() (*domain.Session, bool)
}

// StepUpAuthSvcFacade combines all login-related service interfaces.
type StepUpAuthSvcFacade interface {
	LoginSvc
	AuthStateSvc
}

// TwoFactorReaderSvc reads the enrollment state.
type TwoFactorReaderSvc interface {
	Status(ctx context.Context) cache.Result[*domain.TwoFactorStatus]
}

// TwoFactorWriterSvc manages factor enrollment.
type TwoFactorWriterSvc interface {
	RequestSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error
	EnableFactor(ctx context.Context, factor domain.FactorType, code string) error
	DisableFactor(ctx context.Context, factor domain.FactorType, code string) error
	RegenerateBackupCodes(ctx context.Context, password string) ([]string, error)
}

// TwoFactorSvcFacade combines all enrollment-related service interfaces.
type TwoFactorSvcFacade interface {
	TwoFactorReaderSvc
	TwoFactorWriterSvc
}
