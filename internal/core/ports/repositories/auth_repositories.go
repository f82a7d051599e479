package repositories

import (
	"context"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
)

// LoginRemote defines the two login steps.
type LoginRemote interface {
	// LoginStep1 checks the primary credentials. It returns apperrors.ErrInvalidCredentials
	// for any bad email/password combination.
	LoginStep1(ctx context.Context, email, password string) (*domain.LoginStep1Result, error)

	// LoginStep2 consumes a pending token with a second-factor code.
	LoginStep2(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error)
}

// TwoFactorReader defines the enrollment status query.
type TwoFactorReader interface {
	TwoFactorStatus(ctx context.Context) (*domain.TwoFactorStatus, error)
}

// TwoFactorWriter defines the enrollment mutations.
type TwoFactorWriter interface {
	// SendSetupCode dispatches an enrollment code out of band. phoneNumber is only used for SMS.
	SendSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error
	EnableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error
	DisableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error
	// RegenerateBackupCodes replaces the whole backup-code pool and returns the new codes.
	RegenerateBackupCodes(ctx context.Context, password string) ([]string, error)
}

// TwoFactorRemoteFacade combines all enrollment-related remote interfaces.
type TwoFactorRemoteFacade interface {
	TwoFactorReader
	TwoFactorWriter
}
