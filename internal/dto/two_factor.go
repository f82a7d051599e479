package dto

import "github.com/SscSPs/spendwise_client/internal/core/domain"

// SetupCodeRequest asks for an enrollment code. PhoneNumber is required for SMS and ignored otherwise.
type SetupCodeRequest struct {
	Factor      domain.FactorType `json:"factor" binding:"required"`
	PhoneNumber *string           `json:"phoneNumber,omitempty"`
}

// FactorCodeRequest enables or disables a factor with a code.
type FactorCodeRequest struct {
	Factor domain.FactorType `json:"factor" binding:"required"`
	Code   string            `json:"code" binding:"required"`
}

// RegenerateBackupCodesRequest re-confirms the password before issuing a new backup-code pool.
type RegenerateBackupCodesRequest struct {
	Password string `json:"password" binding:"required"`
}

// BackupCodesResponse is shown once; the codes are not retrievable later.
type BackupCodesResponse struct {
	Codes []string `json:"codes"`
}

// TwoFactorStatusResponse is the enrollment state of the signed-in user.
type TwoFactorStatusResponse struct {
	EmailEnabled         bool                `json:"emailEnabled"`
	SMSEnabled           bool                `json:"smsEnabled"`
	EmailVerified        bool                `json:"emailVerified"`
	PhoneVerified        bool                `json:"phoneVerified"`
	PhoneNumber          *string             `json:"phoneNumber,omitempty"`
	BackupCodesRemaining int                 `json:"backupCodesRemaining"`
	EnabledFactors       []domain.FactorType `json:"enabledFactors"`
	Stale                bool                `json:"stale,omitempty"`
}
