package domain

import "time"

// FactorType is a second-factor verification channel.
type FactorType string

const (
	FactorEmail      FactorType = "EMAIL"
	FactorSMS        FactorType = "SMS"
	FactorBackupCode FactorType = "BACKUP_CODE"
)

// Valid reports whether f is a known factor type.
func (f FactorType) Valid() bool {
	switch f {
	case FactorEmail, FactorSMS, FactorBackupCode:
		return true
	}
	return false
}

// Enrollable reports whether f can be set up through a dispatched code. Backup codes are generated, not enrolled.
func (f FactorType) Enrollable() bool {
	return f == FactorEmail || f == FactorSMS
}

// PendingAuthentication bridges an accepted credential check and the second-factor step.
// It lives only for one login attempt.
type PendingAuthentication struct {
	Token            string       `json:"pendingToken"`
	AvailableFactors []FactorType `json:"availableFactors"`
	IssuedAt         time.Time    `json:"issuedAt"`
}

// Offers reports whether f is one of the factors available for this login.
func (p PendingAuthentication) Offers(f FactorType) bool {
	for _, available := range p.AvailableFactors {
		if available == f {
			return true
		}
	}
	return false
}

// Session is a completed, authenticated session.
type Session struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at now. A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LoginStep1Result is the remote answer to a credential submission: either a completed
// session (no factor enrolled) or a pending authentication, never both.
type LoginStep1Result struct {
	Session *Session               `json:"session,omitempty"`
	Pending *PendingAuthentication `json:"pending,omitempty"`
}

// TwoFactorStatus is the per-user enrollment state.
type TwoFactorStatus struct {
	EmailEnabled         bool    `json:"emailEnabled"`
	SMSEnabled           bool    `json:"smsEnabled"`
	EmailVerified        bool    `json:"emailVerified"`
	PhoneVerified        bool    `json:"phoneVerified"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	BackupCodesRemaining int     `json:"backupCodesRemaining"`
}

// EnabledFactors returns the enrolled factors, with backup codes last when any remain.
func (s TwoFactorStatus) EnabledFactors() []FactorType {
	var out []FactorType
	if s.EmailEnabled {
		out = append(out, FactorEmail)
	}
	if s.SMSEnabled {
		out = append(out, FactorSMS)
	}
	if len(out) > 0 && s.BackupCodesRemaining > 0 {
		out = append(out, FactorBackupCode)
	}
	return out
}

// AuthState is the position of the step-up login state machine.
type AuthState int

const (
	Unauthenticated AuthState = iota
	CredentialsSubmitted
	AwaitingSecondFactor
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Unauthenticated:
		return "UNAUTHENTICATED"
	case CredentialsSubmitted:
		return "CREDENTIALS_SUBMITTED"
	case AwaitingSecondFactor:
		return "AWAITING_SECOND_FACTOR"
	case Authenticated:
		return "AUTHENTICATED"
	}
	return "UNKNOWN"
}
