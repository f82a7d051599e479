package mapping

import (
	"slices"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/dto"
)

// ToSessionResponse converts a session without its access token
func ToSessionResponse(s *domain.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{UserID: s.UserID, ExpiresAt: s.ExpiresAt}
}

// ToPendingResponse converts a pending authentication
func ToPendingResponse(p *domain.PendingAuthentication) *dto.PendingResponse {
	if p == nil {
		return nil
	}
	return &dto.PendingResponse{
		PendingToken:     p.Token,
		AvailableFactors: slices.Clone(p.AvailableFactors),
		IssuedAt:         p.IssuedAt,
	}
}

// ToLoginResponse converts the answer of the credential step
func ToLoginResponse(res *domain.LoginStep1Result) dto.LoginResponse {
	if res.Session != nil {
		return dto.LoginResponse{Status: dto.LoginAuthenticated, Session: ToSessionResponse(res.Session)}
	}
	return dto.LoginResponse{Status: dto.LoginSecondFactorRequired, Pending: ToPendingResponse(res.Pending)}
}

// ToAuthStateResponse reports the login state machine
func ToAuthStateResponse(state domain.AuthState, pending *domain.PendingAuthentication, session *domain.Session) dto.AuthStateResponse {
	return dto.AuthStateResponse{
		State:   state.String(),
		Pending: ToPendingResponse(pending),
		Session: ToSessionResponse(session),
	}
}

// ToTwoFactorStatusResponse converts the enrollment state
func ToTwoFactorStatusResponse(s *domain.TwoFactorStatus, stale bool) dto.TwoFactorStatusResponse {
	factors := s.EnabledFactors()
	if factors == nil {
		factors = []domain.FactorType{}
	}
	return dto.TwoFactorStatusResponse{
		EmailEnabled:         s.EmailEnabled,
		SMSEnabled:           s.SMSEnabled,
		EmailVerified:        s.EmailVerified,
		PhoneVerified:        s.PhoneVerified,
		PhoneNumber:          s.PhoneNumber,
		BackupCodesRemaining: s.BackupCodesRemaining,
		EnabledFactors:       factors,
		Stale:                stale,
	}
}
