package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/utils"
)

type credentialsInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=256"`
}

const (
	oneTimeCodeTag = "required,len=6,numeric"
	backupCodeTag  = "required,min=6,max=32,printascii"
)

// codeTag returns the validate tag for codes of factor.
func codeTag(factor domain.FactorType) string {
	if factor == domain.FactorBackupCode {
		return backupCodeTag
	}
	return oneTimeCodeTag
}

// stepUpAuthService implements the login state machine:
// Unauthenticated -> CredentialsSubmitted -> (AwaitingSecondFactor | Authenticated) -> Authenticated.
type stepUpAuthService struct {
	BaseService
	login      portsrepo.LoginRemote
	store      *cache.Store
	codes      *CodeLedger
	now        func() time.Time
	pendingTTL time.Duration

	mu      sync.Mutex
	state   domain.AuthState
	attempt uint64
	pending *domain.PendingAuthentication
	session *domain.Session
}

// StepUpAuthOption is a functional option for configuring the login state machine
type StepUpAuthOption func(*stepUpAuthService)

// WithPendingTokenTTL makes verification fail locally once a pending token is older than ttl.
// Zero leaves expiry entirely to the remote service.
func WithPendingTokenTTL(ttl time.Duration) StepUpAuthOption {
	return func(s *stepUpAuthService) {
		s.pendingTTL = ttl
	}
}

// WithAuthClock replaces time.Now.
func WithAuthClock(now func() time.Time) StepUpAuthOption {
	return func(s *stepUpAuthService) {
		s.now = now
	}
}

// NewStepUpAuthService creates the login state machine. A completed session purges store.
func NewStepUpAuthService(login portsrepo.LoginRemote, store *cache.Store, codes *CodeLedger, options ...StepUpAuthOption) portssvc.StepUpAuthSvcFacade {
	svc := &stepUpAuthService{
		login: login,
		store: store,
		codes: codes,
		now:   time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StepUpAuthSvcFacade = (*stepUpAuthService)(nil)

// SubmitCredentials starts a new login. Any earlier attempt is abandoned first, even when the new
// credentials turn out to be invalid.
func (s *stepUpAuthService) SubmitCredentials(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	s.mu.Lock()
	s.attempt++
	attempt := s.attempt
	s.pending = nil
	s.session = nil
	s.state = domain.Unauthenticated
	s.mu.Unlock()

	if err := s.ValidateInput(credentialsInput{Email: email, Password: password}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if attempt != s.attempt {
		s.mu.Unlock()
		return nil, fmt.Errorf("login attempt %d: %w", attempt, apperrors.ErrSuperseded)
	}
	s.state = domain.CredentialsSubmitted
	s.mu.Unlock()

	res, err := s.login.LoginStep1(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt != s.attempt {
		// a newer attempt or an abandon/logout happened while this one was in flight
		return nil, fmt.Errorf("login attempt %d: %w", attempt, apperrors.ErrSuperseded)
	}

	if err != nil {
		s.state = domain.Unauthenticated
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.ErrInvalidCredentials
		}
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.LogInfo(ctx, "Login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Login step 1 failed")
		return nil, err
	}

	switch {
	case res != nil && res.Session != nil && res.Pending == nil:
		session := s.completeLocked(ctx, *res.Session)
		return &domain.LoginStep1Result{Session: session}, nil
	case res != nil && res.Pending != nil && res.Session == nil && len(res.Pending.AvailableFactors) > 0:
		pending := *res.Pending
		pending.AvailableFactors = append([]domain.FactorType(nil), res.Pending.AvailableFactors...)
		if pending.IssuedAt.IsZero() {
			pending.IssuedAt = s.now()
		}
		s.pending = &pending
		s.state = domain.AwaitingSecondFactor
		s.LogInfo(ctx, "Second factor required", slog.Any("available_factors", pending.AvailableFactors))
		out := pending
		return &domain.LoginStep1Result{Pending: &out}, nil
	}

	s.state = domain.Unauthenticated
	err = fmt.Errorf("login step 1 returned no session and no usable pending authentication: %w", apperrors.ErrNetworkFailure)
	s.LogError(ctx, err, "Malformed login response")
	return nil, err
}

func (s *stepUpAuthService) VerifySecondFactor(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	s.mu.Lock()
	if s.pending == nil || s.pending.Token != pendingToken {
		s.mu.Unlock()
		return nil, fmt.Errorf("no pending login for this token: %w", apperrors.ErrTokenExpired)
	}
	if s.pendingTTL > 0 && s.now().Sub(s.pending.IssuedAt) >= s.pendingTTL {
		s.destroyPendingLocked()
		s.mu.Unlock()
		s.LogInfo(ctx, "Pending login expired locally")
		return nil, apperrors.ErrTokenExpired
	}
	if !factor.Valid() || !s.pending.Offers(factor) {
		s.mu.Unlock()
		return nil, fmt.Errorf("factor %q: %w", factor, apperrors.ErrFactorMismatch)
	}
	attempt := s.attempt
	s.mu.Unlock()

	if err := s.ValidateVar("code", code, codeTag(factor)); err != nil {
		return nil, err
	}
	if s.codes.Seen(pendingToken, factor, code) {
		return nil, fmt.Errorf("code already used: %w", apperrors.ErrInvalidCode)
	}

	session, err := s.login.LoginStep2(ctx, pendingToken, code, factor)

	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt != s.attempt || s.pending == nil || s.pending.Token != pendingToken {
		return nil, fmt.Errorf("verification for an abandoned login: %w", apperrors.ErrSuperseded)
	}

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrNotFound):
			s.destroyPendingLocked()
			s.LogInfo(ctx, "Pending login expired")
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, apperrors.ErrInvalidCode), errors.Is(err, apperrors.ErrFactorMismatch):
			s.LogInfo(ctx, "Second factor rejected", slog.String("factor", string(factor)))
			return nil, err
		}
		s.LogError(ctx, err, "Login step 2 failed")
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("login step 2 returned no session: %w", apperrors.ErrNetworkFailure)
	}

	s.codes.Remember(pendingToken, factor, code)
	s.pending = nil
	return s.completeLocked(ctx, *session), nil
}

func (s *stepUpAuthService) Abandon(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.Authenticated {
		return
	}
	s.attempt++
	s.destroyPendingLocked()
	s.LogDebug(ctx, "Login abandoned")
}

func (s *stepUpAuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.attempt++
	s.pending = nil
	s.session = nil
	s.state = domain.Unauthenticated
	s.mu.Unlock()

	s.store.Purge()
	s.LogInfo(ctx, "Logged out")
}

func (s *stepUpAuthService) State() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireSessionLocked()
	return s.state
}

func (s *stepUpAuthService) Pending() *domain.PendingAuthentication {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

func (s *stepUpAuthService) CurrentSession() (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireSessionLocked()
	if s.session == nil {
		return nil, false
	}
	session := *s.session
	return &session, true
}

// completeLocked stores the session and forgets every cached query of a previous user.
func (s *stepUpAuthService) completeLocked(ctx context.Context, session domain.Session) *domain.Session {
	if claims, err := utils.ParseSessionClaims(session.AccessToken); err == nil {
		if session.UserID == "" {
			session.UserID = claims.Subject
		}
		if session.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
	} else {
		s.LogDebug(ctx, "Access token carries no readable claims", slog.String("error", err.Error()))
	}

	s.session = &session
	s.state = domain.Authenticated
	s.store.Purge()
	s.LogInfo(ctx, "Login completed", slog.String("user_id", session.UserID))
	out := session
	return &out
}

func (s *stepUpAuthService) expireSessionLocked() {
	if s.session != nil && s.session.Expired(s.now()) {
		s.session = nil
		s.state = domain.Unauthenticated
	}
}

// destroyPendingLocked drops the pending login. Its token is never presented again.
func (s *stepUpAuthService) destroyPendingLocked() {
	s.pending = nil
	if s.state != domain.Authenticated {
		s.state = domain.Unauthenticated
	}
}
