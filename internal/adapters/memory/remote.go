package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/google/uuid"
)

const (
	DemoEmail    = "demo@spendwise.app"
	DemoPassword = "spendwise-demo"
	demoUserID   = "user-demo"
)

// DispatchedCode is a verification code the remote "sent" out of band.
type DispatchedCode struct {
	Factor      domain.FactorType
	Destination string
	Code        string
	SentAt      time.Time
}

type pendingLogin struct {
	userID   string
	factors  []domain.FactorType
	codes    map[domain.FactorType]string
	issuedAt time.Time
}

type user struct {
	id           string
	email        string
	passwordHash string
	status       domain.TwoFactorStatus
	backupCodes  map[string]bool
	setupCodes   map[domain.FactorType]string
	setupPhone   *string
}

// Remote is an in-memory RemoteDataService with one demo user and seeded data.
// It keeps the rules the client relies on: pending tokens are single-use and expire, codes are single-use,
// and every failure is reported with the apperrors sentinel the real service maps to.
type Remote struct {
	mu          sync.Mutex
	user        *user
	accounts    []domain.Account
	txs         []domain.Transaction
	connections []domain.BankConnection
	pending     map[string]*pendingLogin
	outbox      []DispatchedCode

	secret     string
	issuer     string
	sessionTTL time.Duration
	pendingTTL time.Duration
	now        func() time.Time
	newCode    func() (string, error)
}

// RemoteOption is a functional option for configuring the demo remote
type RemoteOption func(*Remote)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RemoteOption {
	return func(r *Remote) {
		r.now = now
	}
}

// WithPendingTTL sets how long a pending login stays usable.
func WithPendingTTL(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.pendingTTL = d
	}
}

// WithSessionTTL sets the lifetime of issued access tokens.
func WithSessionTTL(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.sessionTTL = d
	}
}

// WithCodeGenerator replaces the random six-digit code generator.
func WithCodeGenerator(gen func() string) RemoteOption {
	return func(r *Remote) {
		r.newCode = func() (string, error) { return gen(), nil }
	}
}

// NewRemote creates the demo remote. Access tokens are signed with secret.
func NewRemote(secret, issuer string, options ...RemoteOption) (*Remote, error) {
	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	r := &Remote{
		pending:    make(map[string]*pendingLogin),
		secret:     secret,
		issuer:     issuer,
		sessionTTL: time.Hour,
		pendingTTL: 10 * time.Minute,
		now:        time.Now,
		newCode:    func() (string, error) { return utils.GenerateVerificationCode(codeDigits) },
	}
	for _, option := range options {
		option(r)
	}

	phone := "+14155550123"
	r.user = &user{
		id:           demoUserID,
		email:        DemoEmail,
		passwordHash: hash,
		status: domain.TwoFactorStatus{
			EmailEnabled:  true,
			EmailVerified: true,
			PhoneNumber:   &phone,
		},
		backupCodes: make(map[string]bool),
		setupCodes:  make(map[domain.FactorType]string),
	}
	r.seed(r.now())
	return r, nil
}

var _ portsrepo.RemoteDataService = (*Remote)(nil)

const codeDigits = 6

// Outbox returns every code dispatched so far, oldest first.
func (r *Remote) Outbox() []DispatchedCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DispatchedCode(nil), r.outbox...)
}

// LastCode returns the most recent code dispatched for factor.
func (r *Remote) LastCode(factor domain.FactorType) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.outbox) - 1; i >= 0; i-- {
		if r.outbox[i].Factor == factor {
			return r.outbox[i].Code, true
		}
	}
	return "", false
}

// dispatchLocked records a code as sent. Callers hold r.mu.
func (r *Remote) dispatchLocked(ctx context.Context, factor domain.FactorType, destination, code string) {
	r.outbox = append(r.outbox, DispatchedCode{Factor: factor, Destination: destination, Code: code, SentAt: r.now()})
	middleware.GetLoggerFromCtx(ctx).Info("Demo verification code dispatched",
		slog.String("factor", string(factor)),
		slog.String("destination", destination),
		slog.String("code", code))
}

func (r *Remote) LoginStep1(ctx context.Context, email, password string) (*domain.LoginStep1Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.user
	if email != u.email || !utils.CheckPasswordHash(password, u.passwordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	factors := u.status.EnabledFactors()
	if len(factors) == 0 {
		session, err := r.issueSessionLocked(u.id)
		if err != nil {
			return nil, err
		}
		return &domain.LoginStep1Result{Session: session}, nil
	}

	p := &pendingLogin{userID: u.id, factors: factors, codes: make(map[domain.FactorType]string), issuedAt: r.now()}
	destinations := map[domain.FactorType]string{domain.FactorEmail: u.email}
	if u.status.PhoneNumber != nil {
		destinations[domain.FactorSMS] = *u.status.PhoneNumber
	}
	for _, factor := range factors {
		destination, ok := destinations[factor]
		if !ok || !factor.Enrollable() {
			continue
		}
		code, err := r.newCode()
		if err != nil {
			return nil, err
		}
		p.codes[factor] = code
		r.dispatchLocked(ctx, factor, destination, code)
	}
	token := uuid.NewString()
	r.pending[token] = p

	return &domain.LoginStep1Result{Pending: &domain.PendingAuthentication{
		Token:            token,
		AvailableFactors: append([]domain.FactorType(nil), factors...),
		IssuedAt:         p.issuedAt,
	}}, nil
}

func (r *Remote) LoginStep2(ctx context.Context, pendingToken, code string, factor domain.FactorType) (*domain.Session, error) {
	code = utils.NormalizeCode(code)
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[pendingToken]
	if !ok {
		return nil, apperrors.ErrTokenExpired
	}
	if r.now().Sub(p.issuedAt) >= r.pendingTTL {
		delete(r.pending, pendingToken)
		return nil, apperrors.ErrTokenExpired
	}
	if !(domain.PendingAuthentication{AvailableFactors: p.factors}).Offers(factor) {
		return nil, apperrors.ErrFactorMismatch
	}

	switch factor {
	case domain.FactorBackupCode:
		if !r.user.backupCodes[code] {
			return nil, apperrors.ErrInvalidCode
		}
		delete(r.user.backupCodes, code)
		r.user.status.BackupCodesRemaining = len(r.user.backupCodes)
	default:
		if want, ok := p.codes[factor]; !ok || want != code {
			return nil, apperrors.ErrInvalidCode
		}
	}

	delete(r.pending, pendingToken)
	return r.issueSessionLocked(p.userID)
}

func (r *Remote) issueSessionLocked(userID string) (*domain.Session, error) {
	token, err := utils.GenerateJWT(userID, r.secret, r.sessionTTL, r.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	return &domain.Session{AccessToken: token, UserID: userID, ExpiresAt: time.Now().Add(r.sessionTTL)}, nil
}

func (r *Remote) TwoFactorStatus(ctx context.Context) (*domain.TwoFactorStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := r.user.status
	if status.PhoneNumber != nil {
		phone := *status.PhoneNumber
		status.PhoneNumber = &phone
	}
	return &status, nil
}

func (r *Remote) SendSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.newCode()
	if err != nil {
		return err
	}
	switch factor {
	case domain.FactorEmail:
		r.user.setupCodes[factor] = code
		r.dispatchLocked(ctx, factor, r.user.email, code)
	case domain.FactorSMS:
		if phoneNumber == nil || *phoneNumber == "" {
			return fmt.Errorf("%w: phone number required for SMS", apperrors.ErrValidation)
		}
		phone := *phoneNumber
		r.user.setupPhone = &phone
		r.user.setupCodes[factor] = code
		r.dispatchLocked(ctx, factor, phone, code)
	default:
		return fmt.Errorf("%w: factor %s cannot be enrolled", apperrors.ErrValidation, factor)
	}
	return nil
}

func (r *Remote) EnableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	code = utils.NormalizeCode(code)
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.user
	want, ok := u.setupCodes[factor]
	if !ok || want != code {
		return apperrors.ErrInvalidCode
	}
	delete(u.setupCodes, factor)

	switch factor {
	case domain.FactorEmail:
		u.status.EmailEnabled = true
		u.status.EmailVerified = true
	case domain.FactorSMS:
		u.status.SMSEnabled = true
		u.status.PhoneVerified = true
		u.status.PhoneNumber = u.setupPhone
	}
	if len(u.backupCodes) == 0 {
		if _, err := r.regenerateLocked(); err != nil {
			return err
		}
	}
	return nil
}

// DisableTwoFactor accepts an unused backup code, or the latest setup code requested for factor.
func (r *Remote) DisableTwoFactor(ctx context.Context, factor domain.FactorType, code string) error {
	code = utils.NormalizeCode(code)
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.user
	switch {
	case u.backupCodes[code]:
		delete(u.backupCodes, code)
		u.status.BackupCodesRemaining = len(u.backupCodes)
	case u.setupCodes[factor] != "" && u.setupCodes[factor] == code:
		delete(u.setupCodes, factor)
	default:
		return apperrors.ErrInvalidCode
	}

	switch factor {
	case domain.FactorEmail:
		u.status.EmailEnabled = false
	case domain.FactorSMS:
		u.status.SMSEnabled = false
	default:
		return fmt.Errorf("%w: factor %s cannot be disabled", apperrors.ErrValidation, factor)
	}
	return nil
}

func (r *Remote) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !utils.CheckPasswordHash(password, r.user.passwordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return r.regenerateLocked()
}

const backupCodeCount = 8

func (r *Remote) regenerateLocked() ([]string, error) {
	codes := make([]string, 0, backupCodeCount)
	pool := make(map[string]bool, backupCodeCount)
	for len(codes) < backupCodeCount {
		code, err := utils.GenerateBackupCode()
		if err != nil {
			return nil, err
		}
		if pool[code] {
			continue
		}
		pool[code] = true
		codes = append(codes, code)
	}
	r.user.backupCodes = pool
	r.user.status.BackupCodesRemaining = len(pool)
	return codes, nil
}
