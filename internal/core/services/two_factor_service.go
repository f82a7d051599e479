package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/google/uuid"
)

type setupCodeInput struct {
	PhoneNumber string `validate:"required,e164"`
}

// twoFactorService implements factor enrollment. Whether a last factor may be disabled is left to the
// remote service; its answer is surfaced unchanged.
type twoFactorService struct {
	BaseService
	remote    portsrepo.TwoFactorRemoteFacade
	store     *cache.Store
	mutations *MutationRunner
	codes     *CodeLedger

	mu            sync.Mutex
	setupRequests map[domain.FactorType]string // Factor -> id of the last setup-code request
}

// NewTwoFactorService creates the enrollment service.
func NewTwoFactorService(remote portsrepo.TwoFactorRemoteFacade, store *cache.Store, mutations *MutationRunner, codes *CodeLedger) portssvc.TwoFactorSvcFacade {
	return &twoFactorService{
		remote:        remote,
		store:         store,
		mutations:     mutations,
		codes:         codes,
		setupRequests: make(map[domain.FactorType]string),
	}
}

var _ portssvc.TwoFactorSvcFacade = (*twoFactorService)(nil)

func (s *twoFactorService) Status(ctx context.Context) cache.Result[*domain.TwoFactorStatus] {
	key, _ := cache.NewKey(domain.QueryTwoFactorStatus, nil)
	return cache.Read(ctx, s.store, key, cache.CacheAndNetwork, s.remote.TwoFactorStatus)
}

// RequestSetupCode asks for an enrollment code. The phone number is required and checked only for SMS;
// for email it is ignored.
func (s *twoFactorService) RequestSetupCode(ctx context.Context, factor domain.FactorType, phoneNumber *string) error {
	if !factor.Enrollable() {
		return fmt.Errorf("%w: factor %q cannot be enrolled", apperrors.ErrValidation, factor)
	}
	var phone *string
	if factor == domain.FactorSMS {
		in := setupCodeInput{}
		if phoneNumber != nil {
			in.PhoneNumber = *phoneNumber
		}
		if err := s.ValidateInput(in); err != nil {
			return err
		}
		phone = &in.PhoneNumber
	}

	err := runMutationNoResult(ctx, s.mutations, domain.MutationSendSetupCode, func(ctx context.Context) error {
		return s.remote.SendSetupCode(ctx, factor, phone)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to request setup code", slog.String("factor", string(factor)))
		return err
	}
	s.mu.Lock()
	s.setupRequests[factor] = uuid.NewString()
	s.mu.Unlock()
	s.LogInfo(ctx, "Setup code requested", slog.String("factor", string(factor)))
	return nil
}

func (s *twoFactorService) EnableFactor(ctx context.Context, factor domain.FactorType, code string) error {
	if !factor.Enrollable() {
		return fmt.Errorf("%w: factor %q cannot be enrolled", apperrors.ErrValidation, factor)
	}
	if err := s.ValidateVar("code", code, oneTimeCodeTag); err != nil {
		return err
	}
	scope := s.setupScope(factor)
	if s.codes.Seen(scope, factor, code) {
		return fmt.Errorf("code already used: %w", apperrors.ErrInvalidCode)
	}

	err := runMutationNoResult(ctx, s.mutations, domain.MutationEnableTwoFactor, func(ctx context.Context) error {
		if err := s.remote.EnableTwoFactor(ctx, factor, code); err != nil {
			return err
		}
		s.codes.Remember(scope, factor, code)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to enable factor", slog.String("factor", string(factor)))
		return err
	}
	s.LogInfo(ctx, "Factor enabled", slog.String("factor", string(factor)))
	return nil
}

// setupScope names the setup-code request an enrollment code answers. A new request starts a new scope.
func (s *twoFactorService) setupScope(factor domain.FactorType) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "setup|" + s.setupRequests[factor]
}

// DisableFactor accepts either a current code of the factor or a backup code.
func (s *twoFactorService) DisableFactor(ctx context.Context, factor domain.FactorType, code string) error {
	if !factor.Enrollable() {
		return fmt.Errorf("%w: factor %q cannot be disabled", apperrors.ErrValidation, factor)
	}
	if err := s.ValidateVar("code", code, backupCodeTag); err != nil {
		return err
	}

	err := runMutationNoResult(ctx, s.mutations, domain.MutationDisableTwoFactor, func(ctx context.Context) error {
		return s.remote.DisableTwoFactor(ctx, factor, code)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to disable factor", slog.String("factor", string(factor)))
		return err
	}
	s.LogInfo(ctx, "Factor disabled", slog.String("factor", string(factor)))
	return nil
}

// RegenerateBackupCodes replaces the whole backup-code pool. The old codes stop working as the new pool
// is created, on the remote side.
func (s *twoFactorService) RegenerateBackupCodes(ctx context.Context, password string) ([]string, error) {
	if err := s.ValidateVar("password", password, "required,max=256"); err != nil {
		return nil, err
	}

	codes, err := RunMutation(ctx, s.mutations, domain.MutationRegenerateBackupCodes, func(ctx context.Context) ([]string, error) {
		return s.remote.RegenerateBackupCodes(ctx, password)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to regenerate backup codes")
		return codes, err
	}
	s.LogInfo(ctx, "Backup codes regenerated", slog.Int("count", len(codes)))
	return codes, nil
}
