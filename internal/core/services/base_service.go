package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/go-playground/validator/v10"
)

// validate is shared by all services; a validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// ValidateInput runs the struct's validate tags and classifies a failure as apperrors.ErrValidation.
func (s *BaseService) ValidateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// ValidateVar checks a single value against a validate tag.
func (s *BaseService) ValidateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s is invalid", apperrors.ErrValidation, field)
	}
	return nil
}
