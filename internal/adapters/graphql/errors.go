package graphql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
)

// Error codes carried in errors[].extensions.code.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidCode        = "INVALID_CODE"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeFactorMismatch     = "FACTOR_MISMATCH"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

var codeErrors = []struct {
	code string
	err  error
}{
	{CodeNotFound, apperrors.ErrNotFound},
	{CodeBadUserInput, apperrors.ErrValidation},
	{CodeInvalidCredentials, apperrors.ErrInvalidCredentials},
	{CodeInvalidCode, apperrors.ErrInvalidCode},
	{CodeTokenExpired, apperrors.ErrTokenExpired},
	{CodeFactorMismatch, apperrors.ErrFactorMismatch},
	{CodeUnauthenticated, apperrors.ErrUnauthorized},
}

// errorForCode classifies a remote error code. Unknown codes are treated as a failed request.
func errorForCode(code string) error {
	for _, ce := range codeErrors {
		if ce.code == code {
			return ce.err
		}
	}
	return apperrors.ErrNetworkFailure
}

// codeForError is the inverse of errorForCode, used by the server.
func codeForError(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}
	return CodeInternal
}

// gqlError is one entry of a GraphQL "errors" array.
type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions"`
}

// RemoteError is a failure reported by the remote service for one operation.
// It matches the apperrors sentinel its code maps to.
type RemoteError struct {
	Operation string
	Code      string
	Message   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Operation, e.Message, e.Code)
}

func (e *RemoteError) Unwrap() error {
	return errorForCode(e.Code)
}
