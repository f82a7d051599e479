package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found (e.g. editing a deleted transaction).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks, locally or on the remote service.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredentials is the single, uniform failure for a rejected email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidCode indicates a wrong or already used verification code. Retryable.
var ErrInvalidCode = errors.New("invalid verification code")

// ErrTokenExpired indicates the pending login token is no longer usable.
// Terminal: login has to restart from the credential step.
var ErrTokenExpired = errors.New("pending token expired")

// ErrFactorMismatch indicates the requested factor is not available for the pending login.
var ErrFactorMismatch = errors.New("factor not available")

// ErrNetworkFailure indicates no usable response from the remote service (transport error, timeout, 5xx).
// Retryable, and never accompanied by a state change.
var ErrNetworkFailure = errors.New("network failure")

// ErrUnauthorized indicates an operation that needs an authenticated session was called without one.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSuperseded indicates a completion that arrived for a request that was replaced by a newer one.
// The completion has been discarded.
var ErrSuperseded = errors.New("request superseded")

// Retryable reports whether the caller may resubmit the same operation unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrNetworkFailure)
}
