package errors

import (
	"errors"
	"fmt"
)

// Common error types for the identity gateway
var (
	// Session errors
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")

	// Account errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")

	// OAuth handshake errors
	ErrMissingRedirectParam = errors.New("redirect is missing a required parameter")
	ErrHandshakeCancelled   = errors.New("sign-in was cancelled")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
