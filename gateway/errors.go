package gateway

import "github.com/meridianapp/identity/internal/errors"

// Sentinels callers are expected to test with errors.Is. They live in
// internal/errors alongside the rest of the taxonomy and are re-exported
// here for the gateway's consumers.
var (
	ErrNoSession            = errors.ErrNoSession
	ErrInvalidCredentials   = errors.ErrInvalidCredentials
	ErrAccountExists        = errors.ErrAccountExists
	ErrMissingRedirectParam = errors.ErrMissingRedirectParam
	ErrHandshakeCancelled   = errors.ErrHandshakeCancelled
)
