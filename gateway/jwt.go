package gateway

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/internal/errors"
)

// CreateJWT issues a short-lived token for the current session, for calls to
// first-party backends that accept the remote service's JWTs.
func (s *Service) CreateJWT(ctx context.Context) (string, error) {
	token, err := s.remotes.Accounts.CreateJWT(ctx)
	if err != nil {
		if appwrite.IsUnauthorized(err) {
			return "", errors.Wrapf(errors.ErrNoSession, "[Service.CreateJWT]")
		}
		return "", errors.Wrapf(err, "[Service.CreateJWT]")
	}
	return token.Token, nil
}

// TokenExpiry reads the expiry claim of a JWT issued by the remote service.
// The signature is the backend's to verify; the client only needs to know
// when to request a fresh token.
func TokenExpiry(rawToken string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return time.Time{}, errors.Wrapf(err, "[TokenExpiry] parse token")
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, errors.Wrapf(errors.ErrInternal, "[TokenExpiry] token has no expiry claim")
	}
	return expiry.Time, nil
}
