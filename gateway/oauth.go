package gateway

import (
	"context"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/internal/errors"
)

// SignInWithOAuth starts the delegated OAuth flow: the remote service owns
// the full redirect cycle. A nil return means the flow was initiated, not
// completed. Once the app resumes, CurrentIdentity reconciles the account
// and profile.
func (s *Service) SignInWithOAuth(ctx context.Context, provider appwrite.Provider) error {
	authURL := s.remotes.Accounts.OAuth2SessionURL(provider, "", "")

	s.log.Info().Str("provider", string(provider)).Msg("starting delegated OAuth sign-in")
	if err := s.openURL(authURL); err != nil {
		return errors.Wrapf(err, "[Service.SignInWithOAuth] open browser")
	}
	return nil
}

// SignInWithOAuthToken runs the manual token handshake for environments
// where the app owns the browser redirect: listen on an app-owned redirect
// URI, send the user's browser to the provider via the remote service, and
// await the terminal redirect.
//
// The redirect must carry both the one-time secret and the user identifier;
// either missing ends this attempt with no retry and no partial state.
// Cancelling ctx (the user dismissed the browser) surfaces
// ErrHandshakeCancelled and leaves no session behind.
func (s *Service) SignInWithOAuthToken(ctx context.Context, provider appwrite.Provider) (*appwrite.Session, error) {
	listener, err := s.listener(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.SignInWithOAuthToken] start redirect listener")
	}
	defer listener.Close()

	redirectURI := listener.RedirectURI()
	authURL := s.remotes.Accounts.OAuth2TokenURL(provider, redirectURI, redirectURI)

	s.log.Info().Str("provider", string(provider)).Str("redirectURI", redirectURI).Msg("starting OAuth token handshake")
	if err := s.openURL(authURL); err != nil {
		return nil, errors.Wrapf(err, "[Service.SignInWithOAuthToken] open browser")
	}

	callback, err := listener.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(errors.ErrHandshakeCancelled, "[Service.SignInWithOAuthToken]")
		}
		return nil, errors.Wrapf(err, "[Service.SignInWithOAuthToken] await redirect")
	}

	secret := callback.Query.Get("secret")
	userID := callback.Query.Get("userId")
	if secret == "" || userID == "" {
		return nil, errors.Wrapf(errors.ErrMissingRedirectParam, "[Service.SignInWithOAuthToken] secret or userId absent")
	}

	session, err := s.remotes.Accounts.CreateSessionFromToken(ctx, userID, secret)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.SignInWithOAuthToken] redeem token")
	}

	s.log.Info().Str("accountID", session.UserID).Msg("OAuth sign-in complete")
	return session, nil
}
