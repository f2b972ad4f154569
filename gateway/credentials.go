package gateway

import (
	"context"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/internal/errors"
)

// SignUp creates an account, signs it in, and creates its profile document,
// strictly in that order. Inputs are caller-validated (ValidateCredentials);
// fullName may be empty.
//
// The three remote calls are not transactional: if the profile write fails
// the account and session stay valid, and CurrentIdentity repairs the
// missing profile on the next lookup.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) error {
	accountID := appwrite.UniqueID()

	account, err := s.remotes.Accounts.Create(ctx, accountID, email, password, fullName)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sign-up: account creation rejected")
		if appwrite.IsType(err, appwrite.TypeUserAlreadyExists) {
			return errors.Wrapf(errors.ErrAccountExists, "[Service.SignUp]")
		}
		return errors.Wrapf(err, "[Service.SignUp] create account")
	}

	if _, err := s.remotes.Accounts.CreateEmailSession(ctx, email, password); err != nil {
		return errors.Wrapf(err, "[Service.SignUp] create session")
	}

	if err := s.createProfile(ctx, account.ID, fullName, email); err != nil {
		return errors.Wrapf(err, "[Service.SignUp] create profile")
	}

	s.log.Info().Str("accountID", account.ID).Msg("sign-up complete")
	return nil
}

// SignIn establishes a credential session. Any pre-existing current session
// is discarded first; its absence is not an error for this operation.
func (s *Service) SignIn(ctx context.Context, email, password string) (*appwrite.Session, error) {
	if err := s.remotes.Accounts.DeleteCurrentSession(ctx); err != nil {
		s.log.Debug().Err(err).Msg("sign-in: no prior session to discard")
	}

	session, err := s.remotes.Accounts.CreateEmailSession(ctx, email, password)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sign-in rejected")
		if appwrite.IsType(err, appwrite.TypeUserInvalidCreds) {
			return nil, errors.Wrapf(errors.ErrInvalidCredentials, "[Service.SignIn]")
		}
		return nil, errors.Wrapf(err, "[Service.SignIn] create session")
	}

	s.log.Info().Str("accountID", session.UserID).Msg("signed in")
	return session, nil
}

// SignOut deletes the current session. Deleting without a session fails, but
// callers treat that as a reportable rather than fatal condition.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.remotes.Accounts.DeleteCurrentSession(ctx); err != nil {
		if appwrite.IsUnauthorized(err) {
			return errors.Wrapf(errors.ErrNoSession, "[Service.SignOut]")
		}
		return errors.Wrapf(err, "[Service.SignOut] delete session")
	}

	s.log.Info().Msg("signed out")
	return nil
}

// createProfile writes the profile document for an account, with access
// rules restricting all four capabilities to that account.
func (s *Service) createProfile(ctx context.Context, accountID, fullName, email string) error {
	data := map[string]any{
		attrUserID:   accountID,
		attrFullName: fullName,
		attrEmail:    email,
	}
	return s.remotes.Documents.CreateDocument(
		ctx,
		s.databaseID,
		s.profilesCollectionID,
		appwrite.UniqueID(),
		data,
		appwrite.OwnerPermissions(accountID),
	)
}
