package gateway

import (
	"context"
	"encoding/json"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/internal/errors"
)

// CurrentIdentity returns the signed-in account together with its profile
// document. Without an active session it returns ErrNoSession, an expected
// outcome rather than a fault.
//
// An account without a profile (first OAuth sign-in never ran the sign-up
// path) gets one created from the account's own name and email, then the
// canonical document is re-queried. The repair is idempotent: a second call
// finds the document and creates nothing.
func (s *Service) CurrentIdentity(ctx context.Context) (*Identity, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.findProfile(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.CurrentIdentity] lookup profile")
	}

	if profile == nil {
		s.log.Info().Str("accountID", account.ID).Msg("no profile found, creating one")
		if err := s.createProfile(ctx, account.ID, account.Name, account.Email); err != nil {
			return nil, errors.Wrapf(err, "[Service.CurrentIdentity] create profile")
		}
		if profile, err = s.findProfile(ctx, account.ID); err != nil {
			return nil, errors.Wrapf(err, "[Service.CurrentIdentity] re-query profile")
		}
		if profile == nil {
			return nil, errors.Wrapf(errors.ErrDocumentNotFound, "[Service.CurrentIdentity] profile missing after creation")
		}
	}

	return &Identity{Account: account, Profile: profile}, nil
}

// CurrentSession answers the authenticated/unauthenticated question as an
// explicit state rather than a fetch that may or may not fail.
func (s *Service) CurrentSession(ctx context.Context) (SessionState, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrNoSession) {
			return SessionState{Status: StatusUnauthenticated}, nil
		}
		return SessionState{}, err
	}
	return SessionState{Status: StatusAuthenticated, Account: account}, nil
}

func (s *Service) currentAccount(ctx context.Context) (*appwrite.Account, error) {
	account, err := s.remotes.Accounts.Get(ctx)
	if err != nil {
		if appwrite.IsUnauthorized(err) {
			return nil, errors.Wrapf(errors.ErrNoSession, "[Service.currentAccount]")
		}
		return nil, errors.Wrapf(err, "[Service.currentAccount] get account")
	}
	return account, nil
}

// findProfile returns the account's profile document, or nil if none exists.
func (s *Service) findProfile(ctx context.Context, accountID string) (*Profile, error) {
	list, err := s.remotes.Documents.ListDocuments(
		ctx,
		s.databaseID,
		s.profilesCollectionID,
		[]appwrite.Query{appwrite.Equal(attrUserID, accountID)},
	)
	if err != nil {
		return nil, err
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}

	profile := &Profile{}
	if err := json.Unmarshal(list.Documents[0], profile); err != nil {
		return nil, errors.Wrapf(err, "[Service.findProfile] decode document")
	}
	return profile, nil
}
