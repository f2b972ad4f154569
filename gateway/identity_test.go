package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridianapp/identity/gateway"
)

func TestCurrentIdentityReturnsAccountAndProfile(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))

	identity, err := f.service.CurrentIdentity(ctx)
	require.NoError(t, err)
	require.Equal(t, testEmail, identity.Account.Email)
	require.Equal(t, identity.Account.ID, identity.Profile.UserID)
	require.Equal(t, testFullName, identity.Profile.FullName)
	require.Equal(t, testEmail, identity.Profile.Email)
}

func TestCurrentIdentityWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	identity, err := f.service.CurrentIdentity(context.Background())
	require.Nil(t, identity)
	require.ErrorIs(t, err, gateway.ErrNoSession)
}

func TestCurrentIdentitySelfHealingIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	// an OAuth-born account: exists remotely, never ran the sign-up path
	f.accounts.RegisterAccount("oauth-acct-1", "oauth@b.com", "Oauth Ann")
	secret := f.accounts.IssueToken("oauth-acct-1")
	_, err := f.accounts.CreateSessionFromToken(ctx, "oauth-acct-1", secret)
	require.NoError(t, err)

	first, err := f.service.CurrentIdentity(ctx)
	require.NoError(t, err)
	require.Len(t, f.profiles(), 1, "exactly one profile created")
	require.Equal(t, "oauth-acct-1", first.Profile.UserID)
	require.Equal(t, "Oauth Ann", first.Profile.FullName)
	require.Equal(t, "oauth@b.com", first.Profile.Email)

	second, err := f.service.CurrentIdentity(ctx)
	require.NoError(t, err)
	require.Len(t, f.profiles(), 1, "no duplicate profile on the second call")
	require.Equal(t, first.Profile.ID, second.Profile.ID)
}

func TestCurrentSessionStates(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	state, err := f.service.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, gateway.StatusUnauthenticated, state.Status)
	require.False(t, state.Authenticated())
	require.Nil(t, state.Account)

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))

	state, err = f.service.CurrentSession(ctx)
	require.NoError(t, err)
	require.True(t, state.Authenticated())
	require.Equal(t, testEmail, state.Account.Email)

	require.NoError(t, f.service.SignOut(ctx))

	state, err = f.service.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, gateway.StatusUnauthenticated, state.Status)
}

func TestSignUpThenImmediateSignIn(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, "a@b.com", "secret1", "Ann"))

	session, err := f.service.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, 1, f.accounts.ActiveSessionCount())
}
