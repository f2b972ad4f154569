package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridianapp/identity/gateway"
	"github.com/meridianapp/identity/gateway/gatewayfakes"
)

const (
	testDatabaseID   = "app-users"
	testCollectionID = "profiles"
	testEmail        = "a@b.com"
	testPassword     = "secret1"
	testFullName     = "Ann"
)

// testFixture holds the gateway under test and its fake remotes.
type testFixture struct {
	accounts  *gatewayfakes.FakeAccountService
	documents *gatewayfakes.FakeDocumentStore
	service   *gateway.Service
}

func setupTestFixture(t *testing.T, options ...gateway.ServiceOption) *testFixture {
	t.Helper()

	accounts := gatewayfakes.NewFakeAccountService()
	documents := gatewayfakes.NewFakeDocumentStore()

	service, err := gateway.New(
		gateway.Remotes{Accounts: accounts, Documents: documents},
		testDatabaseID,
		testCollectionID,
		options...,
	)
	require.NoError(t, err)

	return &testFixture{accounts: accounts, documents: documents, service: service}
}

func (f *testFixture) profiles() []gatewayfakes.StoredDocument {
	return f.documents.Documents(testDatabaseID, testCollectionID)
}

func TestNewRequiresDependencies(t *testing.T) {
	accounts := gatewayfakes.NewFakeAccountService()
	documents := gatewayfakes.NewFakeDocumentStore()

	_, err := gateway.New(gateway.Remotes{Documents: documents}, testDatabaseID, testCollectionID)
	require.Error(t, err)

	_, err = gateway.New(gateway.Remotes{Accounts: accounts}, testDatabaseID, testCollectionID)
	require.Error(t, err)

	_, err = gateway.New(gateway.Remotes{Accounts: accounts, Documents: documents}, "", testCollectionID)
	require.Error(t, err)

	_, err = gateway.New(gateway.Remotes{Accounts: accounts, Documents: documents}, testDatabaseID, "")
	require.Error(t, err)
}

func TestSignUpCreatesAccountSessionAndProfile(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))

	require.True(t, f.accounts.HasCurrentSession(), "sign-up implies sign-in")
	require.Equal(t, 1, f.accounts.ActiveSessionCount())

	profiles := f.profiles()
	require.Len(t, profiles, 1)

	profile := profiles[0]
	require.Equal(t, testFullName, profile.Data["fullName"])
	require.Equal(t, testEmail, profile.Data["email"])

	accountID, ok := profile.Data["userId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, accountID)

	ownerRole := `"user:` + accountID + `"`
	require.ElementsMatch(t, []string{
		"read(" + ownerRole + ")",
		"write(" + ownerRole + ")",
		"update(" + ownerRole + ")",
		"delete(" + ownerRole + ")",
	}, profile.Permissions)
}

func TestSignUpDuplicateEmailFails(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))
	sessionsBefore := f.accounts.ActiveSessionCount()

	err := f.service.SignUp(ctx, testEmail, "another1", "Impostor")
	require.ErrorIs(t, err, gateway.ErrAccountExists)

	require.Len(t, f.profiles(), 1, "no second profile on rejected sign-up")
	require.Equal(t, sessionsBefore, f.accounts.ActiveSessionCount())
}

func TestSignUpProfileFailureLeavesAccountAndSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.documents.FailCreate = true
	err := f.service.SignUp(ctx, testEmail, testPassword, testFullName)
	require.Error(t, err)

	// the account and session survive the failed profile write
	require.True(t, f.accounts.HasCurrentSession())
	require.Empty(t, f.profiles())

	// the self-healing lookup repairs the missing profile
	f.documents.FailCreate = false
	identity, err := f.service.CurrentIdentity(ctx)
	require.NoError(t, err)
	require.Len(t, f.profiles(), 1)
	require.Equal(t, identity.Account.ID, identity.Profile.UserID)
}

func TestSignInDiscardsPriorSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))
	require.Equal(t, 1, f.accounts.ActiveSessionCount())

	session, err := f.service.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, 1, f.accounts.ActiveSessionCount(), "prior session must be discarded first")
}

func TestSignInWithoutPriorSessionSucceeds(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))
	require.NoError(t, f.service.SignOut(ctx))

	// absence of a session to discard is not an error for sign-in
	session, err := f.service.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, 1, f.accounts.ActiveSessionCount())
	require.NotEmpty(t, session.UserID)
}

func TestSignInWrongPasswordFails(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))

	session, err := f.service.SignIn(ctx, testEmail, "wrongpw")
	require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	require.Nil(t, session)
	require.False(t, f.accounts.HasCurrentSession())
}

func TestSignOutWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.SignOut(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, gateway.ErrNoSession)
}

func TestSignOutDeletesSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SignUp(ctx, testEmail, testPassword, testFullName))
	require.NoError(t, f.service.SignOut(ctx))
	require.False(t, f.accounts.HasCurrentSession())
	require.Equal(t, 0, f.accounts.ActiveSessionCount())
}
