// Package gatewayfakes provides in-memory stand-ins for the remote identity
// service, close enough in behaviour (credential hashing, one-time tokens,
// typed service errors) to exercise the gateway end to end.
package gatewayfakes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/gateway"
)

var _ gateway.AccountService = (*FakeAccountService)(nil)

const fakeEndpoint = "https://identity.fake.local/v1"

var jwtSigningKey = []byte("gatewayfakes-signing-key")

type fakeAccount struct {
	account      appwrite.Account
	passwordHash string
}

// FakeAccountService is an in-memory account/session service.
type FakeAccountService struct {
	lock     sync.Mutex
	accounts map[string]*fakeAccount // account ID -> account
	emailIDs map[string]string       // email -> account ID
	sessions map[string]*appwrite.Session
	current  string            // current session ID, "" when signed out
	tokens   map[string]string // one-time secret -> account ID
}

func NewFakeAccountService() *FakeAccountService {
	return &FakeAccountService{
		accounts: make(map[string]*fakeAccount),
		emailIDs: make(map[string]string),
		sessions: make(map[string]*appwrite.Session),
		tokens:   make(map[string]string),
	}
}

func (f *FakeAccountService) Create(_ context.Context, id, email, password, name string) (*appwrite.Account, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, exists := f.emailIDs[email]; exists {
		return nil, &appwrite.Error{
			Code:    http.StatusConflict,
			Type:    appwrite.TypeUserAlreadyExists,
			Message: "A user with the same email already exists in this project.",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := appwrite.Account{
		ID:        id,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Email:     email,
		Name:      name,
	}
	f.accounts[id] = &fakeAccount{account: account, passwordHash: string(hash)}
	f.emailIDs[email] = id

	created := account
	return &created, nil
}

func (f *FakeAccountService) CreateEmailSession(_ context.Context, email, password string) (*appwrite.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	accountID, ok := f.emailIDs[email]
	if !ok {
		return nil, invalidCredentialsErr()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(f.accounts[accountID].passwordHash), []byte(password)); err != nil {
		return nil, invalidCredentialsErr()
	}

	return f.newSessionLocked(accountID, "email"), nil
}

func (f *FakeAccountService) DeleteCurrentSession(_ context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.current == "" {
		return &appwrite.Error{
			Code:    http.StatusUnauthorized,
			Type:    appwrite.TypeUserSessionNotFound,
			Message: "Session with the requested ID could not be found.",
		}
	}
	delete(f.sessions, f.current)
	f.current = ""
	return nil
}

func (f *FakeAccountService) Get(_ context.Context) (*appwrite.Account, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	session, ok := f.sessions[f.current]
	if f.current == "" || !ok {
		return nil, noSessionErr()
	}

	account := f.accounts[session.UserID].account
	return &account, nil
}

func (f *FakeAccountService) CreateJWT(_ context.Context) (*appwrite.JWT, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	session, ok := f.sessions[f.current]
	if f.current == "" || !ok {
		return nil, noSessionErr()
	}

	claims := jwt.MapClaims{
		"userId":    session.UserID,
		"sessionId": session.ID,
		"exp":       time.Now().Add(15 * time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSigningKey)
	if err != nil {
		return nil, err
	}
	return &appwrite.JWT{Token: signed}, nil
}

func (f *FakeAccountService) OAuth2SessionURL(provider appwrite.Provider, success, failure string) string {
	return f.oauth2URL("sessions", provider, success, failure)
}

func (f *FakeAccountService) OAuth2TokenURL(provider appwrite.Provider, success, failure string) string {
	return f.oauth2URL("tokens", provider, success, failure)
}

func (f *FakeAccountService) oauth2URL(kind string, provider appwrite.Provider, success, failure string) string {
	query := url.Values{}
	if success != "" {
		query.Set("success", success)
	}
	if failure != "" {
		query.Set("failure", failure)
	}
	return fmt.Sprintf("%s/account/%s/oauth2/%s?%s", fakeEndpoint, kind, provider, query.Encode())
}

func (f *FakeAccountService) CreateSessionFromToken(_ context.Context, userID, secret string) (*appwrite.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	tokenUserID, ok := f.tokens[secret]
	if !ok || tokenUserID != userID {
		return nil, &appwrite.Error{
			Code:    http.StatusUnauthorized,
			Type:    "user_invalid_token",
			Message: "Invalid token passed in the request.",
		}
	}
	delete(f.tokens, secret) // one-time

	return f.newSessionLocked(userID, "oauth2"), nil
}

// RegisterAccount seeds an account directly, as if it had signed up through
// another client or an OAuth provider.
func (f *FakeAccountService) RegisterAccount(id, email, name string) {
	f.lock.Lock()
	defer f.lock.Unlock()

	account := appwrite.Account{ID: id, Email: email, Name: name}
	f.accounts[id] = &fakeAccount{account: account}
	f.emailIDs[email] = id
}

// IssueToken mints a one-time secret redeemable for a session, standing in
// for the provider leg of the OAuth handshake.
func (f *FakeAccountService) IssueToken(accountID string) string {
	f.lock.Lock()
	defer f.lock.Unlock()

	secret := appwrite.UniqueID()
	f.tokens[secret] = accountID
	return secret
}

// ActiveSessionCount reports how many sessions exist on the fake server.
func (f *FakeAccountService) ActiveSessionCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.sessions)
}

// HasCurrentSession reports whether a session is current.
func (f *FakeAccountService) HasCurrentSession() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.current != ""
}

func (f *FakeAccountService) newSessionLocked(accountID, provider string) *appwrite.Session {
	session := &appwrite.Session{
		ID:       appwrite.UniqueID(),
		UserID:   accountID,
		Secret:   appwrite.UniqueID(),
		Provider: provider,
		Expire:   time.Now().Add(365 * 24 * time.Hour).UTC().Format(time.RFC3339),
	}
	f.sessions[session.ID] = session
	f.current = session.ID

	copied := *session
	return &copied
}

func invalidCredentialsErr() error {
	return &appwrite.Error{
		Code:    http.StatusUnauthorized,
		Type:    appwrite.TypeUserInvalidCreds,
		Message: "Invalid credentials. Please check the email and password.",
	}
}

func noSessionErr() error {
	return &appwrite.Error{
		Code:    http.StatusUnauthorized,
		Type:    appwrite.TypeGeneralUnauthorized,
		Message: "User (role: guests) missing scope (account)",
	}
}
