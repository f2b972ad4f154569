package appwrite

import (
	"context"
	"net/http"
	"net/url"
)

// Provider names an OAuth identity provider supported by the remote service.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
	ProviderApple    Provider = "apple"
)

// Accounts exposes the account/session surface of the remote service.
type Accounts struct {
	client *Client
}

// Create registers a new account with the given identifier and credentials.
// The name is optional and may be empty.
func (a *Accounts) Create(ctx context.Context, id, email, password, name string) (*Account, error) {
	body := map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
	}
	if name != "" {
		body["name"] = name
	}

	account := &Account{}
	if err := a.client.call(ctx, http.MethodPost, "/account", nil, body, account); err != nil {
		return nil, err
	}
	return account, nil
}

// CreateEmailSession exchanges credentials for a session and makes it the
// client's current session.
func (a *Accounts) CreateEmailSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	session := &Session{}
	if err := a.client.call(ctx, http.MethodPost, "/account/sessions/email", nil, body, session); err != nil {
		return nil, err
	}
	a.client.SetSession(session.Secret)
	return session, nil
}

// DeleteCurrentSession invalidates the current session on the server and
// clears the client's in-memory secret.
func (a *Accounts) DeleteCurrentSession(ctx context.Context) error {
	if err := a.client.call(ctx, http.MethodDelete, "/account/sessions/current", nil, nil, nil); err != nil {
		return err
	}
	a.client.SetSession("")
	return nil
}

// Get fetches the account behind the current session. Without a session the
// service answers 401, which IsUnauthorized recognises.
func (a *Accounts) Get(ctx context.Context) (*Account, error) {
	account := &Account{}
	if err := a.client.call(ctx, http.MethodGet, "/account", nil, nil, account); err != nil {
		return nil, err
	}
	return account, nil
}

// CreateJWT issues a short-lived JWT bound to the current session.
func (a *Accounts) CreateJWT(ctx context.Context) (*JWT, error) {
	jwt := &JWT{}
	if err := a.client.call(ctx, http.MethodPost, "/account/jwts", nil, nil, jwt); err != nil {
		return nil, err
	}
	return jwt, nil
}

// OAuth2SessionURL builds the URL that hands the whole redirect cycle to the
// remote service. Opening it in a browser starts the delegated flow; the
// service redirects to success or failure when done.
func (a *Accounts) OAuth2SessionURL(provider Provider, success, failure string) string {
	return a.oauth2URL("/account/sessions/oauth2/", provider, success, failure)
}

// OAuth2TokenURL builds the URL for the manual token handshake. The terminal
// redirect carries "secret" and "userId" query parameters that
// CreateSessionFromToken redeems.
func (a *Accounts) OAuth2TokenURL(provider Provider, success, failure string) string {
	return a.oauth2URL("/account/tokens/oauth2/", provider, success, failure)
}

func (a *Accounts) oauth2URL(basePath string, provider Provider, success, failure string) string {
	query := url.Values{}
	query.Set("project", a.client.project)
	if success != "" {
		query.Set("success", success)
	}
	if failure != "" {
		query.Set("failure", failure)
	}
	return a.client.endpointURL(basePath+url.PathEscape(string(provider)), query)
}

// CreateSessionFromToken exchanges a one-time secret and user identifier,
// delivered by the OAuth redirect, for a session. The session becomes the
// client's current session.
func (a *Accounts) CreateSessionFromToken(ctx context.Context, userID, secret string) (*Session, error) {
	body := map[string]string{
		"userId": userID,
		"secret": secret,
	}

	session := &Session{}
	if err := a.client.call(ctx, http.MethodPut, "/account/sessions/token", nil, body, session); err != nil {
		return nil, err
	}
	a.client.SetSession(session.Secret)
	return session, nil
}
