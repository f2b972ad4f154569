// Package appwrite is a minimal REST client for the Appwrite-compatible
// identity and document service consumed by the gateway. It covers only the
// surface this application uses: account/session management, the OAuth2
// redirect and token flows, and collection documents.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	projectHeader = "X-Appwrite-Project"
	sessionHeader = "X-Appwrite-Session"

	defaultTimeout = 30 * time.Second
)

// Client is an explicitly constructed handle on the remote service. It holds
// the endpoint, project identifier, and the current session secret; nothing
// else is cached locally. Constructing any number of clients is safe; each is
// independently usable.
type Client struct {
	endpoint   string
	project    string
	httpClient *http.Client
	log        zerolog.Logger

	mu      sync.RWMutex
	session string // current session secret, in memory only
}

// ClientOption configures optional Client behaviour.
type ClientOption func(*Client)

// WithHTTPClient replaces the transport. Timeouts are owned by the transport,
// the client itself imposes none.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client for the given endpoint (e.g.
// "https://cloud.appwrite.io/v1") and project identifier.
func NewClient(endpoint, project string, options ...ClientOption) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("[NewClient] endpoint is required")
	}
	if strings.TrimSpace(project) == "" {
		return nil, fmt.Errorf("[NewClient] project is required")
	}

	client := &Client{
		endpoint:   endpoint,
		project:    project,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// Accounts returns the account service bound to this client.
func (c *Client) Accounts() *Accounts {
	return &Accounts{client: c}
}

// Databases returns the document service bound to this client.
func (c *Client) Databases() *Databases {
	return &Databases{client: c}
}

// SetSession replaces the current session secret. An empty string clears it.
func (c *Client) SetSession(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = secret
}

// Session returns the current in-memory session secret.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Endpoint returns the configured base API URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Project returns the configured project identifier.
func (c *Client) Project() string {
	return c.project
}

// endpointURL builds a full URL for the given API path and query values.
func (c *Client) endpointURL(path string, query url.Values) string {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// call performs a single JSON request. Every call is attempted exactly once;
// retries are the caller's decision. A non-2xx response is decoded into
// *Error.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Client.call] encode body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path, query), reqBody)
	if err != nil {
		return fmt.Errorf("[Client.call] new request: %w", err)
	}
	req.Header.Set(projectHeader, c.project)
	req.Header.Set("Content-Type", "application/json")
	if session := c.Session(); session != "" {
		req.Header.Set(sessionHeader, session)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("remote call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[Client.call] decode response: %w", err)
	}
	return nil
}
