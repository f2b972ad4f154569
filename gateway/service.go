// Package gateway is the identity façade the application's screens call
// into: credential sign-up/sign-in, the OAuth browser handshake, profile
// reconciliation, and sign-out against the remote identity service.
package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridianapp/identity/browserflow"
	"github.com/meridianapp/identity/internal/errors"
)

// RedirectListener awaits the terminal redirect of a browser-mediated
// sign-in. browserflow.Listener is the production implementation.
type RedirectListener interface {
	// RedirectURI is the app-owned URI the remote service redirects to.
	RedirectURI() string

	// Await blocks until the terminal redirect arrives or ctx is done.
	Await(ctx context.Context) (browserflow.Callback, error)

	// Close releases the listener. Safe to call after Await.
	Close() error
}

// Service is the identity gateway. It holds no session state of its own;
// "authenticated" is whatever the remote service reports.
type Service struct {
	remotes              Remotes
	databaseID           string
	profilesCollectionID string

	log      zerolog.Logger
	nowTime  func() time.Time
	openURL  browserflow.Opener
	listener func(ctx context.Context) (RedirectListener, error)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLogger sets the gateway logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithBrowser sets the function used to open a URL in the user's browser.
func WithBrowser(open browserflow.Opener) ServiceOption {
	return func(s *Service) {
		s.openURL = open
	}
}

// WithRedirectListener sets the factory for the redirect listener used by the
// manual OAuth token handshake.
func WithRedirectListener(factory func(ctx context.Context) (RedirectListener, error)) ServiceOption {
	return func(s *Service) {
		s.listener = factory
	}
}

// New initializes a Service with required dependencies. Every remote handle
// and identifier is checked up front; using the gateway without them is a
// programming error, not a runtime condition.
func New(remotes Remotes, databaseID, profilesCollectionID string, options ...ServiceOption) (*Service, error) {
	if remotes.Accounts == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[gateway.New] Accounts remote is required")
	}
	if remotes.Documents == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[gateway.New] Documents remote is required")
	}
	if strings.TrimSpace(databaseID) == "" {
		return nil, errors.Wrapf(errors.ErrInternal, "[gateway.New] databaseID is required")
	}
	if strings.TrimSpace(profilesCollectionID) == "" {
		return nil, errors.Wrapf(errors.ErrInternal, "[gateway.New] profilesCollectionID is required")
	}

	service := &Service{
		remotes:              remotes,
		databaseID:           databaseID,
		profilesCollectionID: profilesCollectionID,
		log:                  zerolog.Nop(),
		nowTime:              time.Now,
		openURL:              browserflow.OpenSystemBrowser,
		listener: func(ctx context.Context) (RedirectListener, error) {
			return browserflow.Listen(ctx, "0")
		},
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}
