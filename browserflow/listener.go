// Package browserflow owns the app side of a browser-mediated sign-in: a
// loopback HTTP listener that plays the role of the app's redirect URI, and
// an opener that puts the authorization URL in front of the user.
package browserflow

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

const callbackPath = "/oauth/callback"

// Callback carries the query parameters of the terminal redirect.
type Callback struct {
	Query url.Values
}

// Listener is a one-shot loopback HTTP server. It serves a single callback
// route and delivers the first redirect it receives; later hits get a plain
// 200 and are ignored.
type Listener struct {
	server   *http.Server
	addr     net.Addr
	result   chan Callback
	once     sync.Once
	closeErr error
}

// Listen binds a listener on 127.0.0.1. Port "0" lets the OS choose.
// Cancelling ctx closes the listener.
func Listen(ctx context.Context, port string) (*Listener, error) {
	tcpListener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", port))
	if err != nil {
		return nil, fmt.Errorf("[browserflow.Listen] bind loopback: %w", err)
	}

	listener := &Listener{
		addr:   tcpListener.Addr(),
		result: make(chan Callback, 1),
	}

	router := chi.NewRouter()
	router.Get(callbackPath, listener.handleCallback)
	listener.server = &http.Server{Handler: router}

	go func() {
		_ = listener.server.Serve(tcpListener)
	}()
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	return listener, nil
}

// RedirectURI returns the app-owned URI the remote service should redirect
// the browser to.
func (l *Listener) RedirectURI() string {
	return fmt.Sprintf("http://%s%s", l.addr.String(), callbackPath)
}

// Await blocks until the terminal redirect arrives or ctx is done.
func (l *Listener) Await(ctx context.Context) (Callback, error) {
	select {
	case callback := <-l.result:
		return callback, nil
	case <-ctx.Done():
		return Callback{}, ctx.Err()
	}
}

// Close shuts the listener down. Safe to call more than once.
func (l *Listener) Close() error {
	l.once.Do(func() {
		l.closeErr = l.server.Close()
	})
	return l.closeErr
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	select {
	case l.result <- Callback{Query: r.URL.Query()}:
	default:
		// already delivered, ignore
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<html><body><p>Sign-in received. You can return to the app.</p></body></html>"))
}
