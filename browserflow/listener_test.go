package browserflow_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridianapp/identity/browserflow"
)

func TestListenerDeliversCallbackParams(t *testing.T) {
	ctx := context.Background()

	listener, err := browserflow.Listen(ctx, "0")
	require.NoError(t, err)
	defer listener.Close()

	uri := listener.RedirectURI()
	require.Contains(t, uri, "http://127.0.0.1:")
	require.Contains(t, uri, "/oauth/callback")

	resp, err := http.Get(uri + "?secret=one-time&userId=acct-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	awaitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	callback, err := listener.Await(awaitCtx)
	require.NoError(t, err)
	require.Equal(t, "one-time", callback.Query.Get("secret"))
	require.Equal(t, "acct-1", callback.Query.Get("userId"))
}

func TestListenerIgnoresSecondRedirect(t *testing.T) {
	ctx := context.Background()

	listener, err := browserflow.Listen(ctx, "0")
	require.NoError(t, err)
	defer listener.Close()

	for _, userID := range []string{"first", "second"} {
		resp, err := http.Get(listener.RedirectURI() + "?userId=" + userID)
		require.NoError(t, err)
		resp.Body.Close()
	}

	awaitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	callback, err := listener.Await(awaitCtx)
	require.NoError(t, err)
	require.Equal(t, "first", callback.Query.Get("userId"))
}

func TestAwaitHonorsCancellation(t *testing.T) {
	listener, err := browserflow.Listen(context.Background(), "0")
	require.NoError(t, err)
	defer listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = listener.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestContextCancellationClosesListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	listener, err := browserflow.Listen(ctx, "0")
	require.NoError(t, err)
	uri := listener.RedirectURI()

	cancel()
	require.Eventually(t, func() bool {
		_, err := http.Get(uri)
		return err != nil
	}, 2*time.Second, 50*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	listener, err := browserflow.Listen(context.Background(), "0")
	require.NoError(t, err)

	require.NoError(t, listener.Close())
	require.NoError(t, listener.Close())
}
