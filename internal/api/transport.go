package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rentkit/rentkit/internal/session"
)

// bearerTransport attaches the stored session token to every outgoing
// request. The token is re-read from the session store per request rather
// than cached, so a login or logout elsewhere in the process takes effect
// on the very next call. Public endpoints are not special-cased: the
// header is attached whenever a token exists.
type bearerTransport struct {
	store session.Store
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	req = req.Clone(req.Context())

	if token, ok := t.store.Get(session.KeyToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	return t.next.RoundTrip(req)
}
