// Package gate guards routes that must only render for a live session.
package gate

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rentkit/rentkit/internal/session"
)

// RequireSession is a middleware that protects routes by requiring an
// authenticated, non-expired session. The check runs on every request:
// both the in-memory flag and the store-backed expiry are consulted, so a
// session that expired while a view was open is caught on the next hit.
// Anonymous or expired visitors are redirected to redirectURL instead of
// seeing the protected content.
func RequireSession(mgr *session.Manager, redirectURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mgr.IsAuthenticated() || mgr.IsTokenExpired() {
				log.Debug().Str("path", r.URL.Path).Msg("no usable session, redirecting")
				http.Redirect(w, r, redirectURL, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
