package gate

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentkit/rentkit/internal/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()

	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return session.NewManager(store, 0)
}

func gatedHandler(t *testing.T, mgr *session.Manager, rendered *bool) http.Handler {
	t.Helper()

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*rendered = true
		w.Write([]byte("dashboard"))
	})

	return RequireSession(mgr, "/")(protected)
}

func TestRequireSession(t *testing.T) {
	t.Run("redirects anonymous visitors to the root", func(t *testing.T) {
		mgr := newManager(t)

		var rendered bool
		handler := gatedHandler(t, mgr, &rendered)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, rendered, "protected content must never render for anonymous visitors")
	})

	t.Run("renders for a live session", func(t *testing.T) {
		mgr := newManager(t)
		mgr.Login("tkn", "user")

		var rendered bool
		handler := gatedHandler(t, mgr, &rendered)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dashboard", rec.Body.String())
		assert.True(t, rendered)
	})

	t.Run("catches a session that expired after login", func(t *testing.T) {
		store, err := session.NewFileStore(t.TempDir())
		require.NoError(t, err)

		mgr := session.NewManager(store, 0)
		mgr.Login("tkn", "user")

		// Rewrite the stored expiry into the past; the in-memory flag
		// still says authenticated.
		past := time.Now().Add(-time.Minute).UnixMilli()
		require.NoError(t, store.Set(session.KeyExpiration, strconv.FormatInt(past, 10)))
		require.True(t, mgr.IsAuthenticated())

		var rendered bool
		handler := gatedHandler(t, mgr, &rendered)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, rendered)

		// Observing the expiry also destroyed the session
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("checks every request, not just the first", func(t *testing.T) {
		mgr := newManager(t)
		mgr.Login("tkn", "user")

		var rendered bool
		handler := gatedHandler(t, mgr, &rendered)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		mgr.Logout()

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}
