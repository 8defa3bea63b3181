package session

import (
	"crypto/sha256"
	"strconv"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"
)

// DefaultTTL is the client-side session lifetime applied on login and
// signup. It is a fixed client assumption: no server-provided expiry is
// consulted, so it may drift from the real lifetime of the server token.
const DefaultTTL = 1 * time.Hour

// Manager owns the authentication lifecycle: it issues sessions on
// login/signup, destroys them on logout, and is the sole authority for
// whether the current session is usable.
//
// A single Manager is shared process-wide. The backing Store is also
// visible to other processes using the same session directory; there is no
// change notification between them, so another process's logout is only
// observed here on the next IsTokenExpired call.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu            sync.Mutex
	authToken     string
	accountType   string
	authenticated bool
}

// NewManager creates a session manager over store and normalizes startup
// state: an absent or expired session is cleared, a live one is hydrated
// into memory. A ttl of zero or less selects DefaultTTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}

	if m.IsTokenExpired() {
		m.Logout()
	} else {
		m.hydrate()
	}

	return m
}

// Login records a new session for token. It fully overwrites any prior
// session; the expiry is always now+TTL regardless of what the server
// encoded in the token. The caller obtains the token from the remote API
// first; no network call happens here.
func (m *Manager) Login(token, accountType string) {
	expiresAt := m.now().Add(m.ttl).UnixMilli()

	// Not atomic across keys; see the Store contract. All writers run from
	// serialized user actions, so no true concurrent writer exists.
	if err := m.store.Set(KeyToken, token); err != nil {
		log.Warn().Err(err).Msg("failed to persist session token")
	}
	if err := m.store.Set(KeyExpiration, strconv.FormatInt(expiresAt, 10)); err != nil {
		log.Warn().Err(err).Msg("failed to persist session expiry")
	}
	if err := m.store.Set(KeyAccountType, accountType); err != nil {
		log.Warn().Err(err).Msg("failed to persist account type")
	}

	m.mu.Lock()
	m.authToken = token
	m.accountType = accountType
	m.authenticated = true
	m.mu.Unlock()

	log.Info().
		Str("fingerprint", Fingerprint(token)).
		Str("accountType", accountType).
		Int64("expiresAt", expiresAt).
		Msg("session created")
}

// Signup records a session obtained from registration. Same contract as
// Login; kept as its own entry point so call sites read naturally.
func (m *Manager) Signup(token, accountType string) {
	m.Login(token, accountType)
}

// Logout destroys the session, removing the token and expiry together so
// neither can outlive the other. Idempotent: logging out while logged out
// is a no-op.
func (m *Manager) Logout() {
	if err := m.store.Remove(KeyToken); err != nil {
		log.Warn().Err(err).Msg("failed to remove session token")
	}
	if err := m.store.Remove(KeyExpiration); err != nil {
		log.Warn().Err(err).Msg("failed to remove session expiry")
	}
	if err := m.store.Remove(KeyAccountType); err != nil {
		log.Warn().Err(err).Msg("failed to remove account type")
	}

	m.mu.Lock()
	wasAuthenticated := m.authenticated
	m.authToken = ""
	m.accountType = ""
	m.authenticated = false
	m.mu.Unlock()

	if wasAuthenticated {
		log.Info().Msg("session destroyed")
	}
}

// IsTokenExpired reports whether the current session is unusable. It reads
// the token and expiry from the Store on every call rather than trusting
// the in-memory flag, since the store may have been mutated elsewhere.
// Returns true if either value is absent or malformed, or if the expiry
// has passed. The first call that observes an expired token also clears
// the session so subsequent checks are consistent.
func (m *Manager) IsTokenExpired() bool {
	token, ok := m.store.Get(KeyToken)
	if !ok || token == "" {
		return true
	}

	raw, ok := m.store.Get(KeyExpiration)
	if !ok {
		return true
	}

	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn().Str("tokenExpiration", raw).Msg("malformed session expiry, treating as expired")
		m.Logout()
		return true
	}

	if m.now().UnixMilli() > expiresAt {
		log.Debug().
			Str("fingerprint", Fingerprint(token)).
			Int64("expiresAt", expiresAt).
			Msg("session expired")
		m.Logout()
		return true
	}

	return false
}

// IsAuthenticated reports the in-memory authentication flag. UI state keys
// off this value; gated decisions must also consult IsTokenExpired.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Token returns the in-memory bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authToken
}

// AccountType returns the account classification for the current session,
// or "" when logged out.
func (m *Manager) AccountType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accountType
}

// hydrate loads a live session from the store into memory.
func (m *Manager) hydrate() {
	token, ok := m.store.Get(KeyToken)
	if !ok || token == "" {
		return
	}
	accountType, _ := m.store.Get(KeyAccountType)

	m.mu.Lock()
	m.authToken = token
	m.accountType = accountType
	m.authenticated = true
	m.mu.Unlock()

	log.Debug().Str("fingerprint", Fingerprint(token)).Msg("session hydrated")
}

// Fingerprint returns a short identifier for a token that is safe to log.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	return base58.Encode(hash[:])[:8]
}
