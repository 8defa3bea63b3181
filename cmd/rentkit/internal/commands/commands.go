package commands

import (
	"errors"
	"fmt"

	"github.com/rentkit/rentkit/internal/api"
	"github.com/rentkit/rentkit/internal/config"
	"github.com/rentkit/rentkit/internal/session"
)

type Globals struct {
	Debug      bool
	Version    string
	APIURL     string
	Config     string
	CacheDir   string
	SessionDir string
}

// ErrNotLoggedIn is returned by gated commands when no usable session
// exists.
var ErrNotLoggedIn = errors.New("not logged in (run 'rentkit login')")

// App is the composition root shared by all commands: one session manager
// and one API client over the same session store.
type App struct {
	Sessions *session.Manager
	API      *api.Client
}

// newApp wires the session store, session manager and API client from
// flags, environment and the optional config file. Flags win over the
// config file; built-in defaults fill the rest.
func (g *Globals) newApp() (*App, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	store, err := session.NewFileStore(firstOf(g.SessionDir, cfg.SessionDir))
	if err != nil {
		return nil, err
	}

	apiCfg := api.DefaultConfig()
	apiCfg.Debug = g.Debug
	apiCfg.CacheDir = firstOf(g.CacheDir, cfg.CacheDir)
	if u := firstOf(g.APIURL, cfg.BaseURL); u != "" {
		apiCfg.BaseURL = u
	}

	client, err := api.New(apiCfg, store)
	if err != nil {
		return nil, err
	}

	return &App{
		Sessions: session.NewManager(store, 0),
		API:      client,
	}, nil
}

// requireSession guards gated commands: it consults the store-backed
// expiry check, not just the in-memory flag.
func (a *App) requireSession() error {
	if a.Sessions.IsTokenExpired() {
		return ErrNotLoggedIn
	}
	return nil
}

// apiError applies the one 401 policy used everywhere: a rejected token
// clears the local session and asks the user to log in again. Every other
// error passes through with its normalized message.
func (a *App) apiError(err error) error {
	if api.IsUnauthorized(err) {
		a.Sessions.Logout()
		return fmt.Errorf("session rejected by the server, please log in again: %w", err)
	}
	return err
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
