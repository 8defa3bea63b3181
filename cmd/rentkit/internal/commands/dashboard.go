package commands

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/rentkit/rentkit/internal/api"
	"github.com/rentkit/rentkit/internal/gate"
	httpmiddleware "github.com/rentkit/rentkit/internal/http"
)

// DashboardCmd serves the account dashboard on localhost. The landing page
// is public; everything else sits behind the session gate and renders live
// data from the remote API.
type DashboardCmd struct {
	Listen      string   `help:"HTTP listen address" default:"127.0.0.1:8780" env:"RENTKIT_DASHBOARD_LISTEN"`
	CORSOrigins []string `help:"Allowed CORS origins" default:"http://localhost:3000" env:"RENTKIT_CORS_ORIGINS"`
}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", d.landing(app))

	requireSession := gate.RequireSession(app.Sessions, "/")
	mux.Handle("/dashboard", requireSession(d.dashboard(app)))
	mux.Handle("/profile", requireSession(d.remoteJSON(app, func(ctx context.Context) (any, error) {
		return app.API.ProfileDetails(ctx)
	})))
	mux.Handle("/cart", requireSession(d.remoteJSON(app, func(ctx context.Context) (any, error) {
		return app.API.Cart(ctx)
	})))
	mux.Handle("/wishlist", requireSession(d.remoteJSON(app, func(ctx context.Context) (any, error) {
		return app.API.Wishlist(ctx)
	})))

	handler := httpmiddleware.RequestLogger(log.Logger)(mux)
	handler = cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(handler)

	server := &http.Server{
		Addr:              d.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("listen", d.Listen).Msg("dashboard listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// landing is the unauthenticated root every gated view redirects to.
func (d *DashboardCmd) landing(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		writeJSON(w, map[string]any{
			"service":       "rentkit dashboard",
			"authenticated": app.Sessions.IsAuthenticated() && !app.Sessions.IsTokenExpired(),
		})
	}
}

// dashboard aggregates the signed-in user's account state.
func (d *DashboardCmd) dashboard(app *App) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		profile, err := app.API.ProfileDetails(ctx)
		if err != nil {
			d.remoteError(app, w, r, err)
			return
		}

		cart, err := app.API.Cart(ctx)
		if err != nil {
			d.remoteError(app, w, r, err)
			return
		}

		wishlist, err := app.API.Wishlist(ctx)
		if err != nil {
			d.remoteError(app, w, r, err)
			return
		}

		writeJSON(w, map[string]any{
			"profile":       profile,
			"cartCount":     len(cart),
			"wishlistCount": len(wishlist),
			"accountType":   app.Sessions.AccountType(),
		})
	})
}

// remoteJSON proxies one remote API read as a JSON response.
func (d *DashboardCmd) remoteJSON(app *App, fetch func(context.Context) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := fetch(r.Context())
		if err != nil {
			d.remoteError(app, w, r, err)
			return
		}
		writeJSON(w, payload)
	})
}

// remoteError applies the 401 policy (clear session, back to the landing
// page) and maps everything else to a JSON error response.
func (d *DashboardCmd) remoteError(app *App, w http.ResponseWriter, r *http.Request, err error) {
	if api.IsUnauthorized(err) {
		app.Sessions.Logout()
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg("remote api call failed")

	status := http.StatusBadGateway
	message := "upstream request failed"
	if apiErr, ok := api.AsError(err); ok && apiErr.StatusCode != 0 {
		status = apiErr.StatusCode
		message = apiErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
