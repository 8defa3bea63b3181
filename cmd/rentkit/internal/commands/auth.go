package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentkit/rentkit/internal/session"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:"" env:"RENTKIT_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	result, err := app.API.Login(ctx, l.Email, l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	app.Sessions.Login(result.Token, result.AccountType)

	fmt.Printf("Logged in as %s (%s)\n", l.Email, result.AccountType)
	return nil
}

type RegisterCmd struct {
	Name     string `help:"Full name" required:""`
	Email    string `help:"Account email" required:""`
	Phone    string `help:"Phone number" required:""`
	Password string `help:"Account password" required:"" env:"RENTKIT_PASSWORD"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	result, err := app.API.Register(ctx, r.Name, r.Email, r.Phone, r.Password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	app.Sessions.Signup(result.Token, result.AccountType)

	fmt.Printf("Account created, logged in as %s (%s)\n", r.Email, result.AccountType)
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	// Idempotent: logging out while logged out is fine
	app.Sessions.Logout()

	fmt.Println("Logged out")
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	if app.Sessions.IsTokenExpired() {
		fmt.Println("Not logged in")
		return nil
	}

	token := app.Sessions.Token()

	fmt.Printf("Account type: %s\n", app.Sessions.AccountType())
	fmt.Printf("Token:        %s\n", session.Fingerprint(token))

	// When the server issues JWTs, show what it put in them. The token is
	// opaque to the session layer, so an unparsable token is fine.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			fmt.Printf("Subject:      %s\n", sub)
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			fmt.Printf("Server expiry: %s\n", exp.Format(time.RFC3339))
		}
	}

	return nil
}
