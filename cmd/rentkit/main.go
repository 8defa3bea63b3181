package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/rentkit/rentkit/cmd/rentkit/internal/commands"
	"github.com/rentkit/rentkit/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login     commands.LoginCmd     `cmd:"" help:"Log in to the storefront"`
		Register  commands.RegisterCmd  `cmd:"" help:"Create an account and log in"`
		Logout    commands.LogoutCmd    `cmd:"" help:"Destroy the local session"`
		Whoami    commands.WhoamiCmd    `cmd:"" help:"Show the current session"`
		Catalog   commands.CatalogCmd   `cmd:"" help:"Browse categories, products, offers and benefits"`
		Cart      commands.CartCmd      `cmd:"" help:"Manage the rental cart"`
		Wishlist  commands.WishlistCmd  `cmd:"" help:"Manage the wishlist"`
		Profile   commands.ProfileCmd   `cmd:"" help:"View and edit the account profile"`
		Dashboard commands.DashboardCmd `cmd:"" help:"Serve the local account dashboard"`

		APIURL     string `help:"Storefront API base URL." env:"RENTKIT_API_URL"`
		Config     string `help:"Path to the config file." env:"RENTKIT_CONFIG"`
		CacheDir   string `help:"Directory for the persistent catalog cache." env:"RENTKIT_CACHE_DIR"`
		SessionDir string `help:"Directory for persisted session state." env:"RENTKIT_SESSION_DIR"`
		Debug      bool   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		APIURL:     cli.APIURL,
		Config:     cli.Config,
		CacheDir:   cli.CacheDir,
		SessionDir: cli.SessionDir,
	})
	cmd.FatalIfErrorf(err)
}
