package commands

import (
	"context"
	"fmt"
	"strings"
)

type WishlistCmd struct {
	List   WishlistListCmd   `cmd:"" default:"1" help:"Show the wishlist"`
	Add    WishlistAddCmd    `cmd:"" help:"Save a product to the wishlist"`
	Remove WishlistRemoveCmd `cmd:"" help:"Remove a product from the wishlist"`
}

type WishlistListCmd struct{}

func (w *WishlistListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	items, err := app.API.Wishlist(ctx)
	if err != nil {
		return app.apiError(err)
	}

	if len(items) == 0 {
		fmt.Println("Wishlist is empty.")
		return nil
	}

	fmt.Printf("%-6s %-40s %s\n", "ID", "Title", "Added")
	fmt.Println(strings.Repeat("─", 60))
	for _, item := range items {
		title := ""
		if item.Product != nil {
			title = item.Product.Title
		}
		fmt.Printf("%-6d %-40s %s\n",
			item.ID, truncate(title, 40), item.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

type WishlistAddCmd struct {
	ProductID int `arg:"" help:"Product to save"`
}

func (w *WishlistAddCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.AddToWishlist(ctx, w.ProductID); err != nil {
		return app.apiError(err)
	}

	fmt.Printf("Saved product %d to the wishlist\n", w.ProductID)
	return nil
}

type WishlistRemoveCmd struct {
	ProductID int `arg:"" help:"Product to remove"`
}

func (w *WishlistRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.RemoveFromWishlist(ctx, w.ProductID); err != nil {
		return app.apiError(err)
	}

	fmt.Printf("Removed product %d from the wishlist\n", w.ProductID)
	return nil
}
