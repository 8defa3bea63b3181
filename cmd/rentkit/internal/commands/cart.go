package commands

import (
	"context"
	"fmt"
	"strings"
)

type CartCmd struct {
	List   CartListCmd   `cmd:"" default:"1" help:"Show the rental cart"`
	Add    CartAddCmd    `cmd:"" help:"Add a product to the cart"`
	Remove CartRemoveCmd `cmd:"" help:"Remove a product from the cart"`
}

type CartListCmd struct{}

func (c *CartListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	items, err := app.API.Cart(ctx)
	if err != nil {
		return app.apiError(err)
	}

	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}

	var total float64
	fmt.Printf("%-6s %-40s %-8s %s\n", "ID", "Title", "Months", "Price")
	fmt.Println(strings.Repeat("─", 65))
	for _, item := range items {
		title := ""
		if item.Product != nil {
			title = item.Product.Title
		}
		fmt.Printf("%-6d %-40s %-8d %.2f\n",
			item.ProductID, truncate(title, 40), item.SelectedMonth, item.SelectedPrice)
		total += item.SelectedPrice
	}
	fmt.Println(strings.Repeat("─", 65))
	fmt.Printf("%55s %.2f\n", "Total", total)

	return nil
}

type CartAddCmd struct {
	ProductID int     `arg:"" help:"Product to add"`
	Months    int     `help:"Rental duration in months" required:""`
	Price     float64 `help:"Price of the chosen rental tier" required:""`
}

func (c *CartAddCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.AddToCart(ctx, c.ProductID, c.Price, c.Months); err != nil {
		return app.apiError(err)
	}

	fmt.Printf("Added product %d to the cart (%d months)\n", c.ProductID, c.Months)
	return nil
}

type CartRemoveCmd struct {
	ProductID int `arg:"" help:"Product to remove"`
}

func (c *CartRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.RemoveFromCart(ctx, c.ProductID); err != nil {
		return app.apiError(err)
	}

	fmt.Printf("Removed product %d from the cart\n", c.ProductID)
	return nil
}
