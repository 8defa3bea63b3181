package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentkit/rentkit/internal/api"
)

type CatalogCmd struct {
	Categories CatalogCategoriesCmd `cmd:"" help:"List product categories"`
	Products   CatalogProductsCmd   `cmd:"" help:"List products in a category"`
	Show       CatalogShowCmd       `cmd:"" help:"Show a single product"`
	Offers     CatalogOffersCmd     `cmd:"" help:"List promotional offers"`
	Benefits   CatalogBenefitsCmd   `cmd:"" help:"List storefront benefits"`
}

type CatalogCategoriesCmd struct {
	All bool `help:"Include inactive categories" default:"false"`
}

func (c *CatalogCategoriesCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	subcategories, err := app.API.Subcategories(ctx)
	if err != nil {
		return app.apiError(err)
	}

	fmt.Printf("%-6s %-30s %s\n", "ID", "Name", "Status")
	fmt.Println(strings.Repeat("─", 50))
	for _, sub := range subcategories {
		if !c.All && !sub.Active() {
			continue
		}
		fmt.Printf("%-6d %-30s %s\n", sub.ID, sub.Name, sub.Status)
	}

	return nil
}

type CatalogProductsCmd struct {
	CategoryID int `arg:"" help:"Category ID to list products for"`
}

func (c *CatalogProductsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	products, err := app.API.SubcategoryProducts(ctx, c.CategoryID)
	if err != nil {
		return app.apiError(err)
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	fmt.Printf("%-6s %-40s %-10s %s\n", "ID", "Title", "In stock", "From")
	fmt.Println(strings.Repeat("─", 70))
	for _, product := range products {
		fmt.Printf("%-6d %-40s %-10v %s\n",
			product.ID, truncate(product.Title, 40), product.InStock, fromPrice(product))
	}

	return nil
}

type CatalogShowCmd struct {
	ID int `arg:"" help:"Product ID"`
}

func (c *CatalogShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	product, err := app.API.Product(ctx, c.ID)
	if err != nil {
		return app.apiError(err)
	}

	fmt.Printf("%s (#%d)\n", product.Title, product.ID)
	if product.Description != "" {
		fmt.Println(product.Description)
	}
	if !product.InStock {
		fmt.Println("Out of stock")
	}
	if product.Benefit != nil {
		fmt.Printf("Benefit: %s - %s\n", product.Benefit.Title, product.Benefit.Description)
	}

	tiers := product.PriceOptions()
	if len(tiers) > 0 {
		fmt.Println("\nRental options:")
		for _, tier := range tiers {
			fmt.Printf("  %2d months  %8.2f\n", tier.Months, tier.Amount)
		}
	}

	return nil
}

type CatalogOffersCmd struct{}

func (c *CatalogOffersCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	offers, err := app.API.Offers(ctx)
	if err != nil {
		return app.apiError(err)
	}

	for _, offer := range offers {
		fmt.Printf("%-12s %s - %s\n", offer.Code, offer.Title, offer.Description)
	}

	return nil
}

type CatalogBenefitsCmd struct{}

func (c *CatalogBenefitsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}

	benefits, err := app.API.Benefits(ctx)
	if err != nil {
		return app.apiError(err)
	}

	for _, benefit := range benefits {
		fmt.Printf("%s - %s\n", benefit.Title, benefit.Description)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// fromPrice renders the cheapest rental tier, or "-" when the product has
// no parsable pricing.
func fromPrice(product api.Product) string {
	tiers := product.PriceOptions()
	if len(tiers) == 0 {
		return "-"
	}

	lowest := tiers[0].Amount
	for _, tier := range tiers[1:] {
		if tier.Amount < lowest {
			lowest = tier.Amount
		}
	}

	return fmt.Sprintf("%.2f", lowest)
}
