package api

import (
	"context"
	"fmt"
)

// Subcategories returns all product subcategories, including inactive
// ones; filter with Subcategory.Active for display.
func (c *Client) Subcategories(ctx context.Context) ([]Subcategory, error) {
	var out struct {
		Subcategories []Subcategory `json:"subcategories"`
	}
	if err := c.get(ctx, "/subcategory/subcategories", &out); err != nil {
		return nil, err
	}
	return out.Subcategories, nil
}

// SubcategoryProducts returns the products in a subcategory.
func (c *Client) SubcategoryProducts(ctx context.Context, subcategoryID int) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	path := fmt.Sprintf("/product/subcategory/%d/products", subcategoryID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// Product returns a single product by ID.
func (c *Client) Product(ctx context.Context, productID int) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	path := fmt.Sprintf("/product/products/%d", productID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// Offers returns the current promotional offers.
func (c *Client) Offers(ctx context.Context) ([]Offer, error) {
	var out struct {
		Offers []Offer `json:"offers"`
	}
	if err := c.get(ctx, "/offer/offers", &out); err != nil {
		return nil, err
	}
	return out.Offers, nil
}

// Benefits returns the storefront benefits. Unlike the other catalog
// endpoints this one responds with a bare array.
func (c *Client) Benefits(ctx context.Context) ([]Benefit, error) {
	var out []Benefit
	if err := c.get(ctx, "/benefits/benefit", &out); err != nil {
		return nil, err
	}
	return out, nil
}
