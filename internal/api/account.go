package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Account endpoints. All of them rely on the bearer token attached by the
// transport; on a missing or expired token the backend answers 401, which
// surfaces as a KindAuth error. None of these calls is retried, and none
// of them clears the session on 401 — that reaction belongs to the caller.

// ProfileDetails returns the authenticated user's profile.
func (c *Client) ProfileDetails(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.doOnce(ctx, http.MethodGet, "/auth/user/profileDetails", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Addresses returns all delivery addresses on the profile.
func (c *Client) Addresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := c.doOnce(ctx, http.MethodGet, "/user/address", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress adds a delivery address.
func (c *Client) CreateAddress(ctx context.Context, address Address) error {
	return c.doOnce(ctx, http.MethodPost, "/user/create/address", address, nil)
}

// UpdateAddress replaces the delivery address linked to the user.
func (c *Client) UpdateAddress(ctx context.Context, address Address) error {
	return c.doOnce(ctx, http.MethodPut, "/user/update/address", address, nil)
}

// DeleteAddress removes the user's delivery address.
func (c *Client) DeleteAddress(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodDelete, "/user/delete/address", nil, nil)
}

// KYCDetails returns the user's identity-verification record, or nil when
// none has been submitted yet.
func (c *Client) KYCDetails(ctx context.Context) (*KYC, error) {
	var out struct {
		KYC *KYC `json:"kyc"`
	}
	if err := c.doOnce(ctx, http.MethodGet, "/user/get/kyc", nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if out.KYC == nil || out.KYC.IDName == "" {
		return nil, nil
	}
	return out.KYC, nil
}

// SubmitKYC uploads an identity document. This is the one endpoint that
// takes multipart form data instead of JSON.
func (c *Client) SubmitKYC(ctx context.Context, idName, proofImagePath string) error {
	file, err := os.Open(proofImagePath)
	if err != nil {
		return fmt.Errorf("failed to open proof image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("idName", idName); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	part, err := form.CreateFormFile("idProofImage", filepath.Base(proofImagePath))
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read proof image: %w", err)
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/user/kyc"), &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.send(req, nil)
}

// DeleteKYC removes the user's identity-verification record.
func (c *Client) DeleteKYC(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodDelete, "/user/delete/kyc", nil, nil)
}

// Cart returns the rental cart contents.
func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var out struct {
		CartItems []CartItem `json:"cartItems"`
	}
	if err := c.doOnce(ctx, http.MethodGet, "/user/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.CartItems, nil
}

type cartAddRequest struct {
	ProductID     int     `json:"productId"`
	SelectedPrice float64 `json:"selectedPrice"`
	SelectedMonth int     `json:"selectedMonth"`
}

// AddToCart places a product in the cart with the chosen rental tier.
func (c *Client) AddToCart(ctx context.Context, productID int, selectedPrice float64, selectedMonth int) error {
	return c.doOnce(ctx, http.MethodPost, "/user/cart", cartAddRequest{
		ProductID:     productID,
		SelectedPrice: selectedPrice,
		SelectedMonth: selectedMonth,
	}, nil)
}

type productRef struct {
	ProductID int `json:"productId"`
}

// RemoveFromCart takes a product out of the cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID int) error {
	return c.doOnce(ctx, http.MethodDelete, "/user/cart/remove", productRef{ProductID: productID}, nil)
}

// Wishlist returns the user's saved products.
func (c *Client) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var out struct {
		WishlistItems []WishlistItem `json:"wishlistItems"`
	}
	if err := c.doOnce(ctx, http.MethodGet, "/user/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out.WishlistItems, nil
}

// AddToWishlist saves a product to the wishlist.
func (c *Client) AddToWishlist(ctx context.Context, productID int) error {
	return c.doOnce(ctx, http.MethodPost, "/user/wishlist", productRef{ProductID: productID}, nil)
}

// RemoveFromWishlist removes a product from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID int) error {
	return c.doOnce(ctx, http.MethodDelete, "/user/wishlist", productRef{ProductID: productID}, nil)
}
