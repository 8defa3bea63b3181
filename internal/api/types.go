package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Subcategory is a browsable product grouping.
type Subcategory struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status"`
}

// Active reports whether the subcategory should be shown to shoppers.
func (s Subcategory) Active() bool {
	return s.Status == "Active"
}

// Product is a rentable item. Price carries the backend's encoding: a JSON
// array of rental tiers serialized as a string, decoded via PriceOptions.
type Product struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ProductImage string   `json:"product_image"`
	Price        string   `json:"price"`
	InStock      bool     `json:"inStock"`
	Benefit      *Benefit `json:"benefit,omitempty"`
}

// PriceTier is one rental duration option for a product.
type PriceTier struct {
	Months int
	Amount float64
}

type rawPriceTier struct {
	Months string  `json:"months"`
	Amount float64 `json:"amount"`
}

// PriceOptions decodes the product's price field. The backend stores the
// duration as free text like "6 months"; only the leading integer counts.
// Malformed entries are dropped rather than failing the whole product.
func (p Product) PriceOptions() []PriceTier {
	if p.Price == "" {
		return nil
	}

	var raw []rawPriceTier
	if err := json.Unmarshal([]byte(p.Price), &raw); err != nil {
		return nil
	}

	tiers := make([]PriceTier, 0, len(raw))
	for _, tier := range raw {
		field := strings.Fields(tier.Months)
		if len(field) == 0 {
			continue
		}
		months, err := strconv.Atoi(field[0])
		if err != nil {
			continue
		}
		tiers = append(tiers, PriceTier{Months: months, Amount: tier.Amount})
	}

	return tiers
}

// Offer is a promotional code shown on the storefront.
type Offer struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Benefit is a perk attached to the storefront or to a product.
type Benefit struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Profile is the authenticated user's account details.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address is a delivery address on the user's profile.
type Address struct {
	FullName        string `json:"fullName"`
	Contact         string `json:"contact"`
	Address         string `json:"address"`
	NearestLandmark string `json:"nearestLandmark"`
	PostalCode      string `json:"postalCode"`
	City            string `json:"city"`
}

// KYC is the user's identity-verification record. IDProofImage carries the
// backend's encoding: a JSON array of image URLs serialized as a string.
type KYC struct {
	IDName       string `json:"idName"`
	IDProofImage string `json:"idProofImage"`
}

// ProofImages decodes the stored proof image list.
func (k KYC) ProofImages() []string {
	if k.IDProofImage == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(k.IDProofImage), &images); err != nil {
		// Some records hold a bare URL instead of a JSON array
		return []string{k.IDProofImage}
	}
	return images
}

// CartItem is a product placed in the rental cart with a chosen tier.
type CartItem struct {
	ProductID     int          `json:"productId"`
	SelectedPrice float64      `json:"selectedPrice"`
	SelectedMonth int          `json:"selectedMonth"`
	Quantity      int          `json:"quantity"`
	Product       *CartProduct `json:"product,omitempty"`
}

// CartProduct is the product summary embedded in cart responses.
type CartProduct struct {
	Title        string `json:"title"`
	ProductImage string `json:"product_image"`
}

// WishlistItem is a saved product. The embedded product key is capitalized
// on the wire; that casing is load-bearing.
type WishlistItem struct {
	ID        int          `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Product   *CartProduct `json:"Product,omitempty"`
}
