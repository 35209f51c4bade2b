package storefront

import (
	"fmt"
	"strings"
)

// Placeholder values shown when a product field is absent
const (
	PlaceholderName        = "No Name"
	PlaceholderDescription = "No Description"
	PlaceholderImageURL    = "https://via.placeholder.com/150"
)

// Product is the read-only projection of a catalog product as consumed by the
// storefront view. Every field except the identifier may be absent; display
// and search operations must tolerate any combination of missing fields.
type Product struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

// DisplayName returns the product name or a placeholder
func (p Product) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return PlaceholderName
	}
	return *p.Name
}

// DisplayDescription returns the product description or a placeholder
func (p Product) DisplayDescription() string {
	if p.Description == nil || *p.Description == "" {
		return PlaceholderDescription
	}
	return *p.Description
}

// DisplayPrice formats the price with two decimals, treating an absent price
// as zero
func (p Product) DisplayPrice() string {
	price := 0.0
	if p.Price != nil {
		price = *p.Price
	}
	return fmt.Sprintf("$%.2f", price)
}

// DisplayImageURL returns the image URL or a placeholder image
func (p Product) DisplayImageURL() string {
	if p.ImageURL == nil || *p.ImageURL == "" {
		return PlaceholderImageURL
	}
	return *p.ImageURL
}

// MatchesQuery reports whether the product name contains the query,
// case-insensitively. A missing name is treated as empty text, so it matches
// only the empty query.
func (p Product) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	if p.Name == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*p.Name), strings.ToLower(query))
}
