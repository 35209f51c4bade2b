package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductInput contains the input for product creation
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// UpdateProductInput contains the input for product updates
type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        string
	Description string
	Price       *decimal.Decimal
	ImageURL    *string
}

// ListProductsInput contains the input for product listing
type ListProductsInput struct {
	Keyword    string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// ProductInfo contains product information for API responses
type ProductInfo struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListProductsResult contains a page of products with the total count
type ListProductsResult struct {
	Products []ProductInfo `json:"products"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func toProductInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
