package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, p *Product) error

	// Update updates an existing product
	Update(ctx context.Context, p *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns products matching the filter with the total count
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
}

// ProductFilter contains filter options for querying products
type ProductFilter struct {
	// Keyword matches against the product name, case-insensitively
	Keyword string

	// Filter by status
	Status *ProductStatus

	// Pagination
	Page     int
	PageSize int
}

// NewProductFilter creates a filter with default values
func NewProductFilter() ProductFilter {
	return ProductFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithKeyword sets the search keyword
func (f ProductFilter) WithKeyword(keyword string) ProductFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f ProductFilter) WithStatus(status ProductStatus) ProductFilter {
	f.Status = &status
	return f
}

// Offset returns the offset for pagination
func (f ProductFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f ProductFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
