package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// Service handles catalog operations
type Service struct {
	repo   catalog.ProductRepository
	logger *zap.Logger
}

// NewService creates a new catalog service
func NewService(repo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create creates a new product
func (s *Service) Create(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	p, err := catalog.NewProduct(input.Name, input.Price)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		if err := p.Update(input.Name, input.Description); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != "" {
		if err := p.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name))

	info := toProductInfo(p)
	return &info, nil
}

// Update updates an existing product
func (s *Service) Update(ctx context.Context, input UpdateProductInput) (*ProductInfo, error) {
	p, err := s.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	name := p.Name
	if input.Name != "" {
		name = input.Name
	}
	description := p.Description
	if input.Description != "" {
		description = input.Description
	}
	if err := p.Update(name, description); err != nil {
		return nil, err
	}

	if input.Price != nil {
		if err := p.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := p.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, err
	}

	info := toProductInfo(p)
	return &info, nil
}

// Get returns a single product
func (s *Service) Get(ctx context.Context, productID uuid.UUID) (*ProductInfo, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	info := toProductInfo(p)
	return &info, nil
}

// List returns products matching the input filter
func (s *Service) List(ctx context.Context, input ListProductsInput) (*ListProductsResult, error) {
	filter := catalog.NewProductFilter()
	if input.Keyword != "" {
		filter = filter.WithKeyword(input.Keyword)
	}
	if input.ActiveOnly {
		filter = filter.WithStatus(catalog.ProductStatusActive)
	}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}

	products, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	infos := make([]ProductInfo, len(products))
	for i, p := range products {
		infos[i] = toProductInfo(p)
	}

	return &ListProductsResult{
		Products: infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}
