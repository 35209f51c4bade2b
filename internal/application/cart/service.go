package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles cart operations. Adds accumulate: two add requests for the
// same product produce two increments, never a replace.
type Service struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart service
func NewService(store cart.Store, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// AddItem adds a product to the session's cart and returns the new quantity
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error) {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = cart.DefaultQuantity
	}

	if err := cart.ValidateAdd(input.SessionID, input.ProductID, quantity); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		s.logger.Error("Failed to load product for cart add", zap.Error(err))
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available")
	}

	newQuantity, err := s.store.Add(ctx, input.SessionID, input.ProductID, quantity)
	if err != nil {
		s.logger.Error("Failed to add to cart",
			zap.String("product_id", input.ProductID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Added to cart",
		zap.String("session_id", input.SessionID),
		zap.String("product_id", input.ProductID.String()),
		zap.Int64("quantity", newQuantity))

	return &AddItemResult{
		ProductID: input.ProductID,
		Quantity:  newQuantity,
	}, nil
}

// Get returns the session's cart joined with product details. Entries whose
// product has disappeared from the catalog are skipped.
func (s *Service) Get(ctx context.Context, sessionID string) (*CartInfo, error) {
	entries, err := s.store.Entries(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to read cart", zap.Error(err))
		return nil, err
	}

	items := make([]ItemInfo, 0, len(entries))
	total := decimal.Zero
	for _, entry := range entries {
		product, err := s.productRepo.FindByID(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(entry.Quantity))
		total = total.Add(lineTotal)
		items = append(items, ItemInfo{
			ProductID: entry.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  entry.Quantity,
		})
	}

	return &CartInfo{Items: items, Total: total}, nil
}

// Clear removes the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}
	return nil
}
