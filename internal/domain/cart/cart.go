package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultQuantity is the quantity added when a request does not specify one.
const DefaultQuantity = 1

// Entry represents one product line in a session's cart.
type Entry struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// Store defines the interface for cart persistence. Carts are keyed by an
// opaque session identifier; adding the same product twice accumulates the
// quantity rather than replacing it.
type Store interface {
	// Add increments the quantity for a product in the session's cart and
	// returns the new quantity.
	Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int64) (int64, error)

	// Entries returns all entries in the session's cart
	Entries(ctx context.Context, sessionID string) ([]Entry, error)

	// Clear removes the session's cart
	Clear(ctx context.Context, sessionID string) error
}

// ValidateAdd checks the arguments of a cart add operation.
func ValidateAdd(sessionID string, productID uuid.UUID, quantity int64) error {
	if sessionID == "" {
		return shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}
