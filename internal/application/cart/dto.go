package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemInput contains the input for adding a product to a cart
type AddItemInput struct {
	SessionID string
	ProductID uuid.UUID
	Quantity  int64
}

// AddItemResult contains the outcome of a cart add
type AddItemResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// ItemInfo is a cart entry joined with its product
type ItemInfo struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// CartInfo contains the full contents of a session's cart
type CartInfo struct {
	Items []ItemInfo      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
