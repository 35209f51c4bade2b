package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/cart"
)

// AddToCartRequest is the request body for a cart add. Quantity defaults to
// one when omitted.
type AddToCartRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.Get)
		carts.POST("/:productId", h.AddItem)
		carts.DELETE("", h.Clear)
	}
}

// AddItem adds a product to the caller's cart. Each request increments the
// quantity; repeated requests are deliberate repeated adds, not replays.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := getSessionID(c)
	if sessionID == "" {
		h.BadRequest(c, "Missing session: provide X-Session-ID or authenticate")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	req := AddToCartRequest{Quantity: cart.DefaultQuantity}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.cartService.AddItem(c.Request.Context(), cartapp.AddItemInput{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns the caller's cart contents
func (h *CartHandler) Get(c *gin.Context) {
	sessionID := getSessionID(c)
	if sessionID == "" {
		h.BadRequest(c, "Missing session: provide X-Session-ID or authenticate")
		return
	}

	info, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID := getSessionID(c)
	if sessionID == "" {
		h.BadRequest(c, "Missing session: provide X-Session-ID or authenticate")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
