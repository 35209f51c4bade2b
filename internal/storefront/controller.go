package storefront

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// NoProductsMessage is rendered when the catalog is empty or failed to load
const NoProductsMessage = "No products available."

// User-facing notification messages
const (
	addSuccessMessage = "Product added to cart successfully!"
)

// ErrAddInFlight is returned when an add-to-cart request for the same product
// is already running
var ErrAddInFlight = errors.New("add to cart already in flight for this product")

// Notifier receives blocking user-facing acknowledgments
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// State is one immutable snapshot of the view state. Transitions produce a
// new snapshot instead of mutating in place.
type State struct {
	Products    []Product
	SearchQuery string
	Busy        map[string]bool
}

func newState() State {
	return State{
		Products: []Product{},
		Busy:     map[string]bool{},
	}
}

func (s State) withProducts(products []Product) State {
	next := s.copy()
	if products == nil {
		products = []Product{}
	}
	next.Products = products
	return next
}

func (s State) withSearchQuery(query string) State {
	next := s.copy()
	next.SearchQuery = query
	return next
}

func (s State) withBusy(productID string, busy bool) State {
	next := s.copy()
	next.Busy[productID] = busy
	return next
}

func (s State) copy() State {
	products := make([]Product, len(s.Products))
	copy(products, s.Products)

	busy := make(map[string]bool, len(s.Busy))
	for id, b := range s.Busy {
		busy[id] = b
	}

	return State{
		Products:    products,
		SearchQuery: s.SearchQuery,
		Busy:        busy,
	}
}

// Controller drives the product listing view: one catalog load, synchronous
// search filtering, and per-product add-to-cart requests guarded by busy
// flags. Add requests for different products may run concurrently; the busy
// flag is the only mutual exclusion and it is scoped per product.
type Controller struct {
	api      CatalogAPI
	notifier Notifier
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	loaded bool
}

// NewController creates a controller in its initial state
func NewController(api CatalogAPI, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		api:      api,
		notifier: notifier,
		logger:   logger,
		state:    newState(),
	}
}

// LoadCatalog fetches the product listing. It runs at most once per
// controller; later calls are no-ops. A fetch failure degrades to an empty
// listing and is logged, never surfaced as a fatal error. There is no
// automatic retry.
func (c *Controller) LoadCatalog(ctx context.Context) {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = true
	c.mu.Unlock()

	products, err := c.api.FetchProducts(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch products", zap.Error(err))
		products = []Product{}
	}

	c.mu.Lock()
	c.state = c.state.withProducts(products)
	c.mu.Unlock()
}

// SetSearchQuery updates the search text
func (c *Controller) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.withSearchQuery(query)
}

// State returns the current state snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.copy()
}

// VisibleProducts returns the products matching the current search query.
// The filter is pure and derived; it is re-evaluated on every call.
func (c *Controller) VisibleProducts() []Product {
	c.mu.Lock()
	state := c.state.copy()
	c.mu.Unlock()

	visible := make([]Product, 0, len(state.Products))
	for _, p := range state.Products {
		if p.MatchesQuery(state.SearchQuery) {
			visible = append(visible, p)
		}
	}
	return visible
}

// EmptyMessage returns the degraded-state message when nothing is visible,
// or an empty string otherwise
func (c *Controller) EmptyMessage() string {
	if len(c.VisibleProducts()) == 0 {
		return NoProductsMessage
	}
	return ""
}

// IsBusy reports whether an add-to-cart request is in flight for the product
func (c *Controller) IsBusy(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Busy[productID]
}

// AddToCart issues one add-to-cart request for the product. The busy flag is
// set synchronously before the request goes out and cleared on exit no matter
// how the request or the notification ends. Each completed call increments
// the server-side quantity; the flag only prevents concurrent requests for
// the same product, not deliberate repeated adds.
func (c *Controller) AddToCart(ctx context.Context, productID string) error {
	if err := c.beginAdd(productID); err != nil {
		return err
	}
	defer c.finishAdd(productID)

	if err := c.api.AddToCart(ctx, productID); err != nil {
		c.logger.Error("Failed to add product to cart",
			zap.String("product_id", productID),
			zap.Error(err))
		c.notifier.Failure(err.Error())
		return err
	}

	c.notifier.Success(addSuccessMessage)
	return nil
}

// beginAdd marks the product busy, rejecting re-entry for the same product
func (c *Controller) beginAdd(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Busy[productID] {
		return ErrAddInFlight
	}
	c.state = c.state.withBusy(productID, true)
	return nil
}

// finishAdd clears the busy flag; it runs deferred so the reset survives a
// panicking notifier
func (c *Controller) finishAdd(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.withBusy(productID, false)
}
