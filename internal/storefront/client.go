package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CatalogAPI is the outbound surface the controller talks to
type CatalogAPI interface {
	// FetchProducts returns the product listing. An absent or null payload
	// yields an empty slice, never nil propagated from the wire.
	FetchProducts(ctx context.Context) ([]Product, error)

	// AddToCart posts one unit of the product to the caller's cart
	AddToCart(ctx context.Context, productID string) error
}

// Client is an HTTP implementation of CatalogAPI
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a storefront API client from configuration
func NewClient(cfg config.StorefrontConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NewClientWithHTTPClient creates a client with a caller-supplied HTTP client.
// This is useful for testing with httptest servers.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// envelope is the standard API response wrapper. The client also accepts a
// bare JSON array for interoperability with servers that skip the wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchProducts fetches the product listing
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read products response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("products request failed with status %d", resp.StatusCode)
	}

	return decodeProducts(body)
}

// decodeProducts accepts a bare array, a response envelope, or a JSON null.
// Null and absent payloads decode to an empty slice.
func decodeProducts(body []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Product{}, nil
	}

	if trimmed[0] == '[' {
		var products []Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}
		if products == nil {
			products = []Product{}
		}
		return products, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to decode products envelope: %w", err)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Product{}, nil
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// AddToCart posts one unit of the product to the cart endpoint. Any 2xx
// status is success; on failure the server-supplied error message is
// preferred over the transport-level one.
func (c *Client) AddToCart(ctx context.Context, productID string) error {
	payload, err := json.Marshal(map[string]int{"quantity": 1})
	if err != nil {
		return fmt.Errorf("failed to encode cart request: %w", err)
	}

	url := c.baseURL + "/cart/" + productID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build cart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	if msg := extractErrorMessage(body); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("cart request failed with status %d", resp.StatusCode)
}

// extractErrorMessage pulls the most specific error detail out of a failure
// payload. It understands the standard envelope plus common flat shapes.
func extractErrorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}

	var flat struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		if flat.Message != "" {
			return flat.Message
		}
		if flat.Error != "" {
			return flat.Error
		}
	}

	return ""
}

// Ensure Client implements CatalogAPI
var _ CatalogAPI = (*Client)(nil)
