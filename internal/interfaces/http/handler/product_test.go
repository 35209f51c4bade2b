package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProductRouter(repo catalog.ProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	svc := catalogapp.NewService(repo, zap.NewNop())
	h := NewProductHandler(svc)

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	return engine
}

func TestProductHandler_List(t *testing.T) {
	t.Run("returns active products with pagination meta", func(t *testing.T) {
		repo := new(MockProductRepository)
		p, err := catalog.NewProduct("Widget", decimal.NewFromFloat(9.99))
		require.NoError(t, err)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Status != nil && *f.Status == catalog.ProductStatusActive
		})).Return([]*catalog.Product{p}, int64(1), nil)

		engine := setupProductRouter(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)

		items := resp.Data.([]interface{})
		require.Len(t, items, 1)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "Widget", first["name"])
	})

	t.Run("passes search keyword to the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Keyword == "wid"
		})).Return([]*catalog.Product{}, int64(0), nil)

		engine := setupProductRouter(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=wid", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("returns product by id", func(t *testing.T) {
		repo := new(MockProductRepository)
		p, err := catalog.NewProduct("Widget", decimal.NewFromFloat(9.99))
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		engine := setupProductRouter(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, p.ID.String(), data["id"])
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		repo := new(MockProductRepository)
		missingID := uuid.New()
		repo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

		engine := setupProductRouter(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+missingID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates product and returns 201", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.Name == "Widget" && p.Price.Equal(decimal.NewFromFloat(9.99))
		})).Return(nil)

		engine := setupProductRouter(repo)
		body := []byte(`{"name": "Widget", "price": "9.99"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		repo := new(MockProductRepository)
		engine := setupProductRouter(repo)

		body := []byte(`{"price": "9.99"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
