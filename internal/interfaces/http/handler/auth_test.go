package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	vendorapp "github.com/storefront/backend/internal/application/vendor"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/vendor"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockVendorRepository implements vendor.Repository for testing
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByEmail(ctx context.Context, email string) (*vendor.Vendor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func setupAuthRouter(repo vendor.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
	svc := vendorapp.NewService(repo, jwtService, zap.NewNop())
	h := NewAuthHandler(svc)

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	return engine
}

func postJSON(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("registers vendor and returns 201", func(t *testing.T) {
		repo := new(MockVendorRepository)
		repo.On("ExistsByEmail", mock.Anything, "acme@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		engine := setupAuthRouter(repo)
		w := postJSON(engine, "/api/v1/auth/register", RegisterRequest{
			Name:     "Acme",
			Email:    "acme@example.com",
			Password: "Password123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "acme@example.com", data["email"])
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		repo := new(MockVendorRepository)
		repo.On("ExistsByEmail", mock.Anything, "acme@example.com").Return(true, nil)

		engine := setupAuthRouter(repo)
		w := postJSON(engine, "/api/v1/auth/register", RegisterRequest{
			Name:     "Acme",
			Email:    "acme@example.com",
			Password: "Password123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password fails binding", func(t *testing.T) {
		repo := new(MockVendorRepository)
		engine := setupAuthRouter(repo)

		w := postJSON(engine, "/api/v1/auth/register", RegisterRequest{
			Name:     "Acme",
			Email:    "acme@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	registered := func(t *testing.T) *vendor.Vendor {
		t.Helper()
		v, err := vendor.NewVendor("Acme", "acme@example.com", "Password123")
		require.NoError(t, err)
		require.NoError(t, v.PrepareForPersist())
		return v
	}

	t.Run("valid credentials return token pair", func(t *testing.T) {
		repo := new(MockVendorRepository)
		repo.On("FindByEmail", mock.Anything, "acme@example.com").Return(registered(t), nil)

		engine := setupAuthRouter(repo)
		w := postJSON(engine, "/api/v1/auth/login", LoginRequest{
			Email:    "acme@example.com",
			Password: "Password123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		token := data["token"].(map[string]interface{})
		assert.NotEmpty(t, token["access_token"])
		assert.Equal(t, "Bearer", token["token_type"])
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		repo := new(MockVendorRepository)
		repo.On("FindByEmail", mock.Anything, "acme@example.com").Return(registered(t), nil)

		engine := setupAuthRouter(repo)
		w := postJSON(engine, "/api/v1/auth/login", LoginRequest{
			Email:    "acme@example.com",
			Password: "WrongPassword",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email returns same 401", func(t *testing.T) {
		repo := new(MockVendorRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		engine := setupAuthRouter(repo)
		w := postJSON(engine, "/api/v1/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "Password123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
